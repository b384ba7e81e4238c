// main.go

package main

import (
	"fmt"
	"os"

	"spice-catalog-backend/internal/app"
	"spice-catalog-backend/internal/config"

	"go.uber.org/fx"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	fx.New(app.Options(cfg)).Run()
}
