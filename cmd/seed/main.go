// Command seed creates the first superadmin and the base categories. It is safe
// to run repeatedly.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"spice-catalog-backend/internal/app"
	"spice-catalog-backend/internal/auth"
	"spice-catalog-backend/internal/category"
	"spice-catalog-backend/internal/config"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

var baseCategories = []struct {
	name          string
	subcategories []string
}{
	{"Spice", []string{"Whole Spices", "Ground Spices", "Seed Spices"}},
	{"Tea", nil},
	{"Coffee", nil},
}

type seeder struct {
	fx.In

	Config     config.Config
	Log        *zap.Logger
	Auth       *auth.Service
	Categories *category.Service
}

func (s seeder) run(ctx context.Context) error {
	seed := s.Config.Seed
	if seed.SuperadminEmail == "" || seed.SuperadminPassword == "" {
		return errors.New("SEED_SUPERADMIN_EMAIL and SEED_SUPERADMIN_PASSWORD must be set")
	}

	created, err := s.Auth.EnsureSuperadmin(ctx, seed.SuperadminName, seed.SuperadminEmail, seed.SuperadminPassword)
	if err != nil {
		return fmt.Errorf("seed superadmin: %w", err)
	}
	s.Log.Info("superadmin", zap.String("email", seed.SuperadminEmail), zap.Bool("created", created))

	for _, c := range baseCategories {
		created, err := s.Categories.Ensure(ctx, c.name, c.subcategories)
		if err != nil {
			return fmt.Errorf("seed category %s: %w", c.name, err)
		}
		s.Log.Info("category", zap.String("name", c.name), zap.Bool("created", created))
	}
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if cfg.StorageDriver == config.StorageMemory {
		fmt.Fprintln(os.Stderr, "seed: STORAGE_DRIVER=memory has nothing to seed")
		os.Exit(1)
	}

	var s seeder
	seedApp := fx.New(
		app.Infrastructure(cfg),
		auth.Module,
		category.Module,
		fx.Populate(&s),
		fx.NopLogger,
	)
	if err := seedApp.Err(); err != nil {
		fmt.Fprintln(os.Stderr, "seed:", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := seedApp.Start(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "seed: start:", err)
		os.Exit(1)
	}
	runErr := s.run(ctx)
	if err := seedApp.Stop(ctx); err != nil {
		s.Log.Warn("shutdown", zap.Error(err))
	}
	if runErr != nil {
		s.Log.Error("seed failed", zap.Error(runErr))
		os.Exit(1)
	}
}
