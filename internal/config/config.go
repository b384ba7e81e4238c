package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"

	StorageMongo  = "mongo"
	StorageMemory = "memory"

	devJWTSecret = "dev-secret-change-me"
)

// Config holds application configuration.
type Config struct {
	AppName       string
	Environment   string
	Port          string
	LogLevel      string
	StorageDriver string

	MongoURI      string
	MongoDatabase string

	JWTSecret         string
	JWTExpire         time.Duration
	AllowPublicSignup bool

	CORSOrigins []string

	Gemini GeminiConfig

	RedisURL          string
	RateLimitRequests int
	RateLimitWindow   time.Duration

	Seed SeedConfig
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type SeedConfig struct {
	SuperadminName     string
	SuperadminEmail    string
	SuperadminPassword string
}

func (c Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

func (c Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// Load reads configuration from the process environment and an optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	environment := strings.ToLower(strings.TrimSpace(v.GetString("ENVIRONMENT")))
	if environment == "" {
		environment = strings.ToLower(strings.TrimSpace(v.GetString("NODE_ENV")))
	}
	if environment == "" {
		environment = EnvDevelopment
	}

	expire, err := ParseExpiry(v.GetString("JWT_EXPIRE"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid JWT_EXPIRE: %w", err)
	}

	window, err := ParseExpiry(v.GetString("RATE_LIMIT_WINDOW"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid RATE_LIMIT_WINDOW: %w", err)
	}

	cfg := Config{
		AppName:           v.GetString("APP_NAME"),
		Environment:       environment,
		Port:              strings.TrimSpace(v.GetString("PORT")),
		LogLevel:          strings.ToLower(strings.TrimSpace(v.GetString("LOG_LEVEL"))),
		StorageDriver:     strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER"))),
		MongoURI:          strings.TrimSpace(v.GetString("MONGODB_URI")),
		MongoDatabase:     strings.TrimSpace(v.GetString("MONGODB_DATABASE")),
		JWTSecret:         strings.TrimSpace(v.GetString("JWT_SECRET")),
		JWTExpire:         expire,
		AllowPublicSignup: v.GetBool("ALLOW_PUBLIC_SIGNUP"),
		CORSOrigins:       splitList(v.GetString("FRONTEND_URL"), v.GetString("ADMIN_URL")),
		Gemini: GeminiConfig{
			APIKey:  strings.TrimSpace(v.GetString("GEMINI_API_KEY")),
			Model:   strings.TrimSpace(v.GetString("GEMINI_MODEL")),
			BaseURL: strings.TrimSpace(v.GetString("GEMINI_BASE_URL")),
		},
		RedisURL:          strings.TrimSpace(v.GetString("REDIS_URL")),
		RateLimitRequests: v.GetInt("RATE_LIMIT_REQUESTS"),
		RateLimitWindow:   window,
		Seed: SeedConfig{
			SuperadminName:     strings.TrimSpace(v.GetString("SEED_SUPERADMIN_NAME")),
			SuperadminEmail:    strings.TrimSpace(v.GetString("SEED_SUPERADMIN_EMAIL")),
			SuperadminPassword: v.GetString("SEED_SUPERADMIN_PASSWORD"),
		},
	}

	if err := cfg.finalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "spice-catalog")
	v.SetDefault("PORT", "5000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORAGE_DRIVER", StorageMongo)
	v.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGODB_DATABASE", "spice_catalog")
	v.SetDefault("JWT_EXPIRE", "30d")
	v.SetDefault("ALLOW_PUBLIC_SIGNUP", true)
	v.SetDefault("FRONTEND_URL", "http://localhost:3000")
	v.SetDefault("ADMIN_URL", "http://localhost:3001")
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	v.SetDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/")
	v.SetDefault("RATE_LIMIT_REQUESTS", 20)
	v.SetDefault("RATE_LIMIT_WINDOW", "15m")
	v.SetDefault("SEED_SUPERADMIN_NAME", "Super Admin")
}

func (c *Config) finalize() error {
	switch c.StorageDriver {
	case StorageMongo, StorageMemory:
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.StorageDriver)
	}

	if c.JWTSecret == "" {
		if c.IsProduction() {
			return errors.New("JWT_SECRET is required in production")
		}
		c.JWTSecret = devJWTSecret
	}

	if c.RateLimitRequests < 0 {
		c.RateLimitRequests = 0
	}
	return nil
}

// ParseExpiry accepts Go durations ("12h", "45m"), day suffixes ("30d") and plain
// integers, which are read as seconds.
func ParseExpiry(raw string) (time.Duration, error) {
	value := strings.TrimSpace(strings.ToLower(raw))
	if value == "" {
		return 0, errors.New("empty duration")
	}

	if days, ok := strings.CutSuffix(value, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid day count %q", raw)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}

	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds <= 0 {
			return 0, fmt.Errorf("duration must be positive: %q", raw)
		}
		return time.Duration(seconds) * time.Second, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive: %q", raw)
	}
	return d, nil
}

func splitList(values ...string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimRight(strings.TrimSpace(part), "/")
			if part == "" {
				continue
			}
			if _, ok := seen[part]; ok {
				continue
			}
			seen[part] = struct{}{}
			out = append(out, part)
		}
	}
	return out
}
