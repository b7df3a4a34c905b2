package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the runtime configuration. Values come from an optional YAML
// file (CONFIG_PATH) with environment variables taking precedence.
type Config struct {
	HTTPAddr    string `yaml:"http_addr"`
	MetricsAddr string `yaml:"metrics_addr"` // empty disables the metrics endpoint

	// DatabaseURL selects the Postgres store; when empty the server runs on
	// the in-memory store and loses all bookings on restart.
	DatabaseURL string `yaml:"database_url"`

	// AdminPasswordHash is the bcrypt hash of the admin password. AdminPassword
	// (plaintext) is a local-dev convenience, hashed at startup; set only one.
	AdminPassword     string `yaml:"admin_password"`
	AdminPasswordHash string `yaml:"admin_password_hash"`

	JWTSecret string `yaml:"jwt_secret"`
}

// Load reads configuration from CONFIG_PATH (if set) and the environment.
// A .env file is honored for local development.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr: ":8080",
	}

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	overrideFromEnv(&cfg.HTTPAddr, "HTTP_ADDR")
	overrideFromEnv(&cfg.MetricsAddr, "METRICS_ADDR")
	overrideFromEnv(&cfg.DatabaseURL, "DATABASE_URL")
	overrideFromEnv(&cfg.AdminPassword, "ADMIN_PASSWORD")
	overrideFromEnv(&cfg.AdminPasswordHash, "ADMIN_PASSWORD_HASH")
	overrideFromEnv(&cfg.JWTSecret, "JWT_SECRET")

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.AdminPassword == "" && cfg.AdminPasswordHash == "" {
		return Config{}, fmt.Errorf("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required")
	}

	return cfg, nil
}

func overrideFromEnv(target *string, key string) {
	if val, ok := os.LookupEnv(key); ok {
		*target = val
	}
}
