package config

import (
	"errors"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// StorageConfig selects the snapshot backend.
type StorageConfig struct {
	Driver string `yaml:"driver"`
	// Path is the sqlite database file; URL the postgres connection string.
	Path string `yaml:"path"`
	URL  string `yaml:"url"`
}

// Config defines server configuration.
type Config struct {
	ListenAddr string        `yaml:"listen_addr"`
	JWTSecret  string        `yaml:"jwt_secret"`
	TokenTTL   time.Duration `yaml:"token_ttl"`
	Storage    StorageConfig `yaml:"storage"`
}

// Load builds configuration from env, with an optional YAML file override
// pointed to by FLEETDOCK_CONFIG.
func Load() (Config, error) {
	cfg := Config{
		ListenAddr: getenvDefault("FLEETDOCK_LISTEN_ADDR", ":8080"),
		JWTSecret:  os.Getenv("FLEETDOCK_JWT_SECRET"),
		Storage: StorageConfig{
			Driver: getenvDefault("FLEETDOCK_STORAGE_DRIVER", "sqlite"),
			Path:   getenvDefault("FLEETDOCK_SQLITE_PATH", "fleetdock.db"),
			URL:    os.Getenv("DATABASE_URL"),
		},
	}
	if ttl := os.Getenv("FLEETDOCK_TOKEN_TTL"); ttl != "" {
		parsed, err := time.ParseDuration(ttl)
		if err != nil {
			return cfg, errors.New("config: invalid FLEETDOCK_TOKEN_TTL")
		}
		cfg.TokenTTL = parsed
	}

	if path := os.Getenv("FLEETDOCK_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 12 * time.Hour
	}
	if cfg.JWTSecret == "" {
		return cfg, errors.New("config: jwt secret required")
	}
	if cfg.Storage.Driver == "" {
		return cfg, errors.New("config: storage driver required")
	}
	return cfg, nil
}

func getenvDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
