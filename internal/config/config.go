// Package config loads client configuration from config files, environment
// variables and .env files.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// AppFs is the filesystem used for existence checks; swapped for a memory fs
// in tests.
var AppFs = afero.NewOsFs()

// Config holds client configuration.
type Config struct {
	DatabaseURL    string
	MaxConns       int
	MaxIdleConns   int
	ConnectTimeout time.Duration
}

// Load reads configuration from, in increasing priority: a .sqlbridge yaml
// file (working directory, home, ~/.config/sqlbridge), SQLBRIDGE_* env vars,
// a .env file, a .env.local file, and the DATABASE_URL env var.
func Load() (*Config, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigName(".sqlbridge")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath(home)
	v.AddConfigPath(filepath.Join(home, ".config", "sqlbridge"))

	v.SetEnvPrefix("SQLBRIDGE")
	v.AutomaticEnv()

	v.SetDefault("max_conns", 25)
	v.SetDefault("max_idle_conns", 5)
	v.SetDefault("connect_timeout", "10s")

	// Missing config file is fine; defaults and env cover it.
	_ = v.ReadInConfig()

	if _, err := AppFs.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}
	if _, err := AppFs.Stat(".env.local"); err == nil {
		_ = godotenv.Overload(".env.local")
	}

	cfg := &Config{
		DatabaseURL:    v.GetString("database_url"),
		MaxConns:       v.GetInt("max_conns"),
		MaxIdleConns:   v.GetInt("max_idle_conns"),
		ConnectTimeout: v.GetDuration("connect_timeout"),
	}
	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.DatabaseURL = url
	}
	return cfg, nil
}
