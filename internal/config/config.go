// Package config loads server configuration from an optional pursuit.toml
// file, with PURSUIT_* environment variables taking precedence. Secrets
// (the Resend API key) come from the environment only, never from the file.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Addr        string `toml:"addr"`         // PURSUIT_ADDR (default ":8080")
	DBPath      string `toml:"db_path"`      // PURSUIT_DB_PATH (default "pursuit.db")
	StaticDir   string `toml:"static_dir"`   // PURSUIT_STATIC_DIR (default "static")
	FromAddress string `toml:"from_address"` // PURSUIT_FROM_ADDRESS (required to send email)
	ReplyTo     string `toml:"reply_to"`     // PURSUIT_REPLY_TO (optional)

	// Operator account seeded on first start when the database is empty.
	SeedEmail    string `toml:"seed_email"`    // PURSUIT_SEED_EMAIL
	SeedPassword string `toml:"seed_password"` // PURSUIT_SEED_PASSWORD

	// ResendAPIKey is environment-only (PURSUIT_RESEND_API_KEY). Empty means
	// outgoing email is logged instead of sent.
	ResendAPIKey string `toml:"-"`
}

// Load reads path (usually "pursuit.toml") if it exists, then applies
// environment overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	c := &Config{}
	if path != "" {
		if _, err := toml.DecodeFile(path, c); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading %s: %w", path, err)
			}
		}
	}

	applyEnv(&c.Addr, "PURSUIT_ADDR")
	applyEnv(&c.DBPath, "PURSUIT_DB_PATH")
	applyEnv(&c.StaticDir, "PURSUIT_STATIC_DIR")
	applyEnv(&c.FromAddress, "PURSUIT_FROM_ADDRESS")
	applyEnv(&c.ReplyTo, "PURSUIT_REPLY_TO")
	applyEnv(&c.SeedEmail, "PURSUIT_SEED_EMAIL")
	applyEnv(&c.SeedPassword, "PURSUIT_SEED_PASSWORD")
	c.ResendAPIKey = os.Getenv("PURSUIT_RESEND_API_KEY")

	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.DBPath == "" {
		c.DBPath = "pursuit.db"
	}
	if c.StaticDir == "" {
		c.StaticDir = "static"
	}

	if c.SeedEmail != "" && c.SeedPassword == "" {
		return nil, fmt.Errorf("PURSUIT_SEED_PASSWORD is required when a seed email is set")
	}

	return c, nil
}

func applyEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
