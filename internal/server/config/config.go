// Package config handles configuration for the server,
// applying defaults, then environment variables, then command-line flags.
package config

import (
	"flag"
	"os"
	"time"
)

// Config holds runtime settings for the user service.
type Config struct {
	// Address is the HTTP bind address.
	Address string
	// DatabasePath is the SQLite file holding user records.
	DatabasePath string
	// LedgerPath is the BoltDB file holding the token revocation ledger.
	LedgerPath string
	// SecretKey is the HMAC secret for signing tokens (HS256).
	SecretKey string
	// TokenTTL is the bearer token lifetime.
	TokenTTL time.Duration
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
	// ShowVersion makes the binary print version info and exit.
	ShowVersion bool
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret key default is insecure and must be overridden in prod.
func (c *Config) LoadDefaults() {
	c.Address = ":8080"
	c.DatabasePath = "usersvc.db"
	c.LedgerPath = "usersvc-ledger.db"
	c.SecretKey = "dev-secret-key"
	c.TokenTTL = 4 * time.Hour
	c.LogLevel = "info"
}

// Load builds a Config by applying defaults, then overlaying environment
// variables and finally command-line flags.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.applyEnv()

	if err := cfg.parseFlags(args); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv overlays USERSVC_* environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("USERSVC_ADDRESS"); v != "" {
		c.Address = v
	}
	if v := os.Getenv("USERSVC_DATABASE_PATH"); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv("USERSVC_LEDGER_PATH"); v != "" {
		c.LedgerPath = v
	}
	if v := os.Getenv("USERSVC_SECRET_KEY"); v != "" {
		c.SecretKey = v
	}
	if v := os.Getenv("USERSVC_TOKEN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.TokenTTL = d
		}
	}
	if v := os.Getenv("USERSVC_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// parseFlags overlays command-line flags on top of the current values.
func (c *Config) parseFlags(args []string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&c.Address, "a", c.Address, "HTTP bind address")
	fs.StringVar(&c.DatabasePath, "d", c.DatabasePath, "path to the SQLite database file")
	fs.StringVar(&c.LedgerPath, "b", c.LedgerPath, "path to the BoltDB revocation ledger file")
	fs.StringVar(&c.SecretKey, "s", c.SecretKey, "token signing secret")
	fs.DurationVar(&c.TokenTTL, "t", c.TokenTTL, "bearer token TTL")
	fs.StringVar(&c.LogLevel, "l", c.LogLevel, "log level (debug, info, warn, error)")
	fs.BoolVar(&c.ShowVersion, "version", false, "show version information")

	return fs.Parse(args)
}
