package config

import (
	"time"

	"github.com/dmitrijs2005/gophstore/internal/flagx"
	"github.com/dmitrijs2005/gophstore/internal/logging"
)

// Config holds runtime settings for the storefront CLI.
type Config struct {
	DatabasePath  string
	CheckoutDelay time.Duration
	Logger        string
	LogLevel      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "storefront.db"
	c.CheckoutDelay = 2 * time.Second
	c.Logger = logging.BackendSlog
	c.LogLevel = "info"
}

// Load builds a Config from defaults, the optional config file named in
// args and finally the flags in args. args excludes the program name.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if path := flagx.ConfigFile(args); path != "" {
		if err := parseFile(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
