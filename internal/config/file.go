package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/gophstore/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used only for decoding config files. Pointer fields
// tell "absent" apart from an explicit zero.
type FileConfig struct {
	DatabasePath  *string         `json:"database_path" yaml:"database_path"`
	CheckoutDelay *timex.Duration `json:"checkout_delay" yaml:"checkout_delay"`
	Logger        *string         `json:"logger" yaml:"logger"`
	LogLevel      *string         `json:"log_level" yaml:"log_level"`
}

// parseFile overlays cfg with the keys present in the file at path.
func parseFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if fc.DatabasePath != nil {
		cfg.DatabasePath = *fc.DatabasePath
	}
	if fc.CheckoutDelay != nil {
		cfg.CheckoutDelay = fc.CheckoutDelay.Duration
	}
	if fc.Logger != nil {
		cfg.Logger = *fc.Logger
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	return nil
}
