// Package config loads runtime configuration for the gophstore CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. Files ending in
//     .yaml or .yml are read as YAML, everything else as JSON.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   path of the SQLite store file
//	-p int      simulated payment delay at checkout (seconds)
//	-l string   logger backend: slog or zap
//	-v string   log level: debug, info, warn, error
//
// # File schema
//
// Durations use timex.Duration, so they may be strings like "2s" or
// integer nanoseconds:
//
//	{
//	  "database_path": "storefront.db",
//	  "checkout_delay": "2s",
//	  "logger": "slog",
//	  "log_level": "info"
//	}
//
// Keys missing from the file keep their default.
package config
