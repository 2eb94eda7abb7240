package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/gophstore/internal/flagx"
)

// parseFlags overlays cfg with the -d, -p, -l and -v flags found in args.
// Other arguments are filtered out first with flagx.FilterArgs.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-d", "-p", "-l", "-v"})

	fs := flag.NewFlagSet("gophstore", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the store file")
	delay := fs.Int("p", int(cfg.CheckoutDelay.Seconds()), "checkout payment delay (in seconds)")
	fs.StringVar(&cfg.Logger, "l", cfg.Logger, "logger backend (slog|zap)")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	if *delay < 0 {
		return fmt.Errorf("parse flags: negative checkout delay %d", *delay)
	}

	// Only replace the delay when -p was given; whole seconds would
	// otherwise truncate a sub-second value from the config file.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "p" {
			cfg.CheckoutDelay = time.Duration(*delay) * time.Second
		}
	})
	return nil
}
