package config

import (
	"flag"
	"os"
	"time"

	"github.com/Enfoirer/3D-building-generator/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the reconstruction backend (default from Config)
//	-u string   base URL of the identity provider (default from Config)
//	-d string   data directory for snapshot and credentials (default from Config)
//	-i int      background refresh interval in seconds (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-u", "-d", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the reconstruction backend")
	fs.StringVar(&cfg.AuthBaseURL, "u", cfg.AuthBaseURL, "base URL of the identity provider")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory for snapshot and credentials")
	refreshInterval := fs.Int("i", int(cfg.RefreshInterval.Seconds()), "background refresh interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// A sub-second interval from JSON survives unless -i was actually given.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "i" {
			cfg.RefreshInterval = time.Duration(*refreshInterval) * time.Second
		}
	})
}
