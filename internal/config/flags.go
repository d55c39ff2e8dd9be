package config

import (
	"time"

	"github.com/spf13/pflag"
)

// Flags holds the command-line overrides registered on a FlagSet.
type Flags struct {
	ConfigPath  string
	Debug       bool
	Quiet       bool
	LogFile     string
	NonManifold string
	Strict      bool
	Debounce    time.Duration

	fs *pflag.FlagSet
}

// RegisterFlags binds the override flags to fs.
func RegisterFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVarP(&f.ConfigPath, "config", "c", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.BoolVarP(&f.Quiet, "quiet", "q", false, "Disable console logging")
	fs.StringVar(&f.LogFile, "log-file", "", "Write logs to this file")
	fs.StringVar(&f.NonManifold, "non-manifold", "", `Non-manifold edge policy: "reject" or "keep"`)
	fs.BoolVar(&f.Strict, "strict", false, "Fail when any shape cannot be built")
	fs.DurationVar(&f.Debounce, "debounce", 0, "Delay before rebuilding after a change")
	return f
}

// apply copies every flag the user set onto cfg.
func (f *Flags) apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Quiet {
		cfg.Logging.Console = false
	}
	if f.changed("log-file") {
		cfg.Logging.LogFile = f.LogFile
	}
	if f.changed("non-manifold") {
		cfg.Build.NonManifold = f.NonManifold
	}
	if f.Strict {
		cfg.Build.Strict = true
	}
	if f.changed("debounce") {
		cfg.Watch.Debounce = f.Debounce
	}
}

func (f *Flags) changed(name string) bool {
	return f.fs != nil && f.fs.Changed(name)
}
