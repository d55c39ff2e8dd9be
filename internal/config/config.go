// Package config handles wingedge configuration loading and management.
package config

import (
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/Faultbox/wingedge/internal/logger"
	"github.com/Faultbox/wingedge/pkg/winged"
)

// Config holds all wingedge settings.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Build   BuildConfig   `yaml:"build"`
	Watch   WatchConfig   `yaml:"watch"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
	Console bool   `yaml:"console"`
}

// BuildConfig holds mesh construction settings.
type BuildConfig struct {
	NonManifold string `yaml:"non_manifold"` // "reject" or "keep"
	// Strict makes a build fail when any shape fails.
	Strict bool `yaml:"strict"`
}

// WatchConfig holds settings for rebuilding on file changes.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
			Console: true,
		},
		Build: BuildConfig{
			NonManifold: winged.RejectFace.String(),
		},
		Watch: WatchConfig{
			Debounce: 200 * time.Millisecond,
		},
	}
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs error
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("logging.level: %w", err))
	}
	if _, err := winged.ParseNonManifoldPolicy(c.Build.NonManifold); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("build.non_manifold: %w", err))
	}
	if c.Watch.Debounce < 0 {
		errs = multierr.Append(errs, fmt.Errorf("watch.debounce: negative duration %s", c.Watch.Debounce))
	}
	return errs
}

// NonManifoldPolicy returns the configured policy.
func (c *Config) NonManifoldPolicy() (winged.NonManifoldPolicy, error) {
	return winged.ParseNonManifoldPolicy(c.Build.NonManifold)
}

// LoggerOptions converts the logging section for logger.Init.
func (c *Config) LoggerOptions() logger.Options {
	opts := logger.Options{
		Level:   c.Logging.Level,
		Console: c.Logging.Console,
	}
	if c.Logging.LogFile != "" {
		opts.File = logger.DefaultFileConfig(c.Logging.LogFile)
	}
	return opts
}
