package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/Faultbox/wingedge/pkg/winged"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
	if !cfg.Logging.Console {
		t.Error("expected console logging by default")
	}
	if cfg.Build.NonManifold != "reject" {
		t.Errorf("expected non-manifold policy 'reject', got %s", cfg.Build.NonManifold)
	}
	if cfg.Watch.Debounce != 200*time.Millisecond {
		t.Errorf("expected debounce 200ms, got %v", cfg.Watch.Debounce)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
logging:
  level: "debug"
  log_file: "build.log"

build:
  non_manifold: keep
  strict: true

watch:
  debounce: 1s
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected level debug, got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "build.log" {
		t.Errorf("expected log file build.log, got %s", cfg.Logging.LogFile)
	}
	if !cfg.Logging.Console {
		t.Error("unset keys should keep their defaults")
	}
	if cfg.Build.NonManifold != "keep" || !cfg.Build.Strict {
		t.Errorf("build section not loaded: %+v", cfg.Build)
	}
	if cfg.Watch.Debounce != time.Second {
		t.Errorf("expected debounce 1s, got %v", cfg.Watch.Debounce)
	}

	policy, err := cfg.NonManifoldPolicy()
	if err != nil || policy != winged.KeepEdge {
		t.Errorf("NonManifoldPolicy: got %v, %v", policy, err)
	}
}

func TestLoadFromFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid syntax", "logging:\n  level: [unclosed\n"},
		{"unknown key", "logging:\n  colour: true\n"},
		{"bad duration", "watch:\n  debounce: soon\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}
			if err := loadFromFile(Default(), configPath); err == nil {
				t.Error("expected an error, got nil")
			}
		})
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, nil, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("empty file should load: %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("empty file changed the config: %+v", cfg)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "loud"
	cfg.Build.NonManifold = "merge"
	cfg.Watch.Debounce = -time.Second

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, key := range []string{"logging.level", "build.non_manifold", "watch.debounce"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("error should mention %s: %v", key, err)
		}
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	chdirForTest(t, tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "wingedge.yaml")
	if err := os.WriteFile(configPath, []byte("build:\n  non_manifold: keep\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find wingedge.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		verify func(*testing.T, *Config)
	}{
		{
			name: "no flags",
			verify: func(t *testing.T, cfg *Config) {
				if *cfg != *Default() {
					t.Errorf("config changed without flags: %+v", cfg)
				}
			},
		},
		{
			name: "debug flag",
			args: []string{"--debug"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
		},
		{
			name: "quiet and log file",
			args: []string{"-q", "--log-file", "out.log"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Console {
					t.Error("expected console logging off")
				}
				if cfg.Logging.LogFile != "out.log" {
					t.Errorf("expected log file out.log, got %s", cfg.Logging.LogFile)
				}
			},
		},
		{
			name: "build flags",
			args: []string{"--non-manifold=keep", "--strict"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Build.NonManifold != "keep" || !cfg.Build.Strict {
					t.Errorf("build flags not applied: %+v", cfg.Build)
				}
			},
		},
		{
			name: "zero debounce is an explicit override",
			args: []string{"--debounce=0s"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Watch.Debounce != 0 {
					t.Errorf("expected debounce 0, got %v", cfg.Watch.Debounce)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			flags := RegisterFlags(fs)
			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("parse: %v", err)
			}

			cfg := Default()
			flags.apply(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
logging:
  level: warn
build:
  non_manifold: keep
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags := RegisterFlags(fs)
	if err := fs.Parse([]string{"--config", configPath, "--non-manifold", "reject"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	cfg, err := Load(flags)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Policy from the flag, not the file
	if cfg.Build.NonManifold != "reject" {
		t.Errorf("expected policy reject from flag, got %s", cfg.Build.NonManifold)
	}
	// Level from the file since no flag overrides it
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected level warn from file, got %s", cfg.Logging.Level)
	}
}

func TestLoadRejectsInvalidFlags(t *testing.T) {
	chdirForTest(t, t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags := RegisterFlags(fs)
	if err := fs.Parse([]string{"--non-manifold", "merge"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := Load(flags); err == nil {
		t.Error("expected an invalid policy to fail Load")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Build.NonManifold = "keep"
	cfg.Watch.Debounce = 750 * time.Millisecond
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("reloaded config differs: got %+v, want %+v", loaded, cfg)
	}
}

func TestLoggerOptions(t *testing.T) {
	cfg := Default()
	if opts := cfg.LoggerOptions(); opts.File.Path != "" || !opts.Console {
		t.Errorf("unexpected options: %+v", opts)
	}
	cfg.Logging.LogFile = "run.log"
	if opts := cfg.LoggerOptions(); opts.File.Path != "run.log" || opts.File.MaxSizeMB == 0 {
		t.Errorf("file logging not configured: %+v", opts)
	}
}

// chdirForTest changes the working directory for the duration of the test
// and restores it on cleanup (equivalent of testing.T.Chdir, Go 1.24+).
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldWd); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
