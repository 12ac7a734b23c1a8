package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mcdonaldj/renamer/internal/rename"
)

// Config holds the settings for one renamer run.
type Config struct {
	Dir     string `yaml:"dir"`
	Mode    string `yaml:"mode"`
	Prefix  string `yaml:"prefix"`
	Ext     string `yaml:"ext"`
	DryRun  bool   `yaml:"dry_run"`
	Verbose bool   `yaml:"verbose"`
	Report  string `yaml:"report"`
}

// UsageError marks a configuration the user has to fix before anything runs.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }

func usageErrorf(format string, args ...any) error {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}

func DefaultConfig() *Config {
	return &Config{
		Prefix: "track",
		Ext:    "mp3",
	}
}

// Load reads a YAML config file over the defaults. An empty path returns
// the defaults; a path that was given but cannot be read is an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(ExpandPath(path))
	if err != nil {
		return nil, usageErrorf("reading config: %v", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, usageErrorf("parsing config %s: %v", path, err)
	}

	return cfg, nil
}

// Validate checks the settings and returns the transform they select.
func (c *Config) Validate() (rename.Transform, error) {
	if c.Dir == "" {
		return nil, usageErrorf("--dir is required")
	}
	if c.Mode == "" {
		return nil, usageErrorf("--mode is required")
	}

	mode, err := rename.ParseMode(c.Mode)
	if err != nil {
		return nil, usageErrorf("%v", err)
	}

	switch mode {
	case rename.ModeSequential:
		seq, err := rename.NewSequential(c.Prefix, c.Ext)
		if err != nil {
			return nil, usageErrorf("%v", err)
		}
		return seq, nil
	default:
		return rename.Normalize{}, nil
	}
}

// TargetDir returns Dir with ~ expanded and trailing separators removed.
func (c *Config) TargetDir() string {
	dir := ExpandPath(c.Dir)
	if trimmed := strings.TrimRight(dir, string(filepath.Separator)); trimmed != "" {
		return trimmed
	}
	return dir
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path // Return unexpanded if home unavailable
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
