package main

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const configName = ".easyprot.toml"

// Config represents the .easyprot.toml configuration file.
type Config struct {
	Parse  ConfigParse  `toml:"parse"`
	Format ConfigFormat `toml:"format"`
	Output ConfigOutput `toml:"output"`
	Run    ConfigRun    `toml:"run"`
}

// ConfigParse holds parsing-related config.
type ConfigParse struct {
	AllowTrailing *bool `toml:"allow_trailing"`
}

// ConfigFormat holds canonical formatting config.
type ConfigFormat struct {
	Indent int `toml:"indent"`
}

// ConfigOutput selects what is printed for each file.
type ConfigOutput struct {
	Format string `toml:"format"`
}

// ConfigRun holds file discovery and scheduling config.
type ConfigRun struct {
	Jobs    int      `toml:"jobs"`
	Include []string `toml:"include"`
}

// findConfigFile walks up from the current directory to find .easyprot.toml,
// stopping at the repository root (directory containing .git).
func findConfigFile() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		candidate := filepath.Join(dir, configName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}

		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return ""
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// LoadConfig reads and parses a .easyprot.toml file.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MergeConfig applies config file values to opts, but only for fields not
// explicitly set via CLI flags. The setFlags map contains flag names that
// were explicitly passed on the command line.
func MergeConfig(opts *Options, cfg *Config, setFlags map[string]bool) {
	if cfg == nil {
		return
	}

	if cfg.Parse.AllowTrailing != nil && !setFlags["allow-trailing"] {
		opts.AllowTrailing = *cfg.Parse.AllowTrailing
	}
	if cfg.Format.Indent > 0 && !setFlags["indent"] {
		opts.Indent = cfg.Format.Indent
	}
	if cfg.Output.Format != "" && !setFlags["o"] && !setFlags["output"] {
		opts.Output = cfg.Output.Format
	}
	if cfg.Run.Jobs > 0 && !setFlags["j"] && !setFlags["jobs"] {
		opts.Jobs = cfg.Run.Jobs
	}
	if len(cfg.Run.Include) > 0 && !setFlags["include"] {
		opts.Include = cfg.Run.Include
	}
}
