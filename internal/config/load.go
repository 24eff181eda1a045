package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	appDirName     = "pathbuilder"
	configFileName = "config.yaml"
)

// Load resolves a path configuration from defaults, the first config file
// found and the command-line flags, in increasing priority.
func Load() (*Config, error) {
	path := ConfigPath()
	if path == "" {
		path = findConfigFile()
	}
	return resolve(path, true)
}

// LoadFile resolves defaults overlaid with a single YAML file. Flags are
// ignored.
func LoadFile(path string) (*Config, error) {
	return resolve(path, false)
}

func resolve(path string, withFlags bool) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := decodeFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}
	if withFlags {
		applyFlags(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decodeFile merges a YAML document into cfg. Unknown keys are rejected so
// a misspelled field does not silently fall back to its default.
func decodeFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// findConfigFile returns the first existing config.yaml in the working
// directory or the user config directory.
func findConfigFile() string {
	for _, path := range []string{configFileName, UserConfigFile()} {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// ConfigDir returns the per-user directory pathbuilder reads and saves
// its configuration in.
func ConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appDirName)
	}
	return filepath.Join(os.TempDir(), appDirName)
}

// UserConfigFile is the config.yaml inside ConfigDir.
func UserConfigFile() string {
	return filepath.Join(ConfigDir(), configFileName)
}
