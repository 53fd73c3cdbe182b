// Package config loads .webcompat.yml configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sprite-ai/webcompat/internal/runner"
)

// Config represents the .webcompat.yml configuration file.
type Config struct {
	Variants  []runner.Variant `yaml:"variants,omitempty"`
	Skip      []string         `yaml:"skip,omitempty"`
	Structure *bool            `yaml:"structure,omitempty"`
	Format    string           `yaml:"format,omitempty"`
	Output    string           `yaml:"output,omitempty"`
	Port      int              `yaml:"port,omitempty"`
	Parallel  int              `yaml:"parallel,omitempty"`
	LogLevel  string           `yaml:"log_level,omitempty"`
	LogFormat string           `yaml:"log_format,omitempty"`
}

// Names searched in the base directory, in order.
var fileNames = []string{".webcompat.yml", ".webcompat.yaml"}

// Load reads the config file from dir. If dir is a file, it is loaded
// directly. If no config file is found, it returns a zero Config.
func Load(dir string) (Config, error) {
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		return LoadFile(dir)
	}
	for _, name := range fileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Config{}, fmt.Errorf("reading %s: %w", path, err)
		}
		return LoadFile(path)
	}
	return Config{}, nil
}

// LoadFile reads the config file at path. Unlike Load, a missing file is an
// error.
func LoadFile(path string) (Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading %s: %w", path, err)
	}
	if info.Size() > 1<<20 {
		return Config{}, fmt.Errorf("config file too large: %s (%d bytes, max 1 MB)", path, info.Size())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	for i, v := range c.Variants {
		if v.Markup == "" && v.Style == "" && v.Script == "" {
			return fmt.Errorf("variant %d (%q) names no artifacts", i, v.Name)
		}
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	return nil
}

// Plan returns the configured variants, or the default plan when none are set.
func (c Config) Plan() runner.Plan {
	if len(c.Variants) == 0 {
		return runner.DefaultPlan()
	}
	return runner.Plan(c.Variants)
}

// StructureEnabled reports whether structural markup rules run. Defaults to true.
func (c Config) StructureEnabled() bool {
	return c.Structure == nil || *c.Structure
}
