// Package config loads the sleepy-hyprland YAML configuration. Reserved
// top-level keys configure the daemon itself; every other mapping is handed
// to the plugin of the same name as its Section.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDirName  = "sleepy-hyprland"
	DefaultFileName = "config.yaml"
)

// ErrNotFound is returned by Load when the config file does not exist.
var ErrNotFound = errors.New("config file not found")

var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

var reservedKeys = map[string]bool{
	"plugins": true,
	"log":     true,
	"history": true,
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type HistoryConfig struct {
	PostgresURL string `yaml:"postgres_url"`
}

// Config is an immutable snapshot of the config file.
type Config struct {
	Plugins  []string
	Log      LogConfig
	History  HistoryConfig
	Sections map[string]Section

	path string
}

// fileConfig mirrors the reserved keys of the file.
type fileConfig struct {
	Plugins []string      `yaml:"plugins"`
	Log     LogConfig     `yaml:"log"`
	History HistoryConfig `yaml:"history"`
}

// DefaultPath returns $XDG_CONFIG_HOME/sleepy-hyprland/config.yaml
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(dir, DefaultDirName, DefaultFileName), nil
}

// Load reads and parses the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	cfg.path = path
	return cfg, nil
}

// Parse decodes YAML config data. ${VAR} references inside string values are
// replaced with the value of the environment variable VAR.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{Sections: make(map[string]Section)}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 {
		return cfg, nil
	}
	expandNode(&doc)

	var fc fileConfig
	if err := doc.Decode(&fc); err != nil {
		return nil, err
	}
	cfg.Plugins = fc.Plugins
	cfg.Log = fc.Log
	cfg.History = fc.History

	var raw map[string]interface{}
	if err := doc.Decode(&raw); err != nil {
		return nil, err
	}
	for key, value := range raw {
		if reservedKeys[key] {
			continue
		}
		if m, ok := value.(map[string]interface{}); ok {
			cfg.Sections[key] = Section(m)
		}
	}

	return cfg, nil
}

// expandNode replaces ${VAR} references in every string scalar below n.
func expandNode(n *yaml.Node) {
	if n.Kind == yaml.ScalarNode && n.ShortTag() == "!!str" {
		n.Value = envRef.ReplaceAllStringFunc(n.Value, func(ref string) string {
			return os.Getenv(envRef.FindStringSubmatch(ref)[1])
		})
		return
	}
	for _, child := range n.Content {
		expandNode(child)
	}
}

// Path returns the file the config was loaded from, if any.
func (c *Config) Path() string {
	return c.path
}

// Section returns the named plugin section. A missing section is empty, not nil-unsafe.
func (c *Config) Section(name string) Section {
	if s, ok := c.Sections[name]; ok {
		return s
	}
	return Section{}
}

// HasPlugin reports whether name is listed under plugins.
func (c *Config) HasPlugin(name string) bool {
	for _, p := range c.Plugins {
		if p == name {
			return true
		}
	}
	return false
}
