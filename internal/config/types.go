package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/entrynav/internal/discovery"
)

// StringList accepts either a single YAML scalar or a sequence of scalars.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *StringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*l = nil
			return nil
		}
		*l = StringList{value.Value}
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		*l = items
		return nil
	default:
		return fmt.Errorf("line %d: expected a string or a list of strings", value.Line)
	}
}

// GlobConfig tunes source globbing.
type GlobConfig struct {
	Ignore          StringList `yaml:"ignore"`           // Extra ignore globs relative to cwd
	Dot             bool       `yaml:"dot"`              // Match hidden files and directories
	CaseInsensitive bool       `yaml:"case_insensitive"` // Case-insensitive source and ignore globs
	FollowSymlinks  *bool      `yaml:"follow_symlinks"`  // Defaults to true
}

// Options returns the switches for the discovery engine.
func (g GlobConfig) Options() discovery.GlobOptions {
	return discovery.GlobOptions{
		Dot:             g.Dot,
		CaseInsensitive: g.CaseInsensitive,
		NoFollow:        g.FollowSymlinks != nil && !*g.FollowSymlinks,
	}
}

// ServerConfig configures the dev server.
type ServerConfig struct {
	Host    string `yaml:"host"`    // Listen address; empty listens on all interfaces
	Port    int    `yaml:"port"`    // Listen port
	Metrics bool   `yaml:"metrics"` // Expose /metrics
}
