// Package config loads entrynav.yaml: environment files, variable expansion, defaults
// and validation. Every key is optional so the tool runs without a configuration file.
package config

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/entrynav/internal/entries"
	ferrors "git.home.luguber.info/inful/entrynav/internal/foundation/errors"
	"git.home.luguber.info/inful/entrynav/internal/logfields"
	"git.home.luguber.info/inful/entrynav/internal/pathutil"
)

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = "entrynav.yaml"

// Config is the entrynav configuration file.
type Config struct {
	Source      StringList   `yaml:"source"`       // Entry file globs relative to cwd
	Cwd         string       `yaml:"cwd"`          // Glob directory, relative to root unless absolute
	Root        string       `yaml:"root"`         // Project root; defaults to the process working directory
	ProjectName string       `yaml:"project_name"` // Defaults to the base name of root
	Glob        GlobConfig   `yaml:"glob"`
	TitleRule   StringList   `yaml:"title_rule"` // Regex rules; capture group 1 is the title
	MainAlias   string       `yaml:"main_alias"` // Sibling file searched first for titles
	TitleExt    string       `yaml:"title_ext"`  // Component extension for title candidates
	URLScheme   *string      `yaml:"url_scheme"` // Editor scheme or template; "" disables links
	Open        bool         `yaml:"open"`       // Open the navigation page on serve
	Base        string       `yaml:"base"`       // Public path prefix
	Host        string       `yaml:"host"`       // Entry convention: vite or webpack
	Entries     any          `yaml:"entries"`    // Entries being built, in the host's shape
	Server      ServerConfig `yaml:"server"`

	titleRules []*regexp.Regexp
	host       entries.Host
}

// Load reads configPath. A missing file yields the defaults. .env and .env.local next to
// the file are loaded first without overriding variables already set.
func Load(configPath string) (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, ferrors.ConfigError("cannot determine working directory").WithCause(err).Build()
	}
	return LoadFrom(configPath, wd)
}

// LoadFrom is Load with an explicit default project root.
func LoadFrom(configPath, defaultRoot string) (*Config, error) {
	loadEnvFiles(filepath.Dir(configPath))

	cfg := &Config{}
	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		slog.Debug("No configuration file, using defaults", logfields.Path(configPath))
	case err != nil:
		return nil, ferrors.ConfigError("failed to read config file").
			WithCause(err).
			WithContext("path", configPath).
			Build()
	default:
		if err := decode(expandEnv(string(data)), cfg); err != nil {
			return nil, ferrors.ConfigError("failed to parse config file").
				WithCause(err).
				WithContext("path", configPath).
				Build()
		}
	}

	applyDefaults(cfg, defaultRoot)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// templatePlaceholders are url_scheme template variables that must survive env expansion.
var templatePlaceholders = map[string]struct{}{
	"absolute":    {},
	"relative":    {},
	"projectName": {},
}

// expandEnv substitutes environment variables like os.ExpandEnv but leaves the
// url_scheme template placeholders in place.
func expandEnv(raw string) string {
	return os.Expand(raw, func(name string) string {
		if _, ok := templatePlaceholders[name]; ok {
			return "${" + name + "}"
		}
		return os.Getenv(name)
	})
}

func decode(raw string, cfg *Config) error {
	dec := yaml.NewDecoder(strings.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// loadEnvFiles loads .env then .env.local from dir. Existing variables win.
func loadEnvFiles(dir string) {
	for _, name := range []string{".env", ".env.local"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			slog.Warn("Failed to load environment file", logfields.Path(p), logfields.Error(err))
			continue
		}
		slog.Debug("Loaded environment variables", logfields.Path(p))
	}
}

// WorkDir returns the absolute, slash-normalized glob directory.
func (c *Config) WorkDir() string {
	if pathutil.IsAbs(c.Cwd) {
		return pathutil.Normalize(c.Cwd)
	}
	return pathutil.Join(c.Root, c.Cwd)
}

// Scheme returns the configured editor scheme.
func (c *Config) Scheme() string {
	if c.URLScheme == nil {
		return DefaultURLScheme
	}
	return *c.URLScheme
}

// TitleRules returns the compiled title rules. Valid after Validate.
func (c *Config) TitleRules() []*regexp.Regexp {
	return append([]*regexp.Regexp(nil), c.titleRules...)
}

// HostKind returns the classified host convention. Valid after Validate.
func (c *Config) HostKind() entries.Host { return c.host }

// EntryShape converts the configured entries with the host convention.
func (c *Config) EntryShape() (entries.Shape, error) {
	return entries.FromHost(c.host, c.Entries)
}
