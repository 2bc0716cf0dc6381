package config

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"

	"git.home.luguber.info/inful/entrynav/internal/entries"
	ferrors "git.home.luguber.info/inful/entrynav/internal/foundation/errors"
	"git.home.luguber.info/inful/entrynav/internal/title"
)

// Validate checks patterns, ports and the host convention, and compiles the title rules.
// Entries are not checked; a malformed value is reported when the project is set up.
func (c *Config) Validate() error {
	for _, p := range c.Source {
		if !doublestar.ValidatePattern(p) {
			return ferrors.ValidationError(fmt.Sprintf("invalid source pattern %q", p)).
				WithContext("key", "source").
				Build()
		}
	}
	for _, p := range c.Glob.Ignore {
		if !doublestar.ValidatePattern(p) {
			return ferrors.ValidationError(fmt.Sprintf("invalid ignore pattern %q", p)).
				WithContext("key", "glob.ignore").
				Build()
		}
	}

	rules, err := title.CompileRules(c.TitleRule)
	if err != nil {
		return ferrors.ConfigError("invalid title_rule").WithCause(err).Build()
	}
	c.titleRules = rules

	host, err := entries.ParseHost(c.Host)
	if err != nil {
		return ferrors.ValidationError("invalid host").WithCause(err).WithContext("key", "host").Build()
	}
	c.host = host

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return ferrors.ValidationError(fmt.Sprintf("server.port %d out of range", c.Server.Port)).
			WithContext("key", "server.port").
			Build()
	}
	return nil
}
