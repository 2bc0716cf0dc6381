package config

import "git.home.luguber.info/inful/entrynav/internal/pathutil"

const (
	DefaultSource    = "**/*/main.{js,ts}"
	DefaultCwd       = "src/modules"
	DefaultURLScheme = "vscode"
	DefaultBase      = "/"
	DefaultPort      = 8090
)

func applyDefaults(cfg *Config, defaultRoot string) {
	if len(cfg.Source) == 0 {
		cfg.Source = StringList{DefaultSource}
	}
	if cfg.Cwd == "" {
		cfg.Cwd = DefaultCwd
	}
	switch {
	case cfg.Root == "":
		cfg.Root = defaultRoot
	case !pathutil.IsAbs(cfg.Root):
		cfg.Root = pathutil.Join(defaultRoot, cfg.Root)
	}
	cfg.Root = pathutil.Normalize(cfg.Root)
	if cfg.Base == "" {
		cfg.Base = DefaultBase
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
}
