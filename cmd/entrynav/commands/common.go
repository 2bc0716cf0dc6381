package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/entrynav/internal/config"
	"git.home.luguber.info/inful/entrynav/internal/entries"
	ferrors "git.home.luguber.info/inful/entrynav/internal/foundation/errors"
	"git.home.luguber.info/inful/entrynav/internal/logfields"
	"git.home.luguber.info/inful/entrynav/internal/metrics"
	"git.home.luguber.info/inful/entrynav/internal/nav"
	"git.home.luguber.info/inful/entrynav/internal/observability"
)

// EnvMode names the variable that switches entrynav into production mode.
const EnvMode = "ENTRYNAV_ENV"

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"entrynav.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Serve    ServeCmd    `cmd:"" default:"withargs" help:"Serve the navigation page and rescan when the configuration changes"`
	Generate GenerateCmd `cmd:"" help:"Write the navigation page to a directory"`
	Discover DiscoverCmd `cmd:"" help:"List discovered pages without serving"`
	Init     InitCmd     `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// loadConfig loads path with the process working directory as default root.
func loadConfig(path string) (*config.Config, string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, "", ferrors.ConfigError("cannot determine working directory").WithCause(err).Build()
	}
	cfg, err := config.LoadFrom(path, wd)
	if err != nil {
		return nil, "", err
	}
	return cfg, wd, nil
}

// NavOptions maps a loaded configuration onto project options.
func NavOptions(cfg *config.Config) nav.Options {
	return nav.Options{
		Root:        cfg.Root,
		WorkDir:     cfg.WorkDir(),
		ProjectName: cfg.ProjectName,
		Sources:     cfg.Source,
		Ignore:      cfg.Glob.Ignore,
		Glob:        cfg.Glob.Options(),
		TitleRules:  cfg.TitleRules(),
		MainAlias:   cfg.MainAlias,
		TitleExt:    cfg.TitleExt,
		URLScheme:   cfg.Scheme(),
	}
}

// newProject builds a context for cfg and runs the first scan.
func newProject(ctx context.Context, cfg *config.Config, rec metrics.Recorder) (*nav.Context, error) {
	project := nav.New(NavOptions(cfg), nav.WithRecorder(rec))
	if err := setupProject(ctx, project, cfg); err != nil {
		return nil, err
	}
	return project, nil
}

// setupProject scans with the configured entries. Entries that do not fit the host
// convention are logged and replaced by an empty set, so every page is inactive.
func setupProject(ctx context.Context, project *nav.Context, cfg *config.Config) error {
	shape, err := cfg.EntryShape()
	if err != nil {
		warn := ferrors.NewError(ferrors.CategoryConfig, "invalid entries, no page is marked active").
			WithCause(err).
			WithContext("host", string(cfg.HostKind())).
			Warning().
			Build()
		observability.WarnContext(ctx, warn.Message(), logfields.Error(warn))
		shape = entries.None()
	}
	return project.SetupContext(ctx, cfg.Base, shape)
}

func productionMode() bool {
	return os.Getenv(EnvMode) == "production"
}
