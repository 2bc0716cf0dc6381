package commands

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/entrynav/internal/config"
	ferrors "git.home.luguber.info/inful/entrynav/internal/foundation/errors"
	"git.home.luguber.info/inful/entrynav/internal/logfields"
	"git.home.luguber.info/inful/entrynav/internal/metrics"
	"git.home.luguber.info/inful/entrynav/internal/observability"
	"git.home.luguber.info/inful/entrynav/internal/pathutil"
	"git.home.luguber.info/inful/entrynav/internal/render"
	"git.home.luguber.info/inful/entrynav/internal/server"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	Out string `short:"o" name:"out" default:"dist" help:"Output directory for the navigation page"`
}

func (g *GenerateCmd) Run(_ *Global, root *CLI) error {
	cfg, _, err := loadConfig(root.Config)
	if err != nil {
		return err
	}
	target, err := RunGenerate(context.Background(), cfg, g.Out)
	if err != nil {
		return err
	}
	if target != "" {
		fmt.Printf("Wrote %s\n", target)
	}
	return nil
}

// RunGenerate scans once and writes <out>/__entry.html. It returns the written path, or
// "" when skipped in production mode.
func RunGenerate(ctx context.Context, cfg *config.Config, out string) (string, error) {
	if productionMode() {
		slog.Warn("Skipping navigation page in production mode", slog.String("env", EnvMode))
		return "", nil
	}

	project, err := newProject(observability.WithTrigger(ctx, observability.TriggerGenerate), cfg, metrics.NoopRecorder{})
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := render.Render(&buf, project.TemplateParams()); err != nil {
		return "", err
	}

	if err := os.MkdirAll(out, 0o755); err != nil {
		return "", ferrors.FileSystemError("failed to create output directory").
			WithCause(err).
			WithContext("path", out).
			Build()
	}
	target := filepath.Join(out, server.EntryName+pathutil.PageExt)
	if err := os.WriteFile(target, buf.Bytes(), 0o644); err != nil {
		return "", ferrors.FileSystemError("failed to write navigation page").
			WithCause(err).
			WithContext("path", target).
			Build()
	}
	slog.Info("Navigation page written", logfields.Path(target), logfields.Count(project.Snapshot().Len()))
	return target, nil
}
