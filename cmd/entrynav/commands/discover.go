package commands

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/entrynav/internal/config"
	"git.home.luguber.info/inful/entrynav/internal/discovery"
	"git.home.luguber.info/inful/entrynav/internal/logfields"
	"git.home.luguber.info/inful/entrynav/internal/metrics"
	"git.home.luguber.info/inful/entrynav/internal/observability"
)

// DiscoverCmd implements the 'discover' command.
type DiscoverCmd struct {
	ActiveOnly bool `name:"active-only" help:"Only list pages of the configured entries"`
}

func (d *DiscoverCmd) Run(_ *Global, root *CLI) error {
	cfg, _, err := loadConfig(root.Config)
	if err != nil {
		return err
	}
	_, err = RunDiscover(context.Background(), cfg, d.ActiveOnly)
	return err
}

// RunDiscover scans once and logs every page followed by a summary.
func RunDiscover(ctx context.Context, cfg *config.Config, activeOnly bool) (*discovery.Snapshot, error) {
	ctx = observability.WithTrigger(ctx, observability.TriggerManual)
	project, err := newProject(ctx, cfg, metrics.NoopRecorder{})
	if err != nil {
		return nil, err
	}

	snap := project.Snapshot()
	ctx = observability.WithScanID(ctx, snap.ID)
	for _, p := range snap.Pages() {
		if activeOnly && !p.Active {
			continue
		}
		observability.InfoContext(ctx, "Page discovered",
			logfields.Page(p.Entry),
			logfields.Title(p.Title),
			logfields.Path(p.Directory),
			logfields.Active(p.Active),
			slog.Int("files", len(p.Files)))
	}
	observability.InfoContext(ctx, "Discovery completed",
		logfields.Count(snap.Len()),
		slog.Int(logfields.KeyActive, snap.ActiveCount()),
		slog.String("project", project.ProjectName()))
	return snap, nil
}
