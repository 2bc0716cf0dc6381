package commands

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"git.home.luguber.info/inful/entrynav/internal/config"
	ferrors "git.home.luguber.info/inful/entrynav/internal/foundation/errors"
	"git.home.luguber.info/inful/entrynav/internal/metrics"
	"git.home.luguber.info/inful/entrynav/internal/nav"
	"git.home.luguber.info/inful/entrynav/internal/observability"
	"git.home.luguber.info/inful/entrynav/internal/server"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Listen  string `name:"listen" help:"Listen address, overriding server.host and server.port"`
	Open    bool   `help:"Open the navigation page in a browser"`
	NoWatch bool   `name:"no-watch" help:"Do not rescan when the configuration file changes"`
}

func (s *ServeCmd) Run(_ *Global, root *CLI) error {
	sigctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, wd, err := loadConfig(root.Config)
	if err != nil {
		return err
	}

	dev, err := startDevServer(sigctx, devOptions{
		ConfigPath:  root.Config,
		DefaultRoot: wd,
		Config:      cfg,
		Listen:      s.listenAddr(cfg),
		Watch:       !s.NoWatch,
	})
	if err != nil {
		return err
	}

	urls := entryURLs(dev.Addr(), dev.project.PublicPath(), interfaceAddrs())
	printBanner(os.Stdout, urls)
	if cfg.Open || s.Open {
		go func() {
			time.Sleep(500 * time.Millisecond)
			openBrowser(urls.Local)
		}()
	}

	<-sigctx.Done()
	slog.Info("Shutdown signal received, stopping dev server")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()
	return dev.Stop(stopCtx)
}

func (s *ServeCmd) listenAddr(cfg *config.Config) string {
	if s.Listen != "" {
		return s.Listen
	}
	return net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
}

type devOptions struct {
	ConfigPath  string
	DefaultRoot string
	Config      *config.Config
	Listen      string
	Watch       bool
	Debounce    time.Duration // config.DefaultDebounce when zero
}

// devServer ties one project to the HTTP server and the config watcher.
type devServer struct {
	project  *nav.Context
	server   *server.Server
	watcher  *config.Watcher
	recorder metrics.Recorder
}

func startDevServer(ctx context.Context, opts devOptions) (*devServer, error) {
	cfg := opts.Config
	d := &devServer{recorder: metrics.NoopRecorder{}}

	var metricsHandler http.Handler
	if cfg.Server.Metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		d.recorder = metrics.NewPrometheusRecorder(reg)
		metricsHandler = metrics.HTTPHandler(reg)
	}

	d.project = nav.New(NavOptions(cfg), nav.WithRecorder(d.recorder))
	production := productionMode()
	if production {
		slog.Warn("Skipping page discovery in production mode", slog.String("env", EnvMode))
	} else if err := setupProject(observability.WithTrigger(ctx, observability.TriggerStartup), d.project, cfg); err != nil {
		return nil, err
	}

	d.server = server.New(d.project, server.Options{
		Addr:     opts.Listen,
		Metrics:  metricsHandler,
		Recorder: d.recorder,
	})
	if err := d.server.Start(ctx); err != nil {
		return nil, err
	}

	if opts.Watch && !production {
		if err := d.watch(ctx, opts); err != nil {
			_ = d.server.Stop(ctx)
			return nil, err
		}
	}
	return d, nil
}

func (d *devServer) watch(ctx context.Context, opts devOptions) error {
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = config.DefaultDebounce
	}
	w, err := config.NewWatcher(opts.ConfigPath, opts.DefaultRoot, d.reload,
		config.WithDebounce(debounce),
		config.WithReloadResult(d.recorder.IncConfigReload),
	)
	if err != nil {
		return ferrors.RuntimeError("failed to create config watcher").WithCause(err).Build()
	}
	if err := w.Start(ctx); err != nil {
		w.Stop()
		return ferrors.RuntimeError("failed to start config watcher").
			WithCause(err).
			WithContext("path", opts.ConfigPath).
			Build()
	}
	d.watcher = w
	return nil
}

// reload applies a changed configuration and rescans. The listen address is fixed for
// the lifetime of the server.
func (d *devServer) reload(ctx context.Context, cfg *config.Config) error {
	d.project.Reconfigure(NavOptions(cfg))
	return setupProject(observability.WithTrigger(ctx, observability.TriggerReload), d.project, cfg)
}

// Addr returns the bound listen address.
func (d *devServer) Addr() string { return d.server.Addr() }

// Stop stops the watcher and shuts the server down.
func (d *devServer) Stop(ctx context.Context) error {
	if d.watcher != nil {
		d.watcher.Stop()
	}
	if err := d.server.Stop(ctx); err != nil {
		return ferrors.RuntimeError("failed to stop dev server").WithCause(err).Build()
	}
	slog.Info("Dev server stopped")
	return nil
}
