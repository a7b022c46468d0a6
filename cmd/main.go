package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"

	"github.com/angeloszaimis/edge-worker/config"
	"github.com/angeloszaimis/edge-worker/internal/background"
	"github.com/angeloszaimis/edge-worker/internal/env"
	"github.com/angeloszaimis/edge-worker/internal/httpserver"
	"github.com/angeloszaimis/edge-worker/internal/metrics"
	"github.com/angeloszaimis/edge-worker/internal/worker"
	"github.com/angeloszaimis/edge-worker/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, true, cfg.Server.Environment)

	vars, err := env.Load(cfg.Worker.EnvFiles)
	if err != nil {
		log.Error("Failed to load environment", slog.Any("err", err))
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a, err := newApp(cfg, vars, log)
	if err != nil {
		log.Error("Failed to create worker", slog.Any("err", err))
		os.Exit(1)
	}

	if err := a.listen(); err != nil {
		log.Error("Failed to bind", slog.Any("err", err))
		os.Exit(1)
	}

	if err := a.serve(ctx); err != nil {
		log.Error("Worker stopped with error", slog.Any("err", err))
		os.Exit(1)
	}
}

type app struct {
	log          *slog.Logger
	queue        *background.Queue
	collector    *metrics.Collector
	public       *httpserver.Server
	admin        *httpserver.Server
	drainTimeout time.Duration
}

func newApp(cfg *config.Config, vars env.Env, log *slog.Logger) (*app, error) {
	a := &app{
		log:          log,
		queue:        background.NewQueue(cfg.Background.QueueSize, cfg.Background.Workers, log),
		collector:    metrics.NewCollector(cfg.Metrics.BufferSize, log),
		drainTimeout: cfg.DrainTimeout(),
	}

	wk := worker.New(log, vars, a.queue, a.collector)

	var err error
	a.public, err = httpserver.New("public", cfg.Server.Address, wk, log)
	if err != nil {
		return nil, errors.Wrap(err, "creating public server")
	}

	if cfg.Admin.Address != "" {
		a.admin, err = httpserver.New("admin", cfg.Admin.Address, setupAdminRouter(a.collector), log)
		if err != nil {
			return nil, errors.Wrap(err, "creating admin server")
		}
	}

	return a, nil
}

func (a *app) servers() []*httpserver.Server {
	if a.admin == nil {
		return []*httpserver.Server{a.public}
	}
	return []*httpserver.Server{a.public, a.admin}
}

func (a *app) listen() error {
	for _, srv := range a.servers() {
		if err := srv.Listen(); err != nil {
			return errors.Wrapf(err, "binding %s", srv.Addr())
		}
	}
	return nil
}

// serve runs until ctx is done or a server fails, then shuts the servers
// down and drains the background queue within the configured timeout.
func (a *app) serve(ctx context.Context) error {
	workCtx, stopWork := context.WithCancel(context.Background())
	defer stopWork()

	a.collector.Start(workCtx)
	a.queue.Start(workCtx)

	servers := a.servers()
	srvErrCh := make(chan error, len(servers))
	for _, srv := range servers {
		go func() {
			srvErrCh <- srv.Serve()
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		a.log.Info("Shutting down gracefully...")
	case err := <-srvErrCh:
		if err != nil {
			runErr = errors.Wrap(err, "serving")
		}
	}

	for _, srv := range servers {
		if err := srv.Shutdown(context.Background()); err != nil {
			a.log.Error("Error during shutdown", slog.Any("err", err))
		}
	}

	stopWork()

	drainCtx, cancel := context.WithTimeout(context.Background(), a.drainTimeout)
	defer cancel()
	_ = a.queue.Wait(drainCtx)

	return runErr
}
