package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/net/netutil"

	"paypal-relay/internal/domain/ports"
)

const (
	shutdownTimeout = 5 * time.Second
	probeTimeout    = 30 * time.Second
)

// Options controls how the App listens and which background jobs it runs.
type Options struct {
	ListenAddr     string
	MaxConnections int
	ProbeSchedule  string
}

// App manages the lifecycle of the relay HTTP server and the webhook probe.
type App struct {
	handler http.Handler
	probe   ports.NotifierProbe
	logger  ports.Logger
	opts    Options
	cron    *cron.Cron
}

// New constructs an App instance.
func New(handler http.Handler, probe ports.NotifierProbe, logger ports.Logger, opts Options) *App {
	return &App{
		handler: handler,
		probe:   probe,
		logger:  logger,
		opts:    opts,
		cron:    cron.New(),
	}
}

// Run listens on the configured address and serves until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.opts.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", a.opts.ListenAddr, err)
	}
	return a.Serve(ctx, ln)
}

// Serve runs the relay on ln until ctx is cancelled, then shuts down gracefully.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	if a.opts.MaxConnections > 0 {
		ln = netutil.LimitListener(ln, a.opts.MaxConnections)
	}

	if err := a.scheduleProbe(); err != nil {
		_ = ln.Close()
		return err
	}

	srv := &http.Server{
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	a.logger.Info(ctx, "relay listening", "addr", ln.Addr().String(), "max_connections", a.opts.MaxConnections)
	a.cron.Start()

	select {
	case err := <-errCh:
		a.stopCron()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error(shutdownCtx, "graceful shutdown failed", "error", err)
	}
	a.stopCron()
	a.logger.Info(context.Background(), "relay stopped")
	return nil
}

func (a *App) scheduleProbe() error {
	if a.opts.ProbeSchedule == "" || a.probe == nil {
		return nil
	}

	_, err := a.cron.AddFunc(a.opts.ProbeSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
		defer cancel()
		a.runProbe(ctx)
	})
	if err != nil {
		return fmt.Errorf("schedule webhook probe %q: %w", a.opts.ProbeSchedule, err)
	}
	a.logger.Info(context.Background(), "webhook probe scheduled", "cron", a.opts.ProbeSchedule)
	return nil
}

func (a *App) runProbe(ctx context.Context) {
	if err := a.probe.Ping(ctx); err != nil {
		a.logger.Error(ctx, "discord webhook probe failed", "error", err)
		return
	}
	a.logger.Debug(ctx, "discord webhook probe succeeded")
}

func (a *App) stopCron() {
	stopCtx := a.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(shutdownTimeout):
	}
}
