package daemon

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// ShutdownTimeout bounds the graceful shutdown of the HTTP server
const ShutdownTimeout = 30 * time.Second

// Sweeper evicts idle sessions
type Sweeper interface {
	Sweep(maxIdle time.Duration) int
	Len() int
}

// Options configures a Daemon
type Options struct {
	SweepInterval  time.Duration
	SessionIdleTTL time.Duration
	SystemTray     bool // Show system tray icon (Windows only)
}

// Daemon runs the HTTP server until a signal, Stop or the tray's Quit
type Daemon struct {
	server   *http.Server
	sessions Sweeper
	opts     Options
	logger   *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
	trayApp  *TrayApp
	addr     string
}

// NewDaemon creates a new daemon instance
func NewDaemon(server *http.Server, sessions Sweeper, opts Options, logger *zap.Logger) *Daemon {
	ctx, cancel := context.WithCancel(context.Background())

	if opts.SweepInterval <= 0 {
		opts.SweepInterval = 10 * time.Minute
	}
	if opts.SessionIdleTTL <= 0 {
		opts.SessionIdleTTL = 12 * time.Hour
	}

	return &Daemon{
		server:   server,
		sessions: sessions,
		opts:     opts,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
		addr:     server.Addr,
	}
}

// Start listens on the server address and blocks until the daemon stops
func (d *Daemon) Start() error {
	ln, err := net.Listen("tcp", d.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", d.server.Addr, err)
	}
	d.addr = ln.Addr().String()

	// Initialize system tray if enabled (Windows only)
	if d.opts.SystemTray {
		d.logger.Info("Initializing system tray")
		trayApp, err := NewTrayApp(d, d.logger)
		if err != nil {
			d.logger.Warn("Failed to initialize system tray", zap.Error(err))
			return d.Serve(ln)
		}
		d.trayApp = trayApp

		errCh := make(chan error, 1)
		d.trayApp.OnReady(func() {
			errCh <- d.Serve(ln)
		})
		// Run tray (blocks until Quit)
		d.trayApp.Run()
		return <-errCh
	}

	d.logger.Info("Running without system tray")
	return d.Serve(ln)
}

// Serve serves HTTP on ln, sweeps idle sessions periodically and shuts down
// gracefully on SIGINT, SIGTERM or Stop.
func (d *Daemon) Serve(ln net.Listener) error {
	d.addr = ln.Addr().String()

	errCh := make(chan error, 1)
	go func() {
		if err := d.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	d.logger.Info("Server started",
		zap.String("addr", d.addr),
		zap.Duration("sweep_interval", d.opts.SweepInterval),
		zap.Duration("session_idle_ttl", d.opts.SessionIdleTTL))

	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	ticker := time.NewTicker(d.opts.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-d.ctx.Done():
			d.logger.Info("Daemon stopped")
			return d.shutdown()

		case sig := <-sigChan:
			d.logger.Info("Received signal, shutting down",
				zap.String("signal", sig.String()))
			d.Stop()
			return d.shutdown()

		case err, ok := <-errCh:
			if ok {
				d.Stop()
				return fmt.Errorf("server failed: %w", err)
			}
			return nil

		case <-ticker.C:
			d.SweepNow()
		}
	}
}

func (d *Daemon) shutdown() error {
	if d.trayApp != nil {
		d.trayApp.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := d.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	d.logger.Info("Server stopped")
	return nil
}

// Stop stops the daemon
func (d *Daemon) Stop() {
	d.cancel()
}

// SweepNow evicts idle sessions immediately
func (d *Daemon) SweepNow() int {
	evicted := d.sessions.Sweep(d.opts.SessionIdleTTL)
	d.logger.Debug("Session sweep finished",
		zap.Int("evicted", evicted),
		zap.Int("sessions", d.sessions.Len()))
	return evicted
}

// URL returns the address the calendar is served on
func (d *Daemon) URL() string {
	host, port, err := net.SplitHostPort(d.addr)
	if err != nil {
		return "http://" + d.addr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}

// GetStatus returns daemon status
func (d *Daemon) GetStatus() map[string]interface{} {
	return map[string]interface{}{
		"running":  d.ctx.Err() == nil,
		"url":      d.URL(),
		"sessions": d.sessions.Len(),
	}
}
