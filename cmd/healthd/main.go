// Command healthd serves an application/health+json report for the checks
// declared in its configuration file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonwraymond/healthjson/config"
	"github.com/jonwraymond/healthjson/observe"
	"github.com/jonwraymond/healthjson/secret"
)

func main() {
	var (
		configPath   string
		addrOverride string
	)
	flag.StringVar(&configPath, "config", "healthd.yaml", "path to configuration file")
	flag.StringVar(&addrOverride, "addr", "", "override listen address")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, configPath, addrOverride); err != nil {
		fmt.Fprintf(os.Stderr, "healthd: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath, addrOverride string) error {
	resolver, err := secret.NewDefaultResolver()
	if err != nil {
		return err
	}
	defer resolver.Close()

	cfg, err := config.Load(ctx, configPath, resolver)
	if err != nil {
		return err
	}
	if addrOverride != "" {
		cfg.Server.Addr = addrOverride
	}

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration)
		defer cancel()
		if err := a.close(shutdownCtx); err != nil {
			a.logger.Error(shutdownCtx, "shutdown incomplete", observe.F("error", err.Error()))
		}
	}()

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           a.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info(ctx, "server listening",
			observe.F("addr", cfg.Server.Addr),
			observe.F("path", cfg.Server.Path),
			observe.F("checks", len(a.checks.Checks())),
		)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info(context.Background(), "shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	a.logger.Info(shutdownCtx, "server stopped")
	return nil
}
