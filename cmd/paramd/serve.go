package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"paramd/internal/catalog"
	"paramd/internal/config"
	"paramd/internal/httpapi"
)

const shutdownGrace = 5 * time.Second

// newLogger builds the process logger from log_level and log_format.
func newLogger(cfg config.Config, w io.Writer) zerolog.Logger {
	lvl := zerolog.Disabled
	if cfg.LogLevel != "off" {
		if l, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
			lvl = l
		}
	}
	if cfg.LogFormat == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Str("service", "paramd").Logger()
}

// accessLogLevel maps log_level onto the access log levels.
func accessLogLevel(level string) string {
	switch level {
	case "debug", "info", "off":
		return level
	case "warn", "error":
		return "error"
	}
	return "info"
}

// configure pushes cfg into the HTTP layer.
func configure(cfg config.Config, logger zerolog.Logger) {
	httpapi.SetLogger(logger)
	httpapi.SetDefaultLogLevel(accessLogLevel(cfg.LogLevel))
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetRequestTimeoutSeconds(cfg.RequestTimeoutSeconds)
	httpapi.SetCORSOptions(cfg.CORSEnabled, cfg.CORSAllowedOrigins, cfg.CORSAllowedMethods, cfg.CORSAllowedHeaders)
	httpapi.SetDocsEnabled(cfg.DocsEnabled)
}

func newServer(cfg config.Config) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.NewMux(catalog.New()),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// serve runs the HTTP server until ctx is canceled, then shuts it down
// gracefully. Handlers observe ctx through the base context.
func serve(ctx context.Context, cfg config.Config, logger zerolog.Logger) error {
	configure(cfg, logger)
	httpapi.SetBaseContext(ctx)
	srv := newServer(cfg)

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr).Msg("paramd listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	logger.Info().Msg("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
