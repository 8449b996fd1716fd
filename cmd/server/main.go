package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	emailPkg "techfest/internal/adapters/email"
	web "techfest/internal/adapters/http"
	"techfest/internal/adapters/storage"
	participantStore "techfest/internal/adapters/storage/participant"
	"techfest/internal/application/orchestrators"
	"techfest/internal/application/projections"
	"techfest/internal/config"
	domain "techfest/internal/domain/participant"
	"techfest/internal/metrics"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err.Error())
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	if cfg.Env == "production" {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	provider, cleanup, err := openProvider(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	store := participantStore.NewKVStore(provider)

	// The deadline is computed once at startup, never per request.
	var deadline domain.Deadline
	if cfg.DeadlineAt != nil {
		deadline = domain.NewDeadline(*cfg.DeadlineAt)
	} else {
		deadline = domain.RollingDeadline(time.Now())
	}
	slog.Info("deadline_configured", "at", deadline.At().Format(time.RFC3339), "fixed", cfg.DeadlineAt != nil)

	var sender emailPkg.Sender
	if cfg.ResendAPIKey != "" {
		sender = emailPkg.NewResendSender(cfg.ResendAPIKey, cfg.EmailFrom)
		slog.Info("email_sender_configured", "kind", "resend")
	} else {
		sender = emailPkg.NewNoopSender()
		if cfg.Env == "production" {
			slog.Warn("email_delivery_disabled", "hint", "set TECHFEST_RESEND_API_KEY for real delivery")
		} else {
			slog.Info("email_sender_configured", "kind", "noop")
		}
	}

	eventInfo := ""
	if cfg.EventInfoPath != "" {
		raw, err := os.ReadFile(cfg.EventInfoPath)
		if err != nil {
			return err
		}
		eventInfo = string(raw)
	}

	app := &web.App{
		ParticipantStore: store,
		Deadline:         deadline,
		Metrics:          metrics.New(),
		Sender:           sender,
		EventName:        cfg.EventName,
		EventInfo:        eventInfo,
		EmailFrom:        cfg.EmailFrom,
		Now:              time.Now,
		GenerateID:       func() string { return orchestrators.TimestampID(time.Now()) },
	}

	mux := web.NewMux(app, []byte(cfg.CSRFKey), cfg.RateLimitPerSecond)

	// Background refresh: keep the participant gauge and dashboard numbers
	// current even when no admin page is open.
	go refreshLoop(ctx, cfg.RefreshInterval, app, store, deadline)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server_starting", "version", version, "addr", cfg.Addr, "env", cfg.Env, "storage", cfg.Storage)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("server_stopping")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openProvider builds the configured storage backend and returns it with a
// cleanup function.
func openProvider(cfg config.Config) (storage.Provider, func(), error) {
	switch cfg.Storage {
	case config.StorageFile:
		p, err := storage.NewFileProvider(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("storage_initialized", "backend", "file", "dir", cfg.DataDir)
		return p, func() {}, nil

	default:
		dsn := cfg.DBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
		db, err := sql.Open("sqlite", dsn)
		if err != nil {
			return nil, nil, err
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, nil, err
		}
		if err := storage.InitDB(db); err != nil {
			db.Close()
			return nil, nil, err
		}
		slog.Info("storage_initialized", "backend", "sqlite", "path", cfg.DBPath)
		return storage.NewSQLiteProvider(db), func() { db.Close() }, nil
	}
}

// refreshLoop periodically recomputes statistics, updating the metrics gauge
// and logging a heartbeat line.
func refreshLoop(ctx context.Context, interval time.Duration, app *web.App, store participantStore.Store, deadline domain.Deadline) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats, err := projections.QueryGetStatistics(ctx, projections.GetStatisticsDeps{
				ParticipantStore: store,
				Deadline:         deadline,
				Now:              time.Now,
			})
			if err != nil {
				slog.Warn("stats_refresh_failed", "error", err.Error())
				continue
			}
			app.Metrics.SetParticipants(stats.Total)
			slog.Debug("stats_refreshed", "total", stats.Total, "today", stats.Today, "days_remaining", stats.DaysRemaining)
		}
	}
}
