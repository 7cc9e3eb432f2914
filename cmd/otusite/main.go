// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the site API server.
//
// Usage:
//
//	otusite [serve]   migrate, then serve HTTP (seeds automatically in development)
//	otusite migrate   apply pending migrations and exit
//	otusite seed      apply migrations, seed the admin, stats and sample content, and exit
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"otusite/internal/cache"
	"otusite/internal/config"
	"otusite/internal/database"
	"otusite/internal/gate"
	"otusite/internal/handlers"
	"otusite/internal/jobs"
	"otusite/internal/router"
	"otusite/internal/session"
	"otusite/internal/storage"
	"otusite/internal/store"
)

func main() {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: JSON in production, text in development.
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, opts)
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))

	cmd := "serve"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "serve":
		err = serve(cfg)
	case "migrate":
		err = migrate(cfg)
	case "seed":
		err = seed(cfg)
	default:
		err = fmt.Errorf("unknown command %q (want serve, migrate or seed)", cmd)
	}
	if err != nil {
		slog.Error("command failed", "command", cmd, "error", err)
		os.Exit(1)
	}
}

// openDB connects to PostgreSQL and applies pending migrations.
func openDB(cfg *config.Config) (*sql.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return db, nil
}

func migrate(cfg *config.Config) error {
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	slog.Info("migrations applied")
	return nil
}

func seed(cfg *config.Config) error {
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	return runSeed(db, cfg)
}

func runSeed(db *sql.DB, cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return database.Seed(ctx, db, database.SeedOptions{
		AdminUsername: cfg.AdminUsername,
		AdminPassword: cfg.AdminPassword,
		SampleContent: true,
	})
}

func serve(cfg *config.Config) error {
	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := runSeed(db, cfg); err != nil {
			return fmt.Errorf("seed database: %w", err)
		}
	}

	// Connect to Valkey (sessions + response cache).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword, cfg.ValkeyDB)
	if err != nil {
		return fmt.Errorf("connect valkey: %w", err)
	}
	defer valkeyClient.Close()

	// Session cookies are Secure (HTTPS-only) outside development.
	sessionStore := session.NewStore(valkeyClient, cfg.SessionSecret, !cfg.IsDev())
	responseCache := cache.NewResponseCache(valkeyClient, cache.DefaultResponseTTL)

	// Uploads go to S3 when configured, otherwise to the local directory.
	var backend storage.Backend
	uploadDir := ""
	if cfg.S3Enabled() {
		s3, err := storage.NewS3(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicURL)
		if err != nil {
			return fmt.Errorf("init s3 storage: %w", err)
		}
		backend = s3
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		disk, err := storage.NewDisk(cfg.UploadDir, "/uploads")
		if err != nil {
			return fmt.Errorf("init upload dir: %w", err)
		}
		backend = disk
		uploadDir = disk.Dir()
		slog.Info("uploads stored on disk", "dir", uploadDir)
	}

	// Background removal of uploads no content references.
	var scheduler *jobs.Scheduler
	if cfg.UploadSweepSchedule != "" {
		sweeper := jobs.NewSweeper(backend, store.NewUploadRefs(db), jobs.DefaultMinAge)
		scheduler, err = jobs.NewScheduler(cfg.UploadSweepSchedule, sweeper)
		if err != nil {
			return err
		}
		scheduler.Start()
	}

	contentGate := gate.New(cfg.SessionSecret, cfg.VideoUnlockPassword)
	if !contentGate.Enabled() {
		slog.Warn("VIDEO_UNLOCK_PASSWORD not set; locked videos cannot be unlocked")
	}

	r := router.New(router.Deps{
		Sessions: sessionStore,
		Content: handlers.Content{
			Testimonials: store.NewTestimonialStore(db),
			Videos:       store.NewVideoLessonStore(db),
			Blog:         store.NewBlogPostStore(db),
			Modules:      store.NewModuleStore(db),
			Glossary:     store.NewGlossaryTermStore(db),
			Watchlist:    store.NewStockStore(db),
		},
		Stats:         store.NewStatsStore(db),
		Visitors:      store.NewVisitorStore(db),
		Admins:        store.NewAdminStore(db),
		Uploads:       backend,
		Gate:          contentGate,
		Cache:         responseCache,
		UploadDir:     uploadDir,
		EnforceOrigin: !cfg.IsDev(),
		Health:        db.PingContext,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig)
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	}

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if scheduler != nil {
		scheduler.Stop(ctx)
	}
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
