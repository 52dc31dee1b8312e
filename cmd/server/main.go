package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/stadtaev/citychase/internal/catalog"
	"github.com/stadtaev/citychase/internal/config"
	"github.com/stadtaev/citychase/internal/database"
	"github.com/stadtaev/citychase/internal/game"
	"github.com/stadtaev/citychase/internal/migrations"
	"github.com/stadtaev/citychase/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- SQLite ---
	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to sqlite: %w", err)
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("connected to sqlite", "path", cfg.DBPath)

	// --- Catalog ---
	cat, err := catalog.Load(ctx, catalog.Embedded(), cfg.CatalogTimeout, logger)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	logger.Info("catalog loaded", "cities", len(cat.Cities))

	// --- Game core ---
	var rnd game.RandomSource
	if cfg.RandomSeed != 0 {
		logger.Warn("using fixed random seed", "seed", cfg.RandomSeed)
		rnd = game.NewSeededSource(cfg.RandomSeed)
	} else {
		rnd = game.NewDefaultSource()
	}

	store := server.NewSQLiteStore(db)
	mgr := game.NewManager(store, cat, rnd, logger)

	if err := server.SeedAdmin(ctx, logger, store, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return fmt.Errorf("seeding admin: %w", err)
	}

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, mgr, store, db, cfg.SPADir)

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}
