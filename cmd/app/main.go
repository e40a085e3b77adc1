package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/spaceminer/spaceminer-server/internal/bootstrap"
	"github.com/spaceminer/spaceminer-server/internal/config"
	"github.com/spaceminer/spaceminer-server/internal/database"
	"github.com/spaceminer/spaceminer-server/internal/server"

	_ "github.com/spaceminer/spaceminer-server/docs"
)

// @title Space Miner API
// @version 1.0
// @description Expedition lifecycle engine for the Space Miner Telegram Mini App.
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := bootstrap.SetupLogger(cfg, "api")

	if warnings, err := config.ValidateEnvWithWarnings(); err != nil {
		log.Warn("Environment validation failed", "error", err)
	} else {
		for _, w := range warnings {
			log.Warn("Environment warning", "warning", w)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPool(ctx, database.PoolConfigFrom(cfg))
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(pool); err != nil {
		log.Error("Failed to run migrations", "error", err)
		pool.Close()
		os.Exit(1)
	}

	repos := bootstrap.InitializeRepositories(pool)

	if err := bootstrap.SyncCatalog(ctx, cfg.CatalogPath, repos.Catalog); err != nil {
		log.Error("Catalog sync failed", "error", err)
		pool.Close()
		os.Exit(1)
	}

	settings, err := bootstrap.LoadExpeditionSettings(cfg.ExpeditionConfigPath)
	if err != nil {
		log.Error("Expedition settings invalid", "error", err)
		pool.Close()
		os.Exit(1)
	}

	events := bootstrap.InitializeEventSystem(true)
	services := bootstrap.InitializeServices(cfg, repos, events.Bus, settings)
	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, pool, services, events.Hub)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start()
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), bootstrap.ShutdownTimeout)
		defer cancel()
		bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
			Server: srv,
			SSEHub: events.Hub,
			DBPool: pool,
		})
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}
