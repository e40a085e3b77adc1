package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/spaceminer/spaceminer-server/internal/bootstrap"
	"github.com/spaceminer/spaceminer-server/internal/bot"
	"github.com/spaceminer/spaceminer-server/internal/config"
	"github.com/spaceminer/spaceminer-server/internal/database"
)

func main() {
	cfg, err := config.LoadBot()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := bootstrap.SetupLogger(cfg, "bot")

	if err := config.ValidateBotEnv(); err != nil {
		log.Warn("Bot environment incomplete", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPool(ctx, database.PoolConfigFrom(cfg))
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	settings, err := bootstrap.LoadExpeditionSettings(cfg.ExpeditionConfigPath)
	if err != nil {
		log.Error("Expedition settings invalid", "error", err)
		os.Exit(1)
	}

	// The API process owns migrations and catalog sync; the bot only reads.
	events := bootstrap.InitializeEventSystem(false)
	services := bootstrap.InitializeServices(cfg, bootstrap.InitializeRepositories(pool), events.Bus, settings)

	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		os.Exit(1)
	}
	api.Debug = cfg.LogLevel == "debug"
	log.Info(bot.LogMsgBotAuthorized, "username", api.Self.UserName)

	b := bot.New(api, services.Catalog, services.User, services.Expedition, cfg.WebAppURL)
	if err := b.Run(ctx); err != nil {
		log.Error("Bot stopped with error", "error", err)
		os.Exit(1)
	}
}
