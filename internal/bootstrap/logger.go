package bootstrap

import (
	"log/slog"

	"github.com/spaceminer/spaceminer-server/internal/config"
	"github.com/spaceminer/spaceminer-server/internal/logger"
)

// SetupLogger installs the process-wide slog logger for one component ("api", "bot")
func SetupLogger(cfg *config.Config, component string) *slog.Logger {
	// Source locations only in dev
	addSource := cfg.Environment == "dev" || cfg.Environment == "development"

	l := logger.InitLogger(logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		cfg.ServiceName+"-"+component,
		cfg.Version,
		cfg.Environment,
		addSource,
	))

	l.Info(LogMsgStarting,
		"component", component,
		"environment", cfg.Environment,
		"version", cfg.Version)
	l.Debug(LogMsgConfigurationLoaded,
		"db_host", cfg.DBHost,
		"db_port", cfg.DBPort,
		"db_name", cfg.DBName,
		"port", cfg.Port)

	return l
}
