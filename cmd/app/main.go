package main

import (
	"rental/config"
	"rental/di"
	"rental/helper"
	"rental/shared/logger"
	"rental/shared/timezone"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Service configuration is incomplete")
	}

	if err := timezone.Init(cfg.App.Timezone); err != nil {
		log.Error().Err(err).Msg("Falling back to UTC")
	}

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
