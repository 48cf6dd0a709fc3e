package main

import (
	"os"
	"rental/config"
	"rental/helper"
	"rental/shared/logger"

	"github.com/rs/zerolog/log"
)

const argLength = 2

func main() {
	cfg := config.Get()
	logger.InitLogger(cfg)

	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration direction is required: up, down, step-up, drop or version")
	}

	direction, err := helper.ParseDirection(os.Args[1])
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid migration direction")
	}

	if err := helper.Run(cfg, direction); err != nil {
		log.Fatal().Err(err).Str("direction", string(direction)).Msg("Migration failed")
	}
}
