package main

import (
	"os"

	"workforce/config"
	"workforce/helper"
	"workforce/shared/logger"

	"github.com/rs/zerolog/log"
)

const (
	argLength = 2
)

func main() {
	logger.InitLogger()

	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration direction (up/down/drop/step-up) is required")
	}

	cfg := config.Get()
	logger.SetLogLevel(cfg)

	if err := helper.Runner(cfg, os.Args[1]); err != nil {
		log.Fatal().Err(err).Msg("Migration failed. Use 'up', 'down', 'drop' or 'step-up'")
	}
}
