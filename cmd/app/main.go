package main

import (
	"workforce/config"
	"workforce/di"
	"workforce/helper"
	"workforce/shared/logger"
	"workforce/shared/metrics"
	"workforce/shared/timezone"

	"github.com/rs/zerolog/log"
)

// @title Workforce Lodging API
// @version 1.0
// @description Lodging, booking and invoicing for workforce accommodation.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	timezone.Init(cfg.App.Timezone)

	metrics.Register()

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Auto migration failed")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
