package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"workforce/config"
	"workforce/di"
	"workforce/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if !cfg.Kafka.Enable {
		log.Fatal().Msg("KAFKA_ENABLE must be true to run the audit consumer")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Strs("brokers", cfg.Kafka.Brokers).Msg("Starting audit consumer")

	di.InitializeAuditConsumer().Run(ctx)

	log.Info().Msg("Audit consumer stopped")
}
