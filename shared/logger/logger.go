package logger

import (
	"os"
	"time"

	"workforce/config"
	"workforce/shared/constant"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger installs a human readable console logger at trace level until config is applied.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	log.Trace().Msg("logger initialized")
}

// ErrorWithStack logs err with the stack of the caller attached. Nil errors are ignored.
func ErrorWithStack(err error) {
	if err == nil {
		return
	}

	log.Error().Msgf("%+v", errors.WithStack(err))
}

// SetLogLevel applies SERVER_LOG_LEVEL. Production switches to JSON lines tagged with the app name.
func SetLogLevel(cfg *config.Config) {
	level := levelFor(cfg.Server.LogLevel)
	zerolog.SetGlobalLevel(level)

	if cfg.Server.Env == constant.ServerEnvProduction {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Str("service", cfg.App.Name).Logger()
	}

	log.Debug().Str("level", level.String()).Msg("log level applied")
}

func levelFor(raw string) zerolog.Level {
	if raw == "" {
		return zerolog.TraceLevel
	}

	level, err := zerolog.ParseLevel(raw)
	if err != nil {
		log.Warn().Str("level", raw).Msg("unknown log level, falling back to trace")

		return zerolog.TraceLevel
	}

	return level
}
