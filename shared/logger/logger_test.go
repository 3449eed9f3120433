package logger_test

import (
	"bytes"
	"errors"
	"testing"

	"workforce/config"
	"workforce/shared/constant"
	"workforce/shared/logger"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func restore(t *testing.T) {
	t.Helper()

	originalLogger := log.Logger
	originalLevel := zerolog.GlobalLevel()
	originalTimeFormat := zerolog.TimeFieldFormat

	t.Cleanup(func() {
		log.Logger = originalLogger
		zerolog.SetGlobalLevel(originalLevel)
		zerolog.TimeFieldFormat = originalTimeFormat
	})
}

func TestInitLogger(t *testing.T) {
	restore(t)

	logger.InitLogger()

	assert.Equal(t, zerolog.TimeFormatUnix, zerolog.TimeFieldFormat)
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}

func TestErrorWithStack(t *testing.T) {
	restore(t)

	var buf bytes.Buffer
	log.Logger = log.Output(&buf)

	logger.ErrorWithStack(errors.New("test error"))

	assert.Contains(t, buf.String(), "test error")
}

func TestSetLogLevel(t *testing.T) {
	tests := []struct {
		logLevel      string
		expectedLevel zerolog.Level
	}{
		{logLevel: "debug", expectedLevel: zerolog.DebugLevel},
		{logLevel: "info", expectedLevel: zerolog.InfoLevel},
		{logLevel: "error", expectedLevel: zerolog.ErrorLevel},
		{logLevel: "invalid", expectedLevel: zerolog.TraceLevel},
		{logLevel: "", expectedLevel: zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.logLevel, func(t *testing.T) {
			restore(t)

			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.logLevel

			logger.SetLogLevel(cfg)

			assert.Equal(t, tt.expectedLevel, zerolog.GlobalLevel())
		})
	}
}

func TestErrorWithStackIgnoresNil(t *testing.T) {
	restore(t)

	var buf bytes.Buffer
	log.Logger = log.Output(&buf)

	logger.ErrorWithStack(nil)

	assert.Empty(t, buf.String())
}

func TestSetLogLevelProductionWritesJSON(t *testing.T) {
	restore(t)

	cfg := &config.Config{}
	cfg.Server.LogLevel = "info"
	cfg.Server.Env = constant.ServerEnvProduction
	cfg.App.Name = "workforce"

	logger.SetLogLevel(cfg)

	var buf bytes.Buffer
	log.Logger = log.Logger.Output(&buf)

	log.Info().Msg("hello")

	assert.Contains(t, buf.String(), `"service":"workforce"`)
	assert.Contains(t, buf.String(), `"message":"hello"`)
}
