package redis

import (
	"context"
	"net"

	"workforce/config"
	"workforce/shared/constant"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// New connects to the primary redis. The connection is only verified when the cache or the
// redis rate limiter is enabled.
func New(cfg *config.Config) *goRedis.Client {
	primary := cfg.Cache.Redis.Primary

	client := goRedis.NewClient(&goRedis.Options{
		Addr:     net.JoinHostPort(primary.Host, primary.Port),
		Password: primary.Password,
		DB:       primary.DB,
	})

	required := cfg.Cache.Enable ||
		(cfg.App.RateLimiter.Enable && cfg.App.RateLimiter.Backend == constant.RateLimiterBackendRedis)
	if !required {
		return client
	}

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}

	log.Info().
		Int("db", primary.DB).
		Str("host", primary.Host).
		Str("port", primary.Port).
		Msg("Connected to Redis")

	return client
}
