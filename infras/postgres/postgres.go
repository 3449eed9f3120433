package postgres

//nolint:revive
import (
	"context"
	"errors"
	"fmt"
	"time"

	"workforce/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
	postgresConnMaxLifetime   = 30 * time.Minute
)

var errNotConnected = errors.New("database connection is not established")

// Connection holds the read replica and primary pools.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(cfg *config.Config) *Connection {
	return &Connection{
		Read:  CreatePostgresConnection("read", cfg.PostgresDSN(cfg.DB.Postgres.Read), cfg.DB.Postgres.MaxRetry, cfg.DB.Postgres.RetryWaitTime),
		Write: CreatePostgresConnection("write", cfg.PostgresDSN(cfg.DB.Postgres.Write), cfg.DB.Postgres.MaxRetry, cfg.DB.Postgres.RetryWaitTime),
	}
}

// Ping checks both pools.
func (c *Connection) Ping(ctx context.Context) error {
	if c == nil || c.Read == nil || c.Write == nil {
		return errNotConnected
	}

	if err := c.Write.PingContext(ctx); err != nil {
		return fmt.Errorf("ping write database: %w", err)
	}

	if err := c.Read.PingContext(ctx); err != nil {
		return fmt.Errorf("ping read database: %w", err)
	}

	return nil
}

func (c *Connection) Close() {
	for name, db := range map[string]*sqlx.DB{"read": c.Read, "write": c.Write} {
		if db == nil {
			continue
		}

		if err := db.Close(); err != nil {
			log.Error().Err(err).Str("name", name).Msg("Failed to close database connection")
		}
	}
}

// CreatePostgresConnection connects with retries and returns nil when every attempt fails.
func CreatePostgresConnection(name, dsn string, maxRetry, waitTime int) *sqlx.DB {
	for retry := range maxRetry {
		sqlDB, err := sqlx.Connect("postgres", dsn)
		if err == nil {
			log.Info().Str("name", name).Msg("Connected to database")
			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)
			sqlDB.SetConnMaxLifetime(postgresConnMaxLifetime)

			return sqlDB
		}

		log.
			Error().
			Err(err).
			Str("name", name).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	return nil
}
