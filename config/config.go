package config

import (
	"fmt"
	"net"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultJWTSecret is the placeholder signing secret used when JWT_ACCESS_SECRET is unset.
	// Production deployments must override it.
	DefaultJWTSecret = "supersecretkey"

	// DefaultDBPassword is the placeholder database password used when no credentials are supplied.
	DefaultDBPassword = "postgres"

	envProduction = "production"
)

type Postgres struct {
	Host     string `envconfig:"HOST"      default:"localhost"`
	Port     string `envconfig:"PORT"      default:"5432"`
	Username string `envconfig:"USER"      default:"postgres"`
	Password string `envconfig:"PASSWORD"  default:"postgres"`
	Name     string `envconfig:"NAME"      default:"workforce_lodging"`
	Timezone string `envconfig:"TIMEZONE"  default:"UTC"`
	SSLMode  string `envconfig:"SSL_MODE"  default:"disable"`
}

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"       default:"development"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
		Port     string `envconfig:"PORT"      default:"8080"`
		Host     string `envconfig:"HOST"      default:"0.0.0.0"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS" default:"5"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"   default:"10"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"NAME"     default:"workforce-lodging"`
		Timezone string `envconfig:"TIMEZONE" default:"UTC"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"   default:"Authorization,Content-Type"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"   default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"   default:"*"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"   default:"300"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool    `envconfig:"ENABLE"`
			Backend       string  `envconfig:"BACKEND"        default:"redis"`
			MaxRequests   int     `envconfig:"MAX_REQUESTS"   default:"100"`
			WindowSeconds int     `envconfig:"WINDOW_SECONDS" default:"60"`
			Burst         int     `envconfig:"BURST"          default:"10"`
			RPS           float64 `envconfig:"RPS"            default:"5"`
		} `envconfig:"RATE_LIMITER"`
	} `envconfig:"APP"`

	Cache struct {
		Enable bool `envconfig:"ENABLE" default:"true"`
		Redis  struct {
			Primary struct {
				Host     string `envconfig:"HOST"     default:"localhost"`
				Port     string `envconfig:"PORT"     default:"6379"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL" default:"300"`
	} `envconfig:"CACHE"`

	JWT struct {
		AccessSecret     string `envconfig:"ACCESS_SECRET"      default:"supersecretkey"`
		RefreshSecret    string `envconfig:"REFRESH_SECRET"     default:"supersecretrefreshkey"`
		AccessExpireMin  int    `envconfig:"ACCESS_EXPIRE_MIN"  default:"30"`
		RefreshExpireMin int    `envconfig:"REFRESH_EXPIRE_MIN" default:"10080"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			MaxRetry       int      `envconfig:"MAX_RETRY"       default:"5"`
			RetryWaitTime  int      `envconfig:"RETRY_WAIT_TIME" default:"2"`
			MigrationTable string   `envconfig:"MIGRATION_TABLE" default:"schema_migrations"`
			MigrationPath  string   `envconfig:"MIGRATION_PATH"  default:"file://migrations/postgres"`
			AutoMigrate    bool     `envconfig:"AUTO_MIGRATE"`
			Prefix         string   `envconfig:"PREFIX"`
			Read           Postgres `envconfig:"READ"`
			Write          Postgres `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	Kafka struct {
		Enable        bool     `envconfig:"ENABLE"`
		Brokers       []string `envconfig:"BROKERS"        default:"localhost:9092"`
		ConsumerGroup string   `envconfig:"CONSUMER_GROUP" default:"workforce-lodging"`
		TopicPrefix   string   `envconfig:"TOPIC_PREFIX"   default:"lodging"`
		SASL          struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
	} `envconfig:"KAFKA"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
		S3 struct {
			BucketName      string `envconfig:"BUCKET_NAME"       default:"lodgings"`
			APIEndpoint     string `envconfig:"API_ENDPOINT"`
			PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
			Region          string `envconfig:"REGION"            default:"auto"`
		} `envconfig:"S3"`
	} `envconfig:"EXTERNAL"`
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

func Init() error {
	var err error

	once.Do(func() {
		err = godotenv.Load(".env")
		if err != nil {
			log.Warn().Err(err).Msg("Could not load .env file, continuing with existing environment variables")
		} else {
			log.Info().Msg("Successfully loaded variables from .env file into environment")
		}

		err = envconfig.Process("", &conf)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to process environment variables")
		}

		conf.WarnInsecureDefaults()

		initialized = true

		log.Info().Msg("Service configuration initialized successfully")
	})

	if err != nil {
		return fmt.Errorf("loading .env file: %w", err)
	}

	return nil
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Warn().Err(err).Msg("Configuration loaded without .env file")
		}
	}

	return &conf
}

// WarnInsecureDefaults logs the placeholder secrets still in use. The placeholders are kept so a
// bare checkout runs locally; they are not replaced silently.
func (c *Config) WarnInsecureDefaults() []string {
	insecure := []string{}

	if c.JWT.AccessSecret == DefaultJWTSecret {
		insecure = append(insecure, "JWT_ACCESS_SECRET")
	}

	if c.DB.Postgres.Write.Password == DefaultDBPassword {
		insecure = append(insecure, "DB_POSTGRES_WRITE_PASSWORD")
	}

	if c.DB.Postgres.Read.Password == DefaultDBPassword {
		insecure = append(insecure, "DB_POSTGRES_READ_PASSWORD")
	}

	for _, key := range insecure {
		event := log.Warn()
		if c.Server.Env == envProduction {
			event = log.Error()
		}

		event.Str("key", key).Str("env", c.Server.Env).Msg("Insecure default configuration value in use, override it")
	}

	return insecure
}

// DatabaseName returns the database name with prefix if configured.
func (c *Config) DatabaseName(baseName string) string {
	if c.DB.Postgres.Prefix != "" {
		return c.DB.Postgres.Prefix + baseName
	}

	return baseName
}

// PostgresDSN builds the connection string for a read or write node.
func (c *Config) PostgresDSN(node Postgres) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		node.Username,
		node.Password,
		net.JoinHostPort(node.Host, node.Port),
		c.DatabaseName(node.Name),
		node.SSLMode,
	)
}
