package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB/Redis connection)
// - default: Tuning knobs with sane production defaults (thresholds, intervals)
// -----------------------------------------------------------------------------

type Config struct {
	Server      ServerConfig
	DB          DBConfig
	Redis       RedisConfig
	CORS        CORSConfig
	Log         LogConfig
	Reservation ReservationConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

// ReservationConfig tunes the allocation core: the direct-path admission
// threshold, the claim retry budget, and the background worker cadence.
type ReservationConfig struct {
	RequestThreshold    int           `envconfig:"RESERVATION_REQUEST_THRESHOLD" default:"5"`
	MaxClaimAttempts    int           `envconfig:"RESERVATION_MAX_CLAIM_ATTEMPTS" default:"3"`
	ClaimBackoffInitial time.Duration `envconfig:"RESERVATION_CLAIM_BACKOFF_INITIAL" default:"100ms"`
	QueueBatchSize      int           `envconfig:"RESERVATION_QUEUE_BATCH_SIZE" default:"10"`
	QueuePollInterval   time.Duration `envconfig:"RESERVATION_QUEUE_POLL_INTERVAL" default:"100ms"`
	QueueMaxAttempts    int           `envconfig:"RESERVATION_QUEUE_MAX_ATTEMPTS" default:"3"`
	StatusTTL           time.Duration `envconfig:"RESERVATION_STATUS_TTL" default:"24h"`
	StatusSweepInterval time.Duration `envconfig:"RESERVATION_STATUS_SWEEP_INTERVAL" default:"24h"`
	ExpiryAge           time.Duration `envconfig:"RESERVATION_EXPIRY_AGE" default:"24h"`
	ExpiryCheckInterval time.Duration `envconfig:"RESERVATION_EXPIRY_CHECK_INTERVAL" default:"15m"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

func (c *RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
		},
		Redis: RedisConfig{
			Host: "localhost",
			Port: "16380", // Test Redis port
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		Reservation: ReservationConfig{
			RequestThreshold:    5,
			MaxClaimAttempts:    3,
			ClaimBackoffInitial: time.Millisecond,
			QueueBatchSize:      10,
			QueuePollInterval:   10 * time.Millisecond,
			QueueMaxAttempts:    3,
			StatusTTL:           time.Hour,
			StatusSweepInterval: time.Hour,
			ExpiryAge:           24 * time.Hour,
			ExpiryCheckInterval: time.Minute,
		},
	}
}
