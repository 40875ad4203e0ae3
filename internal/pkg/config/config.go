package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	DriverMongo = "mongo"
	DriverFile  = "file"
)

type Config struct {
	Port       string        `env:"PORT,        default=8080"`
	Env        string        `env:"ENV,         default=development"`
	JWTSecret  string        `env:"JWT_SECRET,  required"`
	LogLevel   string        `env:"LOG_LEVEL,   default=info"`
	SessionTTL time.Duration `env:"SESSION_TTL, default=24h"`

	// StoreDriver selects the account backend: "mongo" (Mongo users + Redis
	// sessions) or "file" (a local SQLite key/value file for both).
	StoreDriver string `env:"STORE_DRIVER, default=mongo"`
	StoreFile   string `env:"STORE_FILE,   default=ecotrip.db"`

	Mongo     MongoConfig
	Redis     RedisConfig
	Itinerary ItineraryConfig
	Events    EventsConfig
	SMTP      SMTPConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=ecopilot"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type ItineraryConfig struct {
	GeocoderURL       string        `env:"GEOCODER_URL,        default=https://nominatim.openstreetmap.org"`
	GeocoderUserAgent string        `env:"GEOCODER_USER_AGENT, default=ecopilot-trip-planner/1.0"`
	GeocodeCacheTTL   time.Duration `env:"GEOCODE_CACHE_TTL,   default=24h"`
	DatasetPath       string        `env:"DATASET_PATH"`
	DatasetReloadCron string        `env:"DATASET_RELOAD_CRON"`
	Delay             time.Duration `env:"ITINERARY_DELAY,     default=1500ms"`
}

type EventsConfig struct {
	Workers int `env:"EVENT_WORKERS, default=4"`
}

// SMTPConfig is optional; subscription emails are disabled when Host is empty.
type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     string `env:"SMTP_PORT,     default=587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM,     default=EcoPilot <no-reply@ecopilot.local>"`
}

// Development reports whether human-friendly logging should be used.
func (c *Config) Development() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration from the given lookuper and validates it.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}

	switch cfg.StoreDriver {
	case DriverMongo, DriverFile:
	default:
		return nil, fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", DriverMongo, DriverFile, cfg.StoreDriver)
	}
	return &cfg, nil
}
