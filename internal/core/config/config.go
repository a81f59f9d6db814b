package config

import (
	"time"

	"github.com/vietddude/matchboard/internal/datastore/httpapi"
	"github.com/vietddude/matchboard/internal/datastore/postgres"
	"github.com/vietddude/matchboard/internal/resilience/cache"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Server    ServerConfig    `yaml:"server"`
	Datastore DatastoreConfig `yaml:"datastore"`
	Cache     cache.Config    `yaml:"cache"`
	Retry     RetryConfig     `yaml:"retry"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// DatastoreConfig selects the datastore backend. Postgres wins when
// both are set; with neither configured, a seedable in-memory store is
// used.
type DatastoreConfig struct {
	Postgres postgres.Config `yaml:"postgres"`
	HTTP     httpapi.Config  `yaml:"http"`
}

// RetryConfig holds fetch retry settings.
type RetryConfig struct {
	MaxAttempts     int           `yaml:"max_attempts"`
	InitialDelay    time.Duration `yaml:"initial_delay"`
	BackoffMultiple float64       `yaml:"backoff_multiple"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}
