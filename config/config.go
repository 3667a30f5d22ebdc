package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"quest-demos/encryption"
	"quest-demos/service"
)

// Config holds all application configuration
type Config struct {
	// Server settings
	Port     int    `env:"QUEST_PORT" envDefault:"8080"`
	Address  string `env:"QUEST_ADDRESS" envDefault:"0.0.0.0"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	Debug    bool   `env:"DEBUG" envDefault:"false"`

	RSA RSAConfig

	Demo DemoConfig

	// Server timeouts
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// RSAConfig holds the toy key. Defaults reproduce the quest page key.
type RSAConfig struct {
	P int64 `env:"RSA_P" envDefault:"61"`
	Q int64 `env:"RSA_Q" envDefault:"53"`
	E int64 `env:"RSA_E" envDefault:"17"`
}

// DemoConfig holds session and input limits.
type DemoConfig struct {
	SessionTTL       time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	PruneInterval    time.Duration `env:"SESSION_PRUNE_INTERVAL" envDefault:"1m"`
	MaxMessageLength int           `env:"MAX_MESSAGE_LENGTH" envDefault:"20"`
	PaillierKeyBits  int           `env:"PAILLIER_KEY_BITS" envDefault:"512"`
}

// Load parses configuration from the environment
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// ListenAddr returns host:port for the HTTP server
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Address, c.Port)
}

// KeyParameters builds and validates the configured RSA key.
func (c *Config) KeyParameters() (*encryption.KeyParameters, error) {
	return encryption.NewKeyParametersInt64(c.RSA.P, c.RSA.Q, c.RSA.E)
}

func (c *Config) ServiceOptions() service.Options {
	return service.Options{
		SessionTTL:       c.Demo.SessionTTL,
		MaxMessageLength: c.Demo.MaxMessageLength,
		PaillierKeyBits:  c.Demo.PaillierKeyBits,
	}
}

// NewLogger builds a zap logger at LogLevel. Debug selects the development
// encoder.
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}

	zc := zap.NewProductionConfig()
	if c.Debug {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
