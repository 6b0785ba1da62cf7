// Package config loads runtime settings from the environment.
//
// Variables use the POSTBOARD_ prefix and a double underscore for nesting,
// e.g. POSTBOARD_SERVER__PORT maps to server.port. A .env file in the
// working directory is loaded first when present.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const EnvPrefix = "POSTBOARD_"

const (
	DriverBadger   = "badger"
	DriverPostgres = "postgres"
)

type Config struct {
	Env     string        `koanf:"env" validate:"required,oneof=development production test"`
	Server  ServerConfig  `koanf:"server"`
	Storage StorageConfig `koanf:"storage"`
	Log     LogConfig     `koanf:"log"`
}

type ServerConfig struct {
	Port           string        `koanf:"port" validate:"required"`
	BasePath       string        `koanf:"base_path" validate:"required,startswith=/"`
	ReadTimeout    time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout   time.Duration `koanf:"write_timeout" validate:"gt=0"`
	IdleTimeout    time.Duration `koanf:"idle_timeout" validate:"gt=0"`
	RequestTimeout time.Duration `koanf:"request_timeout" validate:"gte=0"`
}

// StorageConfig selects the data-access backend. DSN is only read by the
// postgres driver.
type StorageConfig struct {
	Driver string `koanf:"driver" validate:"required,oneof=badger postgres"`
	Path   string `koanf:"path" validate:"required_if=Driver badger"`
	DSN    string `koanf:"dsn" validate:"required_if=Driver postgres"`
}

type LogConfig struct {
	Level string `koanf:"level" validate:"required,oneof=trace debug info warn error"`
}

// Addr is the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return ":" + strings.TrimPrefix(s.Port, ":")
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Default returns the configuration used when nothing is set in the
// environment.
func Default() *Config {
	return &Config{
		Env: "development",
		Server: ServerConfig{
			Port:           "8080",
			BasePath:       "/api/posts",
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   10 * time.Second,
			IdleTimeout:    60 * time.Second,
			RequestTimeout: 5 * time.Second,
		},
		Storage: StorageConfig{
			Driver: DriverBadger,
			Path:   "data/badger",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads POSTBOARD_* variables on top of Default and validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// envKey maps POSTBOARD_SERVER__BASE_PATH to server.base_path.
func envKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(s), "__", ".")
}
