package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. AMORTIZA_SERVER_ADDRESS
const EnvPrefix = "AMORTIZA"

// History backends
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// LoggingConfig selects the zap level, encoder and destination
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputFile string `mapstructure:"output_file"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	CORSOrigins  []string      `mapstructure:"cors_origins"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// HistoryConfig selects where simulation records are kept
type HistoryConfig struct {
	Backend       string        `mapstructure:"backend"`
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	RedisTTL      time.Duration `mapstructure:"redis_ttl"`
	PostgresDSN   string        `mapstructure:"postgres_dsn"`
}

// TelemetryConfig configures OpenTelemetry export
type TelemetryConfig struct {
	ServiceName  string `mapstructure:"service_name"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
}

// SimulationConfig holds simulator options
type SimulationConfig struct {
	HonorPaymentStrategies bool `mapstructure:"honor_payment_strategies"`
	Concurrency            int  `mapstructure:"concurrency"`
}

// Settings is the application configuration: an optional amortiza.yaml
// overlaid with AMORTIZA_* environment variables.
type Settings struct {
	Logging    LoggingConfig    `mapstructure:"logging"`
	Server     ServerConfig     `mapstructure:"server"`
	History    HistoryConfig    `mapstructure:"history"`
	Telemetry  TelemetryConfig  `mapstructure:"telemetry"`
	Simulation SimulationConfig `mapstructure:"simulation"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output_file", "")

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.max_body_bytes", int64(1<<20))
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)

	v.SetDefault("history.backend", BackendMemory)
	v.SetDefault("history.redis_addr", "localhost:6379")
	v.SetDefault("history.redis_password", "")
	v.SetDefault("history.redis_db", 0)
	v.SetDefault("history.redis_ttl", 30*24*time.Hour)
	v.SetDefault("history.postgres_dsn", "")

	v.SetDefault("telemetry.service_name", "amortiza")
	v.SetDefault("telemetry.otlp_endpoint", "")

	v.SetDefault("simulation.honor_payment_strategies", false)
	v.SetDefault("simulation.concurrency", 0)
}

// LoadSettings reads settings from path, or from amortiza.yaml in the working
// directory when path is empty. A missing default file is not an error. A
// .env file, if present, is loaded into the environment first.
func LoadSettings(path string) (*Settings, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("amortiza")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read settings: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return &settings, nil
}

// Validate checks the settings that cannot be defaulted
func (s *Settings) Validate() error {
	switch s.History.Backend {
	case BackendMemory:
	case BackendRedis:
		if s.History.RedisAddr == "" {
			return invalid("history.redis_addr", "is required for the redis backend")
		}
	case BackendPostgres:
		if s.History.PostgresDSN == "" {
			return invalid("history.postgres_dsn", "is required for the postgres backend")
		}
	default:
		return invalid("history.backend", "must be memory, redis or postgres, got %q", s.History.Backend)
	}
	if s.Simulation.Concurrency < 0 {
		return invalid("simulation.concurrency", "must not be negative")
	}
	return nil
}
