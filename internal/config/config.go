package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"cs2-simulator/internal/sim"
)

type Config struct {
	DBPath              string   `env:"DB_PATH"               envDefault:"cs2_simulator.db"`
	ServerPort          string   `env:"SERVER_PORT"           envDefault:"8080"`
	LogLevel            string   `env:"LOG_LEVEL"             envDefault:"info"`
	RateLimitRPS        float64  `env:"RATE_LIMIT_RPS"        envDefault:"10"`
	RateLimitBurst      int      `env:"RATE_LIMIT_BURST"      envDefault:"20"`
	CORSAllowedOrigins  []string `env:"CORS_ALLOWED_ORIGINS"  envDefault:"*" envSeparator:","`
	RosterFeedURL       string   `env:"ROSTER_FEED_URL"`
	DefaultSeriesFormat string   `env:"DEFAULT_SERIES_FORMAT" envDefault:"BO3"`
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg, err := Parse()
	if err != nil {
		return nil, err
	}

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	zerolog.SetGlobalLevel(level)

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Float64("rate_limit_rps", cfg.RateLimitRPS).
		Int("rate_limit_burst", cfg.RateLimitBurst).
		Str("default_series_format", cfg.DefaultSeriesFormat).
		Msg("configuration loaded")

	return cfg, nil
}

// Parse reads the environment without touching .env files or the logger.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH is required")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit must be positive, got %v rps burst %d", c.RateLimitRPS, c.RateLimitBurst)
	}
	if _, err := sim.ParseFormat(c.DefaultSeriesFormat); err != nil {
		return fmt.Errorf("invalid DEFAULT_SERIES_FORMAT: %w", err)
	}
	return nil
}

// SeriesFormat is the configured default format. Validate has already
// rejected anything ParseFormat would.
func (c *Config) SeriesFormat() sim.Format {
	f, err := sim.ParseFormat(c.DefaultSeriesFormat)
	if err != nil {
		return sim.BO3
	}
	return f
}

var Module = fx.Provide(Load)
