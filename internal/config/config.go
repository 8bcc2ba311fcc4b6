// Package config loads server configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every tunable of the office server. Defaults match the
// production pacing of the floor.
type Config struct {
	HTTPAddr string `env:"OFFICE_HTTP_ADDR" envDefault:":8080"`
	DBPath   string `env:"OFFICE_DB_PATH" envDefault:"office.db"`

	StateTickInterval time.Duration `env:"OFFICE_STATE_TICK" envDefault:"30s"`

	EventMinDelay time.Duration `env:"OFFICE_EVENT_MIN_DELAY" envDefault:"60s"`
	EventMaxDelay time.Duration `env:"OFFICE_EVENT_MAX_DELAY" envDefault:"120s"`

	TravelDuration time.Duration `env:"OFFICE_TRAVEL_DURATION" envDefault:"2s"`
	BubbleDuration time.Duration `env:"OFFICE_BUBBLE_DURATION" envDefault:"3s"`
	IconDuration   time.Duration `env:"OFFICE_ICON_DURATION" envDefault:"3s"`
	SettleHold     time.Duration `env:"OFFICE_SETTLE_HOLD" envDefault:"4s"`

	NewsfeedMinDelay time.Duration `env:"OFFICE_NEWSFEED_MIN_DELAY" envDefault:"90s"`
	NewsfeedMaxDelay time.Duration `env:"OFFICE_NEWSFEED_MAX_DELAY" envDefault:"180s"`

	SnapshotInterval time.Duration `env:"OFFICE_SNAPSHOT_INTERVAL" envDefault:"5m"`

	RandSeed int64 `env:"OFFICE_RAND_SEED" envDefault:"0"`
}

// Load reads the optional .env file, then the environment.
func Load() (*Config, error) {
	// Missing .env is fine; the environment still applies.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.EventMaxDelay < cfg.EventMinDelay {
		return nil, fmt.Errorf("event delay window inverted: %v > %v", cfg.EventMinDelay, cfg.EventMaxDelay)
	}
	if cfg.NewsfeedMaxDelay < cfg.NewsfeedMinDelay {
		return nil, fmt.Errorf("newsfeed delay window inverted: %v > %v", cfg.NewsfeedMinDelay, cfg.NewsfeedMaxDelay)
	}
	return cfg, nil
}
