package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr       string        `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath         string        `env:"DB_PATH" envDefault:"data/citychase.db"`
	LogLevel       slog.Level    `env:"LOG_LEVEL" envDefault:"INFO"`
	CatalogTimeout time.Duration `env:"CATALOG_TIMEOUT" envDefault:"5s"`
	// RandomSeed pins the game's random source for reproducible runs.
	// Zero means seed from the system randomness source.
	RandomSeed    int64  `env:"RANDOM_SEED" envDefault:"0"`
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
	SPADir        string `env:"SPA_DIR"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
