package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type PersistConfig struct {
	DataFile         string        `env:"DATA_FILE" envDefault:"data.json"`
	AutosaveInterval time.Duration `env:"AUTOSAVE_INTERVAL" envDefault:"60s"`

	// Bank interest applied once per autosave tick across the whole store.
	// Zero rate disables accrual.
	InterestRate       float64 `env:"BANK_INTEREST_RATE" envDefault:"0.02"`
	InterestPerTickCap int64   `env:"BANK_INTEREST_TICK_CAP" envDefault:"1000"`
}

func LoadPersist() (PersistConfig, error) {
	var cfg PersistConfig
	err := env.Parse(&cfg)
	return cfg, err
}
