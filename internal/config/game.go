package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type GameConfig struct {
	// Roulette wheel weights; payout for red/black is fixed at x2, green pays
	// GreenMultiplier. Weights need not sum to anything in particular.
	RouletteRedWeight   int   `env:"ROULETTE_RED_WEIGHT" envDefault:"48"`
	RouletteBlackWeight int   `env:"ROULETTE_BLACK_WEIGHT" envDefault:"48"`
	RouletteGreenWeight int   `env:"ROULETTE_GREEN_WEIGHT" envDefault:"4"`
	RouletteGreenPays   int64 `env:"ROULETTE_GREEN_PAYS" envDefault:"14"`

	SlotsTriplePays int64 `env:"SLOTS_TRIPLE_PAYS" envDefault:"5"`
	SlotsPairPays   int64 `env:"SLOTS_PAIR_PAYS" envDefault:"2"`

	DicePays int64 `env:"DICE_PAYS" envDefault:"6"`

	BlackjackTimeout time.Duration `env:"BLACKJACK_TIMEOUT" envDefault:"120s"`
}

func LoadGame() (GameConfig, error) {
	var cfg GameConfig
	err := env.Parse(&cfg)
	return cfg, err
}
