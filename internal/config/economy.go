package config

import (
	"fmt"
	"math"
	"time"

	"github.com/caarlos0/env/v11"
)

type EconomyConfig struct {
	StartBalance int64 `env:"START_BALANCE" envDefault:"100"`

	DailyCooldown time.Duration `env:"DAILY_COOLDOWN" envDefault:"24h"`
	DailyMin      int64         `env:"DAILY_MIN" envDefault:"100"`
	DailyMax      int64         `env:"DAILY_MAX" envDefault:"500"`

	WorkCooldown time.Duration `env:"WORK_COOLDOWN" envDefault:"8m"`
	WorkMin      int64         `env:"WORK_MIN" envDefault:"50"`
	WorkMax      int64         `env:"WORK_MAX" envDefault:"250"`

	StealCooldown    time.Duration `env:"STEAL_COOLDOWN" envDefault:"15m"`
	StealMinWallet   int64         `env:"STEAL_MIN_WALLET" envDefault:"200"`
	StealCutMinPct   int           `env:"STEAL_CUT_MIN_PCT" envDefault:"10"`
	StealCutMaxPct   int           `env:"STEAL_CUT_MAX_PCT" envDefault:"50"`
	StealFineMin     int64         `env:"STEAL_FINE_MIN" envDefault:"50"`
	StealFineMax     int64         `env:"STEAL_FINE_MAX" envDefault:"250"`
	StealSuccessPct  int           `env:"STEAL_SUCCESS_PCT" envDefault:"50"`
	LeaderboardLimit int           `env:"LEADERBOARD_LIMIT" envDefault:"10"`
}

func LoadEconomy() (EconomyConfig, error) {
	var cfg EconomyConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.validate()
}

// validate rejects inverted or oversized reward ranges. Spans are kept
// below 2^31 so range arithmetic stays within int on 32-bit platforms.
func (c EconomyConfig) validate() error {
	ranges := []struct {
		name     string
		min, max int64
	}{
		{"daily", c.DailyMin, c.DailyMax},
		{"work", c.WorkMin, c.WorkMax},
		{"steal fine", c.StealFineMin, c.StealFineMax},
		{"steal cut pct", int64(c.StealCutMinPct), int64(c.StealCutMaxPct)},
	}
	for _, r := range ranges {
		if r.max < r.min {
			return fmt.Errorf("%s range inverted: min %d > max %d", r.name, r.min, r.max)
		}
		if r.max-r.min >= math.MaxInt32 {
			return fmt.Errorf("%s range too wide: %d..%d", r.name, r.min, r.max)
		}
	}
	return nil
}
