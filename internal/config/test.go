package config

import "github.com/caarlos0/env/v11"

// TestConfig gates the Postgres audit-store tests. Without a DSN the suite
// skips rather than fails.
type TestConfig struct {
	PostgresDSN string `env:"TEST_POSTGRES_DSN,required,notEmpty"`
}

func LoadTest() (TestConfig, error) {
	var cfg TestConfig
	err := env.Parse(&cfg)
	return cfg, err
}
