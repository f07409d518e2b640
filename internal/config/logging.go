package config

import "github.com/caarlos0/env/v11"

// LogConfig drives the global zerolog setup: level and sampling for the
// logger itself, plus an optional size-capped file sink.
type LogConfig struct {
	Level       string `env:"LOG_LEVEL" envDefault:"info"`
	Pretty      bool   `env:"LOG_PRETTY" envDefault:"false"`
	SampleEvery int    `env:"LOG_SAMPLE_EVERY" envDefault:"0"`

	// File enables the capped sink; MaxMB is its truncation threshold.
	File  string `env:"LOG_FILE"`
	MaxMB int    `env:"LOG_FILE_MAX_MB" envDefault:"16"`
}

func LoadLog() (LogConfig, error) {
	var cfg LogConfig
	err := env.Parse(&cfg)
	return cfg, err
}
