package config

import "testing"

func TestLoadLogDefaults(t *testing.T) {
	cfg, err := LoadLog()
	if err != nil {
		t.Fatalf("LoadLog() error = %v", err)
	}
	if cfg.Level != "info" {
		t.Fatalf("Level = %q, want info", cfg.Level)
	}
}

func TestLoadLogParse(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadLog()
	if err != nil {
		t.Fatalf("LoadLog() error = %v", err)
	}
	if cfg.Level != "debug" {
		t.Fatalf("unexpected log config: %+v", cfg)
	}
}

func TestLoadLogFileSink(t *testing.T) {
	cfg, err := LoadLog()
	if err != nil {
		t.Fatalf("LoadLog() error = %v", err)
	}
	if cfg.File != "" || cfg.MaxMB != 16 {
		t.Fatalf("file sink defaults = %q/%d, want disabled with 16 MB cap", cfg.File, cfg.MaxMB)
	}

	t.Setenv("LOG_FILE", "casino.log")
	t.Setenv("LOG_FILE_MAX_MB", "4")
	cfg, err = LoadLog()
	if err != nil {
		t.Fatalf("LoadLog() error = %v", err)
	}
	if cfg.File != "casino.log" || cfg.MaxMB != 4 {
		t.Fatalf("file sink = %q/%d, want casino.log/4", cfg.File, cfg.MaxMB)
	}
}
