package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stratlab.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeTempConfig(t, `
storage:
  data_dir: /var/lib/stratlab
  sqlite_path: /var/lib/stratlab/runs.db
logging:
  level: debug
backtest:
  initial_capital: 100000
  periods_per_year: 365
fetch:
  years: 10
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Storage.DataDir != "/var/lib/stratlab" {
		t.Errorf("DataDir = %q", cfg.Storage.DataDir)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q", cfg.Logging.Level)
	}
	if cfg.Backtest.InitialCapital != 100000 {
		t.Errorf("InitialCapital = %v", cfg.Backtest.InitialCapital)
	}
	if cfg.Backtest.PeriodsPerYear != 365 {
		t.Errorf("PeriodsPerYear = %v", cfg.Backtest.PeriodsPerYear)
	}
	if cfg.Fetch.Years != 10 {
		t.Errorf("Years = %d", cfg.Fetch.Years)
	}
	// Unset fields get defaults.
	if cfg.Fetch.RateLimitPerMin != 200 {
		t.Errorf("RateLimitPerMin = %d, want default 200", cfg.Fetch.RateLimitPerMin)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeTempConfig(t, "storage: [not: a: mapping")
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Storage.DataDir != "data" {
		t.Errorf("DataDir = %q, want data", cfg.Storage.DataDir)
	}
	if cfg.Storage.SQLitePath != "stratlab.db" {
		t.Errorf("SQLitePath = %q", cfg.Storage.SQLitePath)
	}
	if cfg.Backtest.InitialCapital != 1.0 {
		t.Errorf("InitialCapital = %v, want 1.0", cfg.Backtest.InitialCapital)
	}
	if cfg.Backtest.PeriodsPerYear != 252 {
		t.Errorf("PeriodsPerYear = %v, want 252", cfg.Backtest.PeriodsPerYear)
	}
	if cfg.Fetch.Years != 5 || cfg.Fetch.MaxAttempts != 3 {
		t.Errorf("fetch defaults = %+v", cfg.Fetch)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DATA_DIR", "/tmp/env-data")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("PERIODS_PER_YEAR", "365")
	t.Setenv("APCA_API_KEY_ID", "key-from-env")

	path := writeTempConfig(t, `
storage:
  data_dir: /from/file
logging:
  level: debug
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Storage.DataDir != "/tmp/env-data" {
		t.Errorf("DataDir = %q, env should win over file", cfg.Storage.DataDir)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Level = %q, env should win over file", cfg.Logging.Level)
	}
	if cfg.Backtest.PeriodsPerYear != 365 {
		t.Errorf("PeriodsPerYear = %v, want 365 from env", cfg.Backtest.PeriodsPerYear)
	}
	if cfg.Alpaca.APIKey != "key-from-env" {
		t.Errorf("APIKey = %q", cfg.Alpaca.APIKey)
	}
}
