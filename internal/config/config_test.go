package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestParseEmptyGivesDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatal(err)
	}
	def := Default()
	if cfg.Server.Addr != def.Server.Addr || cfg.Solver.Timeout != def.Solver.Timeout {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if !cfg.ValidateBeforeSolve {
		t.Error("validate_before_solve should default to true")
	}
	if !cfg.Storage.Enabled {
		t.Error("storage should default to enabled")
	}
}

func TestParseOverrides(t *testing.T) {
	data := []byte(`
server:
  addr: "127.0.0.1:9000"
solver:
  url: http://solver.local
  timeout: 5s
storage:
  enabled: false
  db_path: /tmp/h.db
playback:
  turn_duration: 150ms
validate_before_solve: false
log_level: debug
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Solver.URL != "http://solver.local" || cfg.Solver.Timeout != 5*time.Second {
		t.Errorf("solver = %+v", cfg.Solver)
	}
	if cfg.Storage.Enabled || cfg.Storage.DBPath != "/tmp/h.db" {
		t.Errorf("storage = %+v", cfg.Storage)
	}
	if cfg.Playback.TurnDuration != 150*time.Millisecond {
		t.Errorf("turn_duration = %v", cfg.Playback.TurnDuration)
	}
	if cfg.ValidateBeforeSolve {
		t.Error("validate_before_solve should be false")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log_level = %q", cfg.LogLevel)
	}
	// Untouched keys keep their defaults.
	if len(cfg.Server.CORSOrigins) != 1 || cfg.Server.CORSOrigins[0] != "*" {
		t.Errorf("cors_origins = %v", cfg.Server.CORSOrigins)
	}
}

func TestParseRejectsBadValues(t *testing.T) {
	tests := []string{
		"log_level: loud",
		"solver:\n  timeout: -1s",
		"server: [",
	}
	for _, data := range tests {
		if _, err := Parse([]byte(data)); err == nil {
			t.Errorf("Parse(%q) should fail", data)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Solver.URL = "http://localhost:8081"
	cfg.Playback.TurnDuration = time.Second

	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Solver.URL != cfg.Solver.URL || got.Playback.TurnDuration != time.Second {
		t.Errorf("round trip = %+v", got)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("missing explicit config should be an error")
	}
}

func TestDBPath(t *testing.T) {
	cfg := Default()
	cfg.Storage.DBPath = "/var/lib/cube.db"
	if p, _ := cfg.DBPath(); p != "/var/lib/cube.db" {
		t.Errorf("DBPath = %q", p)
	}
}
