package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("expected missing file to be ignored: %v", err)
	}
	if cfg.Store.Path != nil || cfg.Reminder.Lookback != nil || cfg.Mirror.Interval != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestLoadConfigDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[store]
path = "/tmp/one.db"

[reminder]
lookback = 14

[mirror]
interval = "30s"

[graph]
window = "month"
color = false
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Store.Path == nil || *cfg.Store.Path != "/tmp/one.db" {
		t.Fatalf("unexpected store path: %v", cfg.Store.Path)
	}
	if cfg.Reminder.Lookback == nil || *cfg.Reminder.Lookback != 14 {
		t.Fatalf("unexpected lookback: %v", cfg.Reminder.Lookback)
	}
	if cfg.Reminder.Threshold != nil {
		t.Fatalf("expected unset threshold to stay nil")
	}
	if cfg.Mirror.Interval == nil || *cfg.Mirror.Interval != "30s" {
		t.Fatalf("unexpected interval: %v", cfg.Mirror.Interval)
	}
	if cfg.Graph.Window == nil || *cfg.Graph.Window != "month" {
		t.Fatalf("unexpected window: %v", cfg.Graph.Window)
	}
	if cfg.Graph.Color == nil || *cfg.Graph.Color {
		t.Fatalf("unexpected color: %v", cfg.Graph.Color)
	}
}

func TestLoadConfigRejectsInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[reminder\nlookback = "), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil || !strings.Contains(err.Error(), "decode") {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestDefaultPathsFollowXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "onething", "config.toml") {
		t.Fatalf("unexpected config path %s", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/data", "onething", "onething.db") {
		t.Fatalf("unexpected db path %s", got)
	}
	if got := DefaultMirrorPath(); got != filepath.Join("/data", "onething", "snapshot.json") {
		t.Fatalf("unexpected mirror path %s", got)
	}
}
