package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/danmuck/sigctl/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadRunnerConfigDefaultsWithoutPath(t *testing.T) {
	cfg, err := loadRunnerConfig("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != config.DefaultRunnerConfig() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadRunnerConfigOverlay(t *testing.T) {
	path := writeConfig(t, "scenario = \"fault\"\ntimeout_ms = 250\n")
	cfg, err := loadRunnerConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Scenario != "fault" {
		t.Fatalf("scenario not overlaid: %+v", cfg)
	}
	if cfg.TimeoutMS != 250 {
		t.Fatalf("timeout_ms not overlaid: %+v", cfg)
	}
	def := config.DefaultRunnerConfig()
	if cfg.AlarmDelayMS != def.AlarmDelayMS || cfg.RegionMessage != def.RegionMessage {
		t.Fatalf("undefined keys should keep defaults: %+v", cfg)
	}
}

func TestLoadRunnerConfigRejectsBlankScenario(t *testing.T) {
	path := writeConfig(t, "scenario = \"  \"\n")
	if _, err := loadRunnerConfig(path); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestLoadRunnerConfigRejectsBadToml(t *testing.T) {
	path := writeConfig(t, "scenario = [broken\n")
	if _, err := loadRunnerConfig(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
