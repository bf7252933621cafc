// Package config owns the tool-facing configuration shapes shared by
// cmd/sigctl and cmd/sigmon, plus template generation for configgen.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// RunnerConfig drives the cmd/sigctl scenario runner.
type RunnerConfig struct {
	Scenario      string `toml:"scenario"`
	TimeoutMS     int    `toml:"timeout_ms"`
	AlarmDelayMS  int    `toml:"alarm_delay_ms"`
	CrashQuiet    bool   `toml:"crash_quiet"`
	CrashNoDebug  bool   `toml:"crash_no_debugger"`
	RegionMessage string `toml:"region_message"`
}

// MonitorConfig drives the cmd/sigmon admin server.
type MonitorConfig struct {
	ListenAddr  string   `toml:"listen_addr"`
	CorsOrigins []string `toml:"cors_origins"`
	DemoTickMS  int      `toml:"demo_tick_ms"`
}

func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Scenario:      "interrupt",
		TimeoutMS:     5000,
		AlarmDelayMS:  100,
		RegionMessage: "sigctl scenario",
	}
}

func DefaultMonitorConfig() MonitorConfig {
	return MonitorConfig{
		ListenAddr:  ":9321",
		CorsOrigins: []string{"http://localhost:3000"},
		DemoTickMS:  500,
	}
}

func LoadRunnerConfig(path string) (RunnerConfig, error) {
	var cfg RunnerConfig
	if err := loadToml(path, &cfg); err != nil {
		return RunnerConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return RunnerConfig{}, err
	}
	return cfg, nil
}

func LoadMonitorConfig(path string) (MonitorConfig, error) {
	var cfg MonitorConfig
	if err := loadToml(path, &cfg); err != nil {
		return MonitorConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return MonitorConfig{}, err
	}
	return cfg, nil
}

func (c RunnerConfig) Validate() error {
	if strings.TrimSpace(c.Scenario) == "" {
		return fmt.Errorf("config: missing scenario")
	}
	if c.TimeoutMS < 0 {
		return fmt.Errorf("config: negative timeout_ms")
	}
	if c.AlarmDelayMS < 0 {
		return fmt.Errorf("config: negative alarm_delay_ms")
	}
	return nil
}

func (c MonitorConfig) Validate() error {
	if strings.TrimSpace(c.ListenAddr) == "" {
		return fmt.Errorf("config: missing listen_addr")
	}
	if c.DemoTickMS < 0 {
		return fmt.Errorf("config: negative demo_tick_ms")
	}
	return nil
}

// WriteTemplate emits a default config of the given kind. Existing
// files are preserved unless force is set.
func WriteTemplate(path, kind string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config: %s exists (use force to overwrite)", path)
		}
	}
	var v any
	switch kind {
	case "runner":
		v = DefaultRunnerConfig()
	case "monitor":
		v = DefaultMonitorConfig()
	default:
		return fmt.Errorf("config: unknown template kind %q", kind)
	}
	raw, err := toml.Marshal(v)
	if err != nil {
		return fmt.Errorf("config: marshal %s template: %w", kind, err)
	}
	return os.WriteFile(path, raw, 0o644)
}

func loadToml(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := toml.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}
