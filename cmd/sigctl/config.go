package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/danmuck/sigctl/internal/config"
)

// sigctl config.toml key mapping onto the runner defaults.
type fileConfig struct {
	Scenario      string `toml:"scenario"`
	TimeoutMS     int    `toml:"timeout_ms"`
	AlarmDelayMS  int    `toml:"alarm_delay_ms"`
	CrashQuiet    bool   `toml:"crash_quiet"`
	CrashNoDebug  bool   `toml:"crash_no_debugger"`
	RegionMessage string `toml:"region_message"`
}

// loadRunnerConfig overlays the file (when given) onto defaults; only
// keys actually present in the file override.
func loadRunnerConfig(path string) (config.RunnerConfig, error) {
	cfg := config.DefaultRunnerConfig()
	if path == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config.RunnerConfig{}, fmt.Errorf("load runner config: %w", err)
	}

	if meta.IsDefined("scenario") {
		cfg.Scenario = strings.TrimSpace(raw.Scenario)
	}
	if meta.IsDefined("timeout_ms") {
		cfg.TimeoutMS = raw.TimeoutMS
	}
	if meta.IsDefined("alarm_delay_ms") {
		cfg.AlarmDelayMS = raw.AlarmDelayMS
	}
	if meta.IsDefined("crash_quiet") {
		cfg.CrashQuiet = raw.CrashQuiet
	}
	if meta.IsDefined("crash_no_debugger") {
		cfg.CrashNoDebug = raw.CrashNoDebug
	}
	if meta.IsDefined("region_message") {
		cfg.RegionMessage = raw.RegionMessage
	}

	if err := cfg.Validate(); err != nil {
		return config.RunnerConfig{}, err
	}
	return cfg, nil
}
