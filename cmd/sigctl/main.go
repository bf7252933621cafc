package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/sigctl"
	"github.com/danmuck/sigctl/internal/crash"
	"github.com/danmuck/sigctl/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "path to runner config.toml")
	flag.Parse()

	logging.ConfigureRuntime()

	cfg, err := loadRunnerConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if name := flag.Arg(0); name != "" {
		cfg.Scenario = name
	}
	if cfg.CrashQuiet {
		os.Setenv(crash.EnvCrashQuiet, "1")
	}
	if cfg.CrashNoDebug {
		os.Setenv(crash.EnvCrashNoDebugger, "1")
	}

	if err := sigctl.Setup(); err != nil {
		log.Fatal().Err(err).Msg("sigctl setup")
	}

	run, ok := scenarios[cfg.Scenario]
	if !ok {
		log.Fatal().Str("scenario", cfg.Scenario).Msg("unknown scenario")
	}
	log.Info().Str("scenario", cfg.Scenario).Msg("running")
	if err := run(cfg); err != nil {
		log.Error().Err(err).Str("scenario", cfg.Scenario).Msg("scenario finished with error")
		os.Exit(1)
	}
	log.Info().Str("scenario", cfg.Scenario).Msg("scenario finished")
}
