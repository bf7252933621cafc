package testlog

import (
	"testing"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/sigctl/internal/logging"
)

func Start(t *testing.T) {
	t.Helper()
	logging.ConfigureTests()
	log.Info().Str("test", t.Name()).Msg("start")
}
