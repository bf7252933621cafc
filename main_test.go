package sigctl

import (
	"os"
	"testing"
	"time"

	"github.com/danmuck/sigctl/internal/logging"
)

func TestMain(m *testing.M) {
	logging.ConfigureTests()
	os.Exit(m.Run())
}

func mustSetup(t *testing.T) {
	t.Helper()
	if err := Setup(); err != nil {
		t.Fatalf("setup: %v", err)
	}
}

// resetState gives each test a clean record. The monitor keeps running;
// tests do not overlap signal traffic because the suite is sequential.
func resetState(t *testing.T) {
	t.Helper()
	st.depth.Store(0)
	st.pending.Store(0)
	st.blockCount.Store(0)
	st.delivery.Store(0)
	st.insideHandler.Store(false)
	st.clearErr()
	st.storeRegion(nil)
	st.message.Store(nil)
	ClearInterrupt()
	resetHooksForTest()
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}
