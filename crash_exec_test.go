//go:build !windows

package sigctl

import (
	"os"
	"os/exec"
	"strings"
	"syscall"
	"testing"
	"time"
)

// TestCrashHelperProcess is not a test: it is the child half of the
// death tests below, selected by environment variable and re-executed
// from the parent with -test.run.
func TestCrashHelperProcess(t *testing.T) {
	if os.Getenv("SIGCTL_HELPER_ABORT") != "1" {
		t.Skip("helper process only")
	}
	if err := Setup(); err != nil {
		os.Exit(3)
	}
	procRaise(syscall.SIGABRT)
	time.Sleep(10 * time.Second)
	os.Exit(4) // monitor never terminated us
}

func runCrashHelper(t *testing.T, extraEnv ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(os.Args[0], "-test.run", "^TestCrashHelperProcess$")
	cmd.Env = append(os.Environ(),
		"SIGCTL_HELPER_ABORT=1",
		"SIGCTL_CRASH_NDEBUG=1",
	)
	cmd.Env = append(cmd.Env, extraEnv...)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func TestFatalSignalOutsideRegionTerminates(t *testing.T) {
	out, err := runCrashHelper(t)
	if err == nil {
		t.Fatalf("helper survived SIGABRT; output:\n%s", out)
	}
	ee, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("helper failed to run: %v", err)
	}
	ws, ok := ee.Sys().(syscall.WaitStatus)
	if !ok {
		t.Fatalf("no wait status: %v", err)
	}
	// The re-raise should kill with SIGABRT; some environments report
	// the exit-code fallback instead.
	if !(ws.Signaled() && ws.Signal() == syscall.SIGABRT) && ws.ExitStatus() != 128+int(syscall.SIGABRT) {
		t.Fatalf("unexpected termination status %v; output:\n%s", ws, out)
	}
	if !strings.Contains(out, "Unhandled SIGABRT: An abort occurred.") {
		t.Fatalf("death message missing from output:\n%s", out)
	}
	if !strings.Contains(out, "goroutine") {
		t.Fatalf("backtrace missing from output:\n%s", out)
	}
}

func TestCrashQuietSuppressesDiagnostics(t *testing.T) {
	out, err := runCrashHelper(t, "SIGCTL_CRASH_QUIET=1")
	if err == nil {
		t.Fatalf("helper survived SIGABRT; output:\n%s", out)
	}
	if strings.Contains(out, "Unhandled SIGABRT") {
		t.Fatalf("quiet mode still printed diagnostics:\n%s", out)
	}
}
