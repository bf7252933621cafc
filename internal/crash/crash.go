// Package crash owns the fatal-termination diagnostic path: backtrace
// capture, the optional external-debugger backtrace, and controlled
// process death by re-raising the original signal.
//
// Everything on the die path writes raw bytes to stderr and works from
// buffers reserved at setup; zerolog and fmt are off limits here.
package crash

import (
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"syscall"

	"github.com/danmuck/sigctl/internal/platform"
)

const (
	// EnvCrashQuiet suppresses every diagnostic on fatal termination,
	// for automated or headless environments.
	EnvCrashQuiet = "SIGCTL_CRASH_QUIET"

	// EnvCrashNoDebugger suppresses only the external-debugger
	// backtrace.
	EnvCrashNoDebugger = "SIGCTL_CRASH_NDEBUG"

	// csiTool is the helper invoked for the enhanced backtrace.
	csiTool = "sigctl-csi"

	backtraceBytes = 512 << 10
)

var (
	btBuf []byte
	sep   = []byte("------------------------------------------------------------------------\n")
)

// Reserve allocates the backtrace buffer up front so the die path never
// allocates. Called once from Setup; failure there is fatal to the
// whole system.
func Reserve() error {
	if btBuf == nil {
		btBuf = make([]byte, backtraceBytes)
	}
	return nil
}

func writeErr(s string) {
	_, _ = os.Stderr.WriteString(s)
}

func printSep() {
	_, _ = os.Stderr.Write(sep)
}

func printBacktrace() {
	if btBuf == nil {
		_ = Reserve()
	}
	n := runtime.Stack(btBuf, true)
	if n > 0 {
		_, _ = os.Stderr.Write(btBuf[:n])
	} else {
		writeErr("(no backtrace available)\n")
	}
	printSep()
}

// enhancedBacktrace runs the external debugger helper against our own
// pid, with its output folded into stderr. Failure to run it is not an
// error worth dying twice over.
func enhancedBacktrace() {
	path, err := exec.LookPath(csiTool)
	if err != nil {
		return
	}
	cmd := exec.Command(path, "--no-color", "--pid", strconv.Itoa(os.Getpid()))
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		writeErr("sigctl: " + csiTool + " failed: " + err.Error() + "\n")
	}
	printSep()
}

// Message returns the death message for sig. SIGQUIT dies silently
// (empty message); the inside variant marks a fault that arrived while
// another one was being handled.
func Message(sig syscall.Signal, inside bool) string {
	if sig == syscall.SIGQUIT {
		return ""
	}
	name := sigName(sig)
	if inside {
		return "Unhandled " + name + " during signal handling."
	}
	switch sig {
	case syscall.SIGILL:
		return "Unhandled SIGILL: An illegal instruction occurred."
	case syscall.SIGABRT:
		return "Unhandled SIGABRT: An abort occurred."
	case syscall.SIGFPE:
		return "Unhandled SIGFPE: An arithmetic fault occurred."
	case syscall.SIGBUS:
		return "Unhandled SIGBUS: A bus error occurred."
	case syscall.SIGSEGV:
		return "Unhandled SIGSEGV: A segmentation fault occurred."
	}
	return "Unhandled " + name + ": Unknown signal received."
}

const trailer = "This probably occurred because native code raised a fatal signal\n" +
	"outside of any protected region. The process will now terminate.\n"

// Die emits the diagnostics for sig and terminates the process by
// re-raising it with default disposition. It never returns.
func Die(sig syscall.Signal, inside bool) {
	if os.Getenv(EnvCrashQuiet) == "" {
		printSep()
		printBacktrace()
		if os.Getenv(EnvCrashNoDebugger) == "" {
			enhancedBacktrace()
		}
		if msg := Message(sig, inside); msg != "" {
			writeErr(msg + "\n")
			writeErr(trailer)
			printSep()
		}
	}

	platform.ResetAll()
	terminate(sig)
}

func sigName(sig syscall.Signal) string {
	switch sig {
	case syscall.SIGQUIT:
		return "SIGQUIT"
	case syscall.SIGILL:
		return "SIGILL"
	case syscall.SIGABRT:
		return "SIGABRT"
	case syscall.SIGFPE:
		return "SIGFPE"
	case syscall.SIGBUS:
		return "SIGBUS"
	case syscall.SIGSEGV:
		return "SIGSEGV"
	}
	return "SIG(" + strconv.Itoa(int(sig)) + ")"
}
