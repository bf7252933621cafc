package sigctl

import (
	"fmt"
	"syscall"
)

// Signal identifies an operating-system signal. It aliases
// syscall.Signal so values interoperate with os/signal and x/sys.
type Signal = syscall.Signal

// SignalError is the structured error surfaced when a signal interrupts
// a protected region or is consumed at a depth-zero checkpoint.
type SignalError struct {
	Signal  Signal
	Message string
}

func (e *SignalError) Error() string {
	return fmt.Sprintf("sigctl: %s (%s)", e.Message, signalName(e.Signal))
}

// IsDeferrable reports whether sig belongs to the deferrable class.
func IsDeferrable(sig Signal) bool {
	switch sig {
	case syscall.SIGHUP, syscall.SIGINT, syscall.SIGALRM, syscall.SIGTERM:
		return true
	}
	return false
}

// IsFatal reports whether sig belongs to the fatal class.
func IsFatal(sig Signal) bool {
	switch sig {
	case syscall.SIGQUIT, syscall.SIGILL, syscall.SIGABRT,
		syscall.SIGFPE, syscall.SIGBUS, syscall.SIGSEGV:
		return true
	}
	return false
}

// Termination requests outrank other deferrable signals: a pending
// SIGHUP or SIGTERM is never overwritten by a lower-priority one.
func isTermination(sig Signal) bool {
	return sig == syscall.SIGHUP || sig == syscall.SIGTERM
}

func defaultMessage(sig Signal) string {
	switch sig {
	case syscall.SIGHUP:
		return "hangup"
	case syscall.SIGINT:
		return "interrupt"
	case syscall.SIGALRM:
		return "alarm clock"
	case syscall.SIGTERM:
		return "terminated"
	case syscall.SIGQUIT:
		return "quit"
	case syscall.SIGILL:
		return "illegal instruction"
	case syscall.SIGABRT:
		return "abort"
	case syscall.SIGFPE:
		return "arithmetic fault"
	case syscall.SIGBUS:
		return "bus error"
	case syscall.SIGSEGV:
		return "segmentation fault"
	}
	return fmt.Sprintf("signal %d", int(sig))
}

func signalName(sig Signal) string {
	switch sig {
	case syscall.SIGHUP:
		return "SIGHUP"
	case syscall.SIGINT:
		return "SIGINT"
	case syscall.SIGALRM:
		return "SIGALRM"
	case syscall.SIGTERM:
		return "SIGTERM"
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
	return fmt.Sprintf("SIG(%d)", int(sig))
}
