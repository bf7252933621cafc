//go:build unix

package platform

import (
	"os"
	"syscall"
)

// Default returns the POSIX backend: the full deferrable set and the
// six fatal signals.
func Default() Backend {
	return Backend{
		Deferrable: []os.Signal{
			syscall.SIGHUP,
			syscall.SIGINT,
			syscall.SIGALRM,
			syscall.SIGTERM,
		},
		Fatal: []os.Signal{
			syscall.SIGQUIT,
			syscall.SIGILL,
			syscall.SIGABRT,
			syscall.SIGFPE,
			syscall.SIGBUS,
			syscall.SIGSEGV,
		},
	}
}
