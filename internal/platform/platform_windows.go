//go:build windows

package platform

import (
	"os"
	"syscall"
)

// Default returns the reduced Windows backend: console events surface
// as os.Interrupt and SIGTERM, and only SIGABRT of the fatal class is
// deliverable through os/signal.
func Default() Backend {
	return Backend{
		Deferrable: []os.Signal{
			os.Interrupt,
			syscall.SIGTERM,
		},
		Fatal: []os.Signal{
			syscall.SIGABRT,
		},
	}
}
