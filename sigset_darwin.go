//go:build darwin

package sigctl

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// interruptSigset builds the mask holding the deferrable signals that
// consumePending momentarily blocks.
func interruptSigset() unix.Sigset_t {
	var set unix.Sigset_t
	for _, sig := range []syscall.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGALRM, syscall.SIGTERM} {
		set |= 1 << (uint32(sig) - 1)
	}
	return set
}
