//go:build linux

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
		n := uint(sig) - 1
		set.Val[n/64] |= 1 << (n % 64)
	}
	return set
}
