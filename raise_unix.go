//go:build unix

package sigctl

import (
	"os"

	"golang.org/x/sys/unix"
)

// procRaise sends sig to the whole process, not just the calling
// thread, so the monitor re-evaluates it against current state.
func procRaise(sig Signal) {
	_ = unix.Kill(os.Getpid(), sig)
}
