//go:build unix

package crash

import (
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// terminate re-raises sig so the exit status reflects signal
// termination. The exit call is a backstop only.
func terminate(sig syscall.Signal) {
	_ = unix.Kill(os.Getpid(), sig)
	os.Exit(128 + int(sig))
}
