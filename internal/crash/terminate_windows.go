//go:build windows

package crash

import (
	"os"
	"syscall"
)

// Windows cannot re-deliver arbitrary signals; exit with the
// conventional signal status instead.
func terminate(sig syscall.Signal) {
	os.Exit(128 + int(sig))
}
