//go:build windows

package sigctl

// Windows has no process-directed kill for arbitrary signals; re-deliver
// through the monitor channel instead.
func procRaise(sig Signal) {
	redeliver(sig)
}
