package platform

import (
	"runtime"
	"strings"
	"syscall"
)

// faultTable maps the runtime's fault panics back to the signal that
// would have carried them. Matching is by message substring because the
// runtime exposes no structured fault identity.
var faultTable = []struct {
	substr string
	sig    syscall.Signal
}{
	{"invalid memory address", syscall.SIGSEGV},
	{"unexpected fault address", syscall.SIGSEGV},
	{"integer divide by zero", syscall.SIGFPE},
	{"floating point error", syscall.SIGFPE},
}

// FaultSignal reports whether a recovered panic value is a hardware
// fault surfaced by the runtime, and if so which signal it maps to.
// Ordinary runtime errors (slice bounds, nil map writes and the like)
// are not faults and return false.
func FaultSignal(r any) (syscall.Signal, bool) {
	err, ok := r.(runtime.Error)
	if !ok {
		return 0, false
	}
	msg := err.Error()
	for _, entry := range faultTable {
		if strings.Contains(msg, entry.substr) {
			return entry.sig, true
		}
	}
	return 0, false
}
