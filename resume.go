package sigctl

import "errors"

// Non-local control transfer out of a protected region is expressed as
// a panic carrying a tagged resumption value, decoded once by the
// recover block in runRegion:
//
//	regionFault{sig} - a signal was converted to an error; the region
//	                   fails and Protect returns the raised *SignalError
//	                   (the positive tag).
//	regionRetry{}    - an explicit retry request; the region reruns as
//	                   if just entered (the negative tag).
//
// A fresh entry is the absence of either (the zero tag).
//
// The mask-restoring "full" variant of the primitive lives in
// resume_unix.go: withInterruptsBlocked and restoreDefaultMask pay for
// thread signal-mask manipulation and are used only on the rare signal
// path. The fast variant is the bare panic/recover pair above, used on
// every region entry.

type regionFault struct{ sig Signal }

type regionRetry struct{}

// errRetryRegion is the internal marker runRegion returns after a retry
// unwind; Protect consumes it and loops.
var errRetryRegion = errors.New("sigctl: retry region")
