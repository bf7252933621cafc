//go:build linux || darwin

package sigctl

import (
	"runtime"

	"golang.org/x/sys/unix"
)

var (
	defaultMask      unix.Sigset_t
	defaultMaskSaved bool
)

// saveDefaultMask records the calling thread's signal mask as the mask
// to restore after recovery. Called once from Setup.
func saveDefaultMask() error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	if err := unix.PthreadSigmask(unix.SIG_SETMASK, nil, &defaultMask); err != nil {
		return err
	}
	defaultMaskSaved = true
	return nil
}

// restoreDefaultMask resets the current thread's mask to the one saved
// at setup. Part of the full (mask-correct) resumption variant.
func restoreDefaultMask() {
	if !defaultMaskSaved {
		return
	}
	runtime.LockOSThread()
	_ = unix.PthreadSigmask(unix.SIG_SETMASK, &defaultMask, nil)
	runtime.UnlockOSThread()
}

// withInterruptsBlocked runs fn with the deferrable signals masked on
// the calling thread, closing the race between consuming a pending
// signal and a new one arriving.
func withInterruptsBlocked(fn func()) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	var old unix.Sigset_t
	blocked := interruptSigset()
	if err := unix.PthreadSigmask(unix.SIG_BLOCK, &blocked, &old); err != nil {
		fn()
		return
	}
	defer func() {
		_ = unix.PthreadSigmask(unix.SIG_SETMASK, &old, nil)
	}()
	fn()
}
