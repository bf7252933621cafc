//go:build !linux && !darwin

package sigctl

// Platforms without pthread sigmask support fall back to the fast
// resumption variant everywhere; mask correctness is best-effort.

func saveDefaultMask() error { return nil }

func restoreDefaultMask() {}

func withInterruptsBlocked(fn func()) { fn() }
