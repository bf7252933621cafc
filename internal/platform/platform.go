// Package platform owns the per-platform-family signal capabilities:
// which signals get installed for each handler class, and the mapping
// from runtime faults back to signal identities. The fault table is the
// only truly platform-specific data; everything else is plumbing around
// os/signal.
package platform

import (
	"os"
	"os/signal"
)

// Backend describes one platform family's signal surface.
type Backend struct {
	// Deferrable signals are delayed until a safe checkpoint when they
	// cannot be delivered immediately.
	Deferrable []os.Signal

	// Fatal signals are either converted to errors inside a protected
	// region or terminate the process.
	Fatal []os.Signal
}

// Install routes both signal classes to ch.
func (b Backend) Install(ch chan<- os.Signal) {
	signal.Notify(ch, b.Deferrable...)
	signal.Notify(ch, b.Fatal...)
}

// Handled returns every signal the backend installs.
func (b Backend) Handled() []os.Signal {
	out := make([]os.Signal, 0, len(b.Deferrable)+len(b.Fatal))
	out = append(out, b.Deferrable...)
	out = append(out, b.Fatal...)
	return out
}

// ResetAll restores the pre-install disposition of every handled
// signal. Used by the crash path before re-raising.
func ResetAll() {
	signal.Reset(Default().Handled()...)
}
