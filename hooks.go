package sigctl

import (
	"errors"
	"sync"
	"sync/atomic"
)

// MaxHooks is the fixed capacity of the custom handler registry.
// Registration past this limit is a startup error.
const MaxHooks = 16

// Hook lets an external library participate in the blocking/deferral
// protocol symmetrically with Block/Unblock. All three callbacks run on
// the monitor goroutine or during recovery and must not allocate or
// block. Nil callbacks are treated as no-ops.
type Hook struct {
	IsBlocked  func() bool
	Unblock    func()
	SetPending func(sig Signal)
}

// ErrHookCapacity is returned when the registry is full.
var ErrHookCapacity = errors.New("sigctl: custom handler registry full")

// The registry is append-only after startup: entries are published by
// storing the slot first and bumping the count after, so the monitor
// can iterate entries[:n] without a lock.
var hookRegistry struct {
	mu      sync.Mutex
	entries [MaxHooks]Hook
	n       atomic.Int32
}

// RegisterHook appends h to the registry. Register hooks at process
// startup, before signals are in flight.
func RegisterHook(h Hook) error {
	hookRegistry.mu.Lock()
	defer hookRegistry.mu.Unlock()
	n := hookRegistry.n.Load()
	if n >= MaxHooks {
		return ErrHookCapacity
	}
	hookRegistry.entries[n] = h
	hookRegistry.n.Store(n + 1)
	return nil
}

func hooksBlocked() bool {
	n := hookRegistry.n.Load()
	for i := int32(0); i < n; i++ {
		if f := hookRegistry.entries[i].IsBlocked; f != nil && f() {
			return true
		}
	}
	return false
}

func hooksUnblock() {
	n := hookRegistry.n.Load()
	for i := int32(0); i < n; i++ {
		if f := hookRegistry.entries[i].Unblock; f != nil {
			f()
		}
	}
}

func hooksSetPending(sig Signal) {
	n := hookRegistry.n.Load()
	for i := int32(0); i < n; i++ {
		if f := hookRegistry.entries[i].SetPending; f != nil {
			f(sig)
		}
	}
}

// resetHooksForTest empties the registry. Tests only.
func resetHooksForTest() {
	hookRegistry.mu.Lock()
	defer hookRegistry.mu.Unlock()
	hookRegistry.n.Store(0)
	hookRegistry.entries = [MaxHooks]Hook{}
}
