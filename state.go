package sigctl

import (
	"context"
	"sync/atomic"
)

// guardState is the process-wide signal state record. There is exactly
// one instance, shared between the monitor goroutine and whichever
// goroutine currently holds a protected region.
//
// Signal-safety rules per field:
//   - depth, pending, blockCount, delivery, insideHandler: plain atomics,
//     touched by both the monitor and the protocol; never behind a lock.
//   - message, lastErr, region: pointer swaps only; the monitor reads
//     them but never follows into anything that allocates.
type guardState struct {
	// depth > 0 means a protected region is active. 0->1 happens only
	// together with fresh resumption state; recovery resets it to 0.
	depth atomic.Int32

	// pending holds a deferrable signal that could not be delivered
	// immediately (outside a region, or while blocked). 0 means none.
	pending atomic.Int32

	// insideHandler is set between a fatal-class delivery decision and
	// the recovery that follows it. A second fatal signal arriving while
	// it is set is a fault-during-fault and terminates the process.
	insideHandler atomic.Bool

	// blockCount > 0 suppresses deferrable delivery even inside a
	// region. See Block and Unblock.
	blockCount atomic.Int32

	// delivery is an armed in-region unwind: the monitor stores the
	// signal here after raising the error; the next checkpoint consumes
	// it and unwinds to the enclosing Protect.
	delivery atomic.Int32

	message atomic.Pointer[string]
	lastErr atomic.Pointer[errBox]
	region  atomic.Pointer[regionHandle]
}

// errBox exists so the error interface can sit behind an atomic pointer.
type errBox struct{ err error }

// regionHandle carries the per-region context. unwind is true for
// Protect-managed regions, which have a recovery point to panic to;
// Enter-managed regions do not and surface faults by return value.
type regionHandle struct {
	ctx    context.Context
	cancel context.CancelFunc
	unwind bool
}

var st guardState

func (g *guardState) setMessage(msg string) {
	if msg == "" {
		g.message.Store(nil)
		return
	}
	g.message.Store(&msg)
}

func (g *guardState) messageText() string {
	if p := g.message.Load(); p != nil {
		return *p
	}
	return ""
}

func (g *guardState) storeErr(err error) {
	g.lastErr.Store(&errBox{err: err})
}

func (g *guardState) loadErr() error {
	if b := g.lastErr.Load(); b != nil {
		return b.err
	}
	return nil
}

func (g *guardState) clearErr() {
	g.lastErr.Store(nil)
}

// setPending records a deferred signal, honoring termination priority.
// Only the monitor goroutine calls this.
func (g *guardState) setPending(sig Signal) {
	for {
		p := Signal(g.pending.Load())
		if isTermination(p) {
			return
		}
		if g.pending.CompareAndSwap(int32(p), int32(sig)) {
			hooksSetPending(sig)
			return
		}
	}
}

func (g *guardState) pendingSignal() Signal {
	return Signal(g.pending.Load())
}

func (g *guardState) armDelivery(sig Signal) {
	g.delivery.Store(int32(sig))
}

func (g *guardState) takeDelivery() Signal {
	return Signal(g.delivery.Swap(0))
}

func (g *guardState) storeRegion(r *regionHandle) {
	g.region.Store(r)
}

func (g *guardState) cancelRegion() {
	if r := g.region.Load(); r != nil && r.cancel != nil {
		r.cancel()
	}
}

func (g *guardState) regionContext() context.Context {
	if r := g.region.Load(); r != nil && r.ctx != nil {
		return r.ctx
	}
	return context.Background()
}

// Stats is a read-only snapshot of the state record.
type Stats struct {
	Depth         int
	Pending       Signal
	Blocked       int
	InsideHandler bool
	Message       string
}

// Snapshot returns the current protocol state. Intended for diagnostics
// and tests; values may be stale by the time the caller reads them.
func Snapshot() Stats {
	return Stats{
		Depth:         int(st.depth.Load()),
		Pending:       Signal(st.pending.Load()),
		Blocked:       int(st.blockCount.Load()),
		InsideHandler: st.insideHandler.Load(),
		Message:       st.messageText(),
	}
}
