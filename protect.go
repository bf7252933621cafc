package sigctl

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/sigctl/internal/observability"
	"github.com/danmuck/sigctl/internal/platform"
)

// Protect runs fn as a protected region. At depth zero it installs a
// fresh recovery point; nested calls are pure depth increments sharing
// the outer recovery point.
//
// The returned error is either fn's own error, or a *SignalError when
// the region was interrupted or faulted. After a *SignalError the depth
// is back to zero regardless of nesting at the time of the signal.
//
// fn's context is cancelled when a deferrable signal is raised against
// the region, so blocking work inside can bail out promptly; compute
// loops should call Check at checkpoints instead.
func Protect(msg string, fn func(ctx context.Context) error) error {
	if st.depth.Load() > 0 {
		st.depth.Add(1)
		defer st.depth.Add(-1)
		return fn(st.regionContext())
	}

	st.setMessage(msg)
	prev := debug.SetPanicOnFault(true)
	defer debug.SetPanicOnFault(prev)

	for {
		err := runRegion(fn)
		if err == errRetryRegion {
			continue
		}
		if err == nil {
			st.clearErr()
		}
		return err
	}
}

// runRegion is one pass through the region: the enter bookkeeping, fn,
// and the decode of whichever resumption value unwound it.
func runRegion(fn func(ctx context.Context) error) (out error) {
	ctx, cancel := context.WithCancel(context.Background())
	st.storeRegion(&regionHandle{ctx: ctx, cancel: cancel, unwind: true})
	defer func() {
		cancel()
		st.storeRegion(nil)
	}()

	st.clearErr()
	st.depth.Store(1)
	observability.RecordRegionEnter()
	debugf(4, "sigctl: enter region %q", st.messageText())

	// An interrupt recorded before this entry fails the region
	// immediately, without running fn.
	if p := st.pendingSignal(); p != 0 {
		return consumePending(p)
	}

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		switch v := r.(type) {
		case regionRetry:
			observability.RecordRetry()
			out = errRetryRegion
		case regionFault:
			out = finishFault(v.sig)
		default:
			if sig, ok := platform.FaultSignal(r); ok {
				raiseError(sig, st.messageText())
				out = finishFault(sig)
				return
			}
			// Not ours: restore depth bookkeeping and let it go.
			st.depth.Store(0)
			panic(r)
		}
	}()

	err := fn(ctx)

	// The monitor may have raised against this region after fn's last
	// checkpoint; the failure still belongs to this entry.
	if s := st.takeDelivery(); s != 0 {
		return finishFault(s)
	}

	st.depth.Add(-1)
	return err
}

// Enter marks the start of a protected region without installing a
// recovery point: pending signals are consumed at depth zero and depth
// is tracked, but synchronous faults are not recoverable (use Protect
// for that). Returns nil to continue, or a *SignalError when a pending
// signal failed the entry (depth is zero again in that case).
func Enter(msg string) error {
	if st.depth.Load() > 0 {
		st.depth.Add(1)
		return nil
	}
	st.setMessage(msg)
	st.storeRegion(&regionHandle{ctx: context.Background(), cancel: nil, unwind: false})
	st.clearErr()
	st.depth.Store(1)
	observability.RecordRegionEnter()
	if p := st.pendingSignal(); p != 0 {
		return consumePending(p)
	}
	return nil
}

// Exit closes the innermost Enter. Calling it at depth zero is a
// protocol misuse: it logs one warning with the call site and changes
// nothing.
func Exit() {
	if st.depth.Load() <= 0 {
		_, file, line, _ := runtime.Caller(1)
		log.Warn().Str("caller", fmt.Sprintf("%s:%d", file, line)).
			Msg("sigctl: Exit without matching Enter")
		return
	}
	if st.depth.Add(-1) == 0 {
		st.storeRegion(nil)
		// A raise that never reached a checkpoint becomes pending and
		// surfaces at the next depth-zero check.
		if s := st.takeDelivery(); s != 0 {
			st.setPending(s)
		}
	}
}

// Check is the protected-region checkpoint, equivalent to an immediate
// Enter/Exit pair when nothing is pending. At depth zero it consumes a
// pending signal and returns its error; inside a Protect region it
// converts an armed delivery into the region unwind.
func Check() error {
	if st.depth.Load() <= 0 {
		if p := st.pendingSignal(); p != 0 {
			return consumePending(p)
		}
		return nil
	}
	if s := st.takeDelivery(); s != 0 {
		if r := st.region.Load(); r != nil && r.unwind {
			panic(regionFault{sig: s})
		}
		return finishFault(s)
	}
	return nil
}

// Block suppresses deferrable-signal delivery inside the current
// region; use it to bracket short non-reentrant operations. Fatal
// signals still go through.
func Block() {
	st.blockCount.Add(1)
}

// Unblock undoes one Block. When the count reaches zero with a signal
// pending inside an active region, the signal is re-delivered to the
// process so the monitor re-evaluates it against the unblocked state.
func Unblock() {
	n := st.blockCount.Add(-1)
	if n < 0 {
		debugf(1, "sigctl: Unblock with block count %d", n)
	}
	if n == 0 {
		if p := st.pendingSignal(); p != 0 && st.depth.Load() > 0 {
			procRaise(p)
		}
	}
}

// Retry unwinds to the innermost Protect and reruns the region as if
// just entered, discarding partial work; the pending slot is untouched.
// Calling it with no active region is a protocol misuse that aborts the
// process.
func Retry() {
	if st.depth.Load() <= 0 {
		log.Error().Msg("sigctl: Retry without active protected region")
		procRaise(syscall.SIGABRT)
		select {}
	}
	panic(regionRetry{})
}

// Abandon is for fault-reporting callbacks that must not return: it
// fails the active region with an abort error, or terminates the
// process when no region is active. It never returns.
func Abandon() {
	if st.depth.Load() <= 0 {
		log.Error().Msg("sigctl: Abandon without active protected region")
		procRaise(syscall.SIGABRT)
		select {}
	}
	panic(regionFault{sig: syscall.SIGABRT})
}

// Occurred returns the error raised for the most recent failed region
// or consumed pending signal, nil after a clean region.
func Occurred() error {
	return st.loadErr()
}

// consumePending raises the pending signal recorded before this entry
// and fails the region. Interrupts stay masked while the transient
// state is torn down.
func consumePending(p Signal) error {
	var err error
	withInterruptsBlocked(func() {
		err = raiseError(p, st.messageText())
		st.depth.Store(0)
		st.pending.Store(0)
		hooksUnblock()
	})
	observability.RecordFault(signalName(p))
	return err
}

// finishFault closes out a region that a signal unwound: the raised
// error is returned and all transient state is reset.
func finishFault(sig Signal) error {
	err := st.loadErr()
	if err == nil {
		err = raiseError(sig, st.messageText())
	}
	observability.RecordFault(signalName(sig))
	recoverRegion()
	return err
}

// recoverRegion resets every piece of transient state after an unwind,
// including the thread signal mask and the fatal-handler flag.
func recoverRegion() {
	st.blockCount.Store(0)
	hooksUnblock()
	st.depth.Store(0)
	st.pending.Store(0)
	st.delivery.Store(0)
	hooksSetPending(0)
	restoreDefaultMask()
	st.insideHandler.Store(false)
}
