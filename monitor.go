package sigctl

import (
	"fmt"
	"os"
	"runtime"
	"sync"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/sigctl/internal/crash"
	"github.com/danmuck/sigctl/internal/observability"
	"github.com/danmuck/sigctl/internal/platform"
)

var (
	setupOnce sync.Once
	setupErr  error
	sigCh     chan os.Signal
)

// Setup performs the one-time bootstrap: it reserves the crash-path
// buffers, saves the default signal mask, installs the platform's
// signal set, and starts the monitor goroutine. It must be called
// before the first protected region; a non-nil error means the system
// cannot function and should be treated as fatal by the caller.
func Setup() error {
	setupOnce.Do(func() {
		if err := crash.Reserve(); err != nil {
			setupErr = fmt.Errorf("sigctl: reserve crash buffers: %w", err)
			return
		}
		if err := saveDefaultMask(); err != nil {
			setupErr = fmt.Errorf("sigctl: save default signal mask: %w", err)
			return
		}
		observability.RegisterMetrics()

		sigCh = make(chan os.Signal, 16)
		platform.Default().Install(sigCh)

		started := make(chan struct{})
		go monitorLoop(sigCh, started)
		<-started
		log.Debug().Msg("sigctl: monitor started")
	})
	return setupErr
}

// redeliver feeds a signal back into the monitor without the kernel's
// help. Dropping is fine when the channel is full: the signal is
// already recorded as pending.
func redeliver(sig Signal) {
	if sigCh == nil {
		return
	}
	select {
	case sigCh <- sig:
	default:
	}
}

// monitorLoop is the trampoline: the one goroutine, pinned to its own
// thread and stack, through which every delivery decision passes. It is
// the only code that runs "in signal context" and it must not touch
// anything that is not signal-handler-safe.
func monitorLoop(ch <-chan os.Signal, started chan<- struct{}) {
	runtime.LockOSThread()
	close(started)
	for raw := range ch {
		sig, ok := raw.(syscall.Signal)
		if !ok {
			continue
		}
		switch {
		case IsDeferrable(sig):
			observability.RecordSignal("deferrable", signalName(sig))
			onDeferrable(sig)
		case IsFatal(sig):
			observability.RecordSignal("fatal", signalName(sig))
			onFatal(sig)
		}
	}
}

// onDeferrable implements the deferrable-class state machine: raise and
// unwind inside an unblocked region, defer otherwise.
func onDeferrable(sig Signal) {
	if st.depth.Load() > 0 && st.blockCount.Load() == 0 && !hooksBlocked() {
		debugf(1, "sigctl: %s inside region", signalName(sig))
		raiseError(sig, st.messageText())
		st.armDelivery(sig)
		st.cancelRegion()
		return
	}

	debugf(1, "sigctl: %s deferred", signalName(sig))
	if st.depth.Load() <= 0 {
		getReporter().SetInterrupt()
	}
	st.setPending(sig)
	observability.RecordDeferred(signalName(sig))
}

// onFatal implements the fatal-class state machine. SIGQUIT is never
// recovered; a fatal signal arriving while one is already being handled
// terminates with the fault-during-fault message.
func onFatal(sig Signal) {
	inside := st.insideHandler.Swap(true)

	if !inside && st.depth.Load() > 0 && sig != syscall.SIGQUIT {
		debugf(1, "sigctl: %s inside region", signalName(sig))
		raiseError(sig, st.messageText())
		st.armDelivery(sig)
		st.cancelRegion()
		return
	}

	observability.RecordCrash(signalName(sig))
	crash.Die(sig, inside)
}
