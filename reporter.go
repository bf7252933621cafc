package sigctl

import "sync/atomic"

// Reporter is the embedding runtime's side of the protocol. RaiseError
// builds the error object surfaced by a failed region; SetInterrupt is
// the fire-and-forget asynchronous interrupt indicator, consumed by the
// runtime at its own pace. Both are called from the monitor goroutine
// and must not block.
type Reporter interface {
	RaiseError(sig Signal, msg string) error
	SetInterrupt()
}

// flagReporter is the built-in Reporter: errors are plain *SignalError
// values and the interrupt indicator is a single flag.
type flagReporter struct {
	interrupted atomic.Bool
}

func (r *flagReporter) RaiseError(sig Signal, msg string) error {
	if msg == "" {
		msg = defaultMessage(sig)
	}
	return &SignalError{Signal: sig, Message: msg}
}

func (r *flagReporter) SetInterrupt() {
	r.interrupted.Store(true)
}

var (
	builtinReporter = &flagReporter{}
	reporterPtr     atomic.Pointer[Reporter]
)

// SetReporter replaces the built-in reporter. Call before Setup.
func SetReporter(r Reporter) {
	reporterPtr.Store(&r)
}

func getReporter() Reporter {
	if p := reporterPtr.Load(); p != nil {
		return *p
	}
	return builtinReporter
}

// InterruptRequested reports whether the built-in reporter has an
// unconsumed asynchronous interrupt indication.
func InterruptRequested() bool {
	return builtinReporter.interrupted.Load()
}

// ClearInterrupt consumes the indication set by InterruptRequested.
func ClearInterrupt() {
	builtinReporter.interrupted.Store(false)
}

// raiseError asks the reporter for an error object and records it in
// the state record's error slot.
func raiseError(sig Signal, msg string) error {
	err := getReporter().RaiseError(sig, msg)
	st.storeErr(err)
	return err
}
