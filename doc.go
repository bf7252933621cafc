// Package sigctl owns protected-region signal interception.
//
// Two signal classes are distinguished:
//
//  1. Deferrable signals: SIGHUP, SIGINT, SIGALRM, SIGTERM. These need
//     not be acted on immediately; outside a protected region (or while
//     delivery is blocked) they are recorded as pending and surfaced at
//     the next depth-zero checkpoint.
//
//  2. Fatal signals: SIGQUIT, SIGILL, SIGABRT, SIGFPE, SIGBUS, SIGSEGV.
//     These cannot be ignored. Inside a protected region they are
//     converted to a *SignalError and the region unwinds to its Protect
//     call; outside one they terminate the process through the crash
//     path. SIGQUIT is never recovered and always terminates.
//
// Ownership boundary:
//   - the process-wide signal state record
//   - the monitor goroutine that implements the handler state machine
//   - the Enter/Exit/Check/Block/Unblock/Retry/Abandon protocol
//   - the fatal-crash diagnostic path (internal/crash)
//
// Exactly one goroutine is expected to hold a live protected region at a
// time; concurrent regions on multiple goroutines are unsupported.
package sigctl
