package sigctl

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"syscall"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestEnterExitBalancedNesting(t *testing.T) {
	resetState(t)
	const n = 7
	for i := 0; i < n; i++ {
		if err := Enter("op"); err != nil {
			t.Fatalf("enter %d: %v", i, err)
		}
		if d := Snapshot().Depth; d != i+1 {
			t.Fatalf("depth after enter %d = %d", i, d)
		}
	}
	for i := n; i > 0; i-- {
		Exit()
		if d := Snapshot().Depth; d != i-1 {
			t.Fatalf("depth after exit = %d, want %d", d, i-1)
		}
	}
	if err := Occurred(); err != nil {
		t.Fatalf("unexpected error after balanced nesting: %v", err)
	}
}

func TestExitWithoutEnterWarnsAndKeepsState(t *testing.T) {
	resetState(t)
	var buf bytes.Buffer
	old := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = old }()

	Exit()
	Exit()

	if d := Snapshot().Depth; d != 0 {
		t.Fatalf("depth changed by unmatched Exit: %d", d)
	}
	warnings := strings.Count(buf.String(), "Exit without matching Enter")
	if warnings != 2 {
		t.Fatalf("expected 2 warnings, got %d in %q", warnings, buf.String())
	}
}

func TestNestedRegionsShareMessageAndTarget(t *testing.T) {
	resetState(t)
	if err := Enter("op1"); err != nil {
		t.Fatalf("enter op1: %v", err)
	}
	if err := Enter("op2"); err != nil {
		t.Fatalf("enter op2: %v", err)
	}
	s := Snapshot()
	if s.Depth != 2 {
		t.Fatalf("depth = %d, want 2", s.Depth)
	}
	if s.Message != "op1" {
		t.Fatalf("nested entry replaced message: %q", s.Message)
	}
	Exit()
	Exit()
	if d := Snapshot().Depth; d != 0 {
		t.Fatalf("final depth = %d", d)
	}
}

func TestProtectRecoversSegfault(t *testing.T) {
	mustSetup(t)
	resetState(t)
	err := Protect("segv op", func(ctx context.Context) error {
		var p *int
		_ = *p
		return nil
	})
	var se *SignalError
	if !errors.As(err, &se) {
		t.Fatalf("expected SignalError, got %v", err)
	}
	if se.Signal != syscall.SIGSEGV {
		t.Fatalf("signal = %v, want SIGSEGV", se.Signal)
	}
	if se.Message != "segv op" {
		t.Fatalf("message = %q", se.Message)
	}
	if d := Snapshot().Depth; d != 0 {
		t.Fatalf("depth after fault = %d", d)
	}
	if Occurred() == nil {
		t.Fatalf("error object not available after fault")
	}
}

var testZero int

func TestProtectRecoversDivideByZero(t *testing.T) {
	mustSetup(t)
	resetState(t)
	err := Protect("", func(ctx context.Context) error {
		q := 1 / testZero
		_ = q
		return nil
	})
	var se *SignalError
	if !errors.As(err, &se) || se.Signal != syscall.SIGFPE {
		t.Fatalf("expected SIGFPE error, got %v", err)
	}
	if se.Message != defaultMessage(syscall.SIGFPE) {
		t.Fatalf("default message not applied: %q", se.Message)
	}
}

func TestProtectFaultAtNestedDepthResetsToZero(t *testing.T) {
	mustSetup(t)
	resetState(t)
	err := Protect("outer", func(ctx context.Context) error {
		return Protect("inner", func(ctx context.Context) error {
			var p *int
			_ = *p
			return nil
		})
	})
	var se *SignalError
	if !errors.As(err, &se) || se.Signal != syscall.SIGSEGV {
		t.Fatalf("expected SIGSEGV from nested fault, got %v", err)
	}
	if d := Snapshot().Depth; d != 0 {
		t.Fatalf("depth after nested fault = %d", d)
	}
}

func TestProtectPassesThroughOrdinaryPanics(t *testing.T) {
	mustSetup(t)
	resetState(t)
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected repanic")
		}
		if r != "boom" {
			t.Fatalf("panic value = %v", r)
		}
		if d := Snapshot().Depth; d != 0 {
			t.Fatalf("depth after foreign panic = %d", d)
		}
	}()
	_ = Protect("", func(ctx context.Context) error {
		panic("boom")
	})
}

func TestProtectPassesThroughFnError(t *testing.T) {
	mustSetup(t)
	resetState(t)
	want := errors.New("domain failure")
	err := Protect("", func(ctx context.Context) error {
		return want
	})
	if !errors.Is(err, want) {
		t.Fatalf("fn error not passed through: %v", err)
	}
	if Occurred() != nil {
		t.Fatalf("fn error should not populate the signal slot")
	}
}

func TestRetryRerunsRegionOnce(t *testing.T) {
	mustSetup(t)
	resetState(t)
	runs := 0
	err := Protect("retry op", func(ctx context.Context) error {
		runs++
		if runs == 1 {
			Retry()
		}
		return nil
	})
	if err != nil {
		t.Fatalf("retry region: %v", err)
	}
	if runs != 2 {
		t.Fatalf("runs = %d, want 2", runs)
	}
	s := Snapshot()
	if s.Depth != 0 || s.Pending != 0 {
		t.Fatalf("state after retry: %+v", s)
	}
}

func TestAbandonFailsRegionWithAbort(t *testing.T) {
	mustSetup(t)
	resetState(t)
	err := Protect("abandon op", func(ctx context.Context) error {
		Abandon()
		return nil
	})
	var se *SignalError
	if !errors.As(err, &se) || se.Signal != syscall.SIGABRT {
		t.Fatalf("expected SIGABRT error, got %v", err)
	}
	if d := Snapshot().Depth; d != 0 {
		t.Fatalf("depth after abandon = %d", d)
	}
}

func TestOccurredClearedAfterCleanRegion(t *testing.T) {
	mustSetup(t)
	resetState(t)
	_ = Protect("", func(ctx context.Context) error {
		var p *int
		_ = *p
		return nil
	})
	if Occurred() == nil {
		t.Fatalf("fault should set the error slot")
	}
	if err := Protect("", func(ctx context.Context) error { return nil }); err != nil {
		t.Fatalf("clean region: %v", err)
	}
	if err := Occurred(); err != nil {
		t.Fatalf("error slot not cleared by clean region: %v", err)
	}
}
