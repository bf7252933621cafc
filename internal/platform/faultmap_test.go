package platform

import (
	"errors"
	"syscall"
	"testing"
)

var zero int

func recoverValue(f func()) (r any) {
	defer func() { r = recover() }()
	f()
	return nil
}

func TestFaultSignalNilDeref(t *testing.T) {
	r := recoverValue(func() {
		var p *int
		_ = *p
	})
	sig, ok := FaultSignal(r)
	if !ok {
		t.Fatalf("nil deref not recognized as fault: %v", r)
	}
	if sig != syscall.SIGSEGV {
		t.Fatalf("nil deref mapped to %v, want SIGSEGV", sig)
	}
}

func TestFaultSignalDivideByZero(t *testing.T) {
	r := recoverValue(func() {
		q := 1 / zero
		_ = q
	})
	sig, ok := FaultSignal(r)
	if !ok {
		t.Fatalf("divide by zero not recognized as fault: %v", r)
	}
	if sig != syscall.SIGFPE {
		t.Fatalf("divide by zero mapped to %v, want SIGFPE", sig)
	}
}

func TestFaultSignalRejectsOrdinaryPanics(t *testing.T) {
	if _, ok := FaultSignal(errors.New("boom")); ok {
		t.Fatalf("plain error treated as fault")
	}
	r := recoverValue(func() {
		s := []int{}
		_ = s[zero+1]
	})
	if _, ok := FaultSignal(r); ok {
		t.Fatalf("bounds error treated as fault: %v", r)
	}
}

func TestDefaultBackendClassesDisjoint(t *testing.T) {
	b := Default()
	seen := map[string]bool{}
	for _, s := range b.Handled() {
		if seen[s.String()] {
			t.Fatalf("signal %v installed twice", s)
		}
		seen[s.String()] = true
	}
	if len(b.Deferrable) == 0 || len(b.Fatal) == 0 {
		t.Fatalf("backend missing a class: %+v", b)
	}
}
