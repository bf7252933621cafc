package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"syscall"
	"time"

	"golang.org/x/sys/unix"

	"github.com/danmuck/sigctl"
	"github.com/danmuck/sigctl/internal/config"
)

// Each scenario exercises one protocol path end to end. The crash
// scenarios do not return: the process dies by signal, which is the
// point.
var scenarios = map[string]func(config.RunnerConfig) error{
	"interrupt": runInterrupt,
	"pending":   runPending,
	"block":     runBlock,
	"retry":     runRetry,
	"fault":     runFault,
	"nested":    runNested,
	"crash":     runCrash,
	"abort":     runAbort,
}

func selfRaise(sig syscall.Signal) error {
	return unix.Kill(os.Getpid(), sig)
}

// runInterrupt raises SIGALRM against its own region and spins on Check
// until the region unwinds.
func runInterrupt(cfg config.RunnerConfig) error {
	err := sigctl.Protect(cfg.RegionMessage, func(ctx context.Context) error {
		time.AfterFunc(time.Duration(cfg.AlarmDelayMS)*time.Millisecond, func() {
			_ = selfRaise(syscall.SIGALRM)
		})
		deadline := time.Now().Add(time.Duration(cfg.TimeoutMS) * time.Millisecond)
		for time.Now().Before(deadline) {
			if err := sigctl.Check(); err != nil {
				return err
			}
			select {
			case <-ctx.Done():
			case <-time.After(time.Millisecond):
			}
		}
		return errors.New("interrupt never delivered")
	})
	var se *sigctl.SignalError
	if !errors.As(err, &se) {
		return fmt.Errorf("expected signal error, got %v", err)
	}
	fmt.Printf("region failed as expected: %v\n", se)
	return nil
}

// runPending raises outside any region and consumes at the next entry.
func runPending(cfg config.RunnerConfig) error {
	if err := selfRaise(syscall.SIGALRM); err != nil {
		return err
	}
	deadline := time.Now().Add(time.Duration(cfg.TimeoutMS) * time.Millisecond)
	for time.Now().Before(deadline) {
		if sigctl.Snapshot().Pending != 0 {
			break
		}
		time.Sleep(time.Millisecond)
	}
	if err := sigctl.Enter(cfg.RegionMessage); err != nil {
		fmt.Printf("entry consumed pending signal: %v\n", err)
		return nil
	}
	sigctl.Exit()
	return errors.New("pending signal was not consumed")
}

// runBlock defers delivery across a blocked window.
func runBlock(cfg config.RunnerConfig) error {
	err := sigctl.Protect(cfg.RegionMessage, func(ctx context.Context) error {
		sigctl.Block()
		if err := selfRaise(syscall.SIGALRM); err != nil {
			return err
		}
		for sigctl.Snapshot().Pending == 0 {
			time.Sleep(time.Millisecond)
		}
		sigctl.Unblock()
		deadline := time.Now().Add(time.Duration(cfg.TimeoutMS) * time.Millisecond)
		for time.Now().Before(deadline) {
			if err := sigctl.Check(); err != nil {
				return err
			}
			time.Sleep(time.Millisecond)
		}
		return errors.New("signal never redelivered after unblock")
	})
	var se *sigctl.SignalError
	if !errors.As(err, &se) {
		return fmt.Errorf("expected signal error, got %v", err)
	}
	fmt.Printf("redelivered after unblock: %v\n", se)
	return nil
}

func runRetry(cfg config.RunnerConfig) error {
	runs := 0
	err := sigctl.Protect(cfg.RegionMessage, func(ctx context.Context) error {
		runs++
		if runs == 1 {
			sigctl.Retry()
		}
		return nil
	})
	if err != nil {
		return err
	}
	if runs != 2 {
		return fmt.Errorf("expected 2 runs, got %d", runs)
	}
	fmt.Println("region retried once and completed")
	return nil
}

func runFault(cfg config.RunnerConfig) error {
	err := sigctl.Protect(cfg.RegionMessage, func(ctx context.Context) error {
		var p *int
		return fmt.Errorf("unreachable: %d", *p)
	})
	var se *sigctl.SignalError
	if !errors.As(err, &se) || se.Signal != syscall.SIGSEGV {
		return fmt.Errorf("expected SIGSEGV error, got %v", err)
	}
	fmt.Printf("fault recovered: %v\n", se)
	return nil
}

func runNested(cfg config.RunnerConfig) error {
	return sigctl.Protect("outer", func(ctx context.Context) error {
		return sigctl.Protect("inner", func(ctx context.Context) error {
			if d := sigctl.Snapshot().Depth; d != 2 {
				return fmt.Errorf("expected depth 2, got %d", d)
			}
			fmt.Println("nested entry is free")
			return nil
		})
	})
}

// runCrash raises SIGSEGV with no region active; the process terminates
// through the diagnostic path.
func runCrash(cfg config.RunnerConfig) error {
	if err := selfRaise(syscall.SIGSEGV); err != nil {
		return err
	}
	time.Sleep(time.Duration(cfg.TimeoutMS) * time.Millisecond)
	return errors.New("still alive after fatal signal")
}

func runAbort(cfg config.RunnerConfig) error {
	sigctl.Abandon()
	return nil
}
