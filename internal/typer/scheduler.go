// internal/typer/scheduler.go
package typer

import "time"

// timerHandle is a cancelable pending callback.
type timerHandle interface {
	// Stop prevents the callback from firing. It reports whether the
	// callback was still pending.
	Stop() bool
}

// scheduler arms one-shot timers. The production implementation delegates
// to time.AfterFunc; tests substitute a manual scheduler and fire ticks
// deterministically. Periodic phases re-arm a fresh one-shot on every tick,
// so at most one timer handle exists per phase.
type scheduler interface {
	After(d time.Duration, fn func()) timerHandle
}

type systemScheduler struct{}

func (systemScheduler) After(d time.Duration, fn func()) timerHandle {
	return time.AfterFunc(d, fn)
}
