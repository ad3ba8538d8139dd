// Package timer provides a stopwatch that records each start/stop
// interval and their running total.
package timer

import (
	"fmt"
	"time"
)

// MisuseError reports a Start/Stop call made out of order.
type MisuseError struct {
	Op string
}

func (e *MisuseError) Error() string {
	switch e.Op {
	case "start":
		return "timer: already running; use Stop to stop it"
	case "stop":
		return "timer: not running; use Start to start it"
	}
	return fmt.Sprintf("timer: misused %q call", e.Op)
}

// Timer accumulates a list of interval durations and their sum. Start
// and Stop must alternate; anything else returns a MisuseError. The
// zero value is ready to use.
type Timer struct {
	started time.Time
	running bool

	incs    []time.Duration
	elapsed time.Duration
}

// Start begins a new interval.
func (t *Timer) Start() error {
	if t.running {
		return &MisuseError{Op: "start"}
	}

	t.started = time.Now()
	t.running = true

	return nil
}

// Stop ends the current interval, records it and returns its duration.
func (t *Timer) Stop() (time.Duration, error) {
	if !t.running {
		return 0, &MisuseError{Op: "stop"}
	}

	inc := time.Since(t.started)
	t.incs = append(t.incs, inc)
	t.elapsed += inc
	t.running = false

	return inc, nil
}

// Running reports whether an interval is open.
func (t *Timer) Running() bool {
	return t.running
}

// Incs returns a copy of the recorded intervals, oldest first.
func (t *Timer) Incs() []time.Duration {
	incs := make([]time.Duration, len(t.incs))
	copy(incs, t.incs)
	return incs
}

// Elapsed is the sum of all recorded intervals.
func (t *Timer) Elapsed() time.Duration {
	return t.elapsed
}

// Milliseconds formats the total elapsed time the way the log lines
// expect it.
func (t *Timer) Milliseconds() float64 {
	return float64(t.elapsed) / float64(time.Millisecond)
}
