// Package common provides small shared helpers, currently stage timing.
package common

import (
	"fmt"
	"time"
)

// Timer measures the wall-clock duration of one named pipeline stage.
type Timer struct {
	name     string
	start    time.Time
	duration time.Duration
}

// StartTimer begins timing a named stage.
func StartTimer(name string) *Timer {
	return &Timer{name: name, start: time.Now()}
}

// Stop records and returns the elapsed duration. Subsequent calls return the
// first recording.
func (t *Timer) Stop() time.Duration {
	if t.duration == 0 {
		t.duration = time.Since(t.start)
	}
	return t.duration
}

// Name returns the stage name.
func (t *Timer) Name() string { return t.name }

// String renders "name: duration" for log output.
func (t *Timer) String() string {
	return fmt.Sprintf("%s: %v", t.name, t.duration)
}
