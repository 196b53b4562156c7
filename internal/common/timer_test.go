package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimerStop(t *testing.T) {
	timer := StartTimer("stage")
	time.Sleep(5 * time.Millisecond)
	d := timer.Stop()
	assert.GreaterOrEqual(t, d, 5*time.Millisecond)

	// a second Stop keeps the first recording
	time.Sleep(2 * time.Millisecond)
	assert.Equal(t, d, timer.Stop())
}

func TestTimerString(t *testing.T) {
	timer := StartTimer("binarize")
	timer.Stop()
	assert.Contains(t, timer.String(), "binarize:")
	assert.Equal(t, "binarize", timer.Name())
}
