package jitter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJitter(t *testing.T) {
	{
		// maxMs <= 0 never sleeps.
		assert.Equal(t, time.Duration(0), Jitter(100, 0, 2))
		assert.Equal(t, time.Duration(0), Jitter(100, -1, 2))
	}
	{
		// Bounded by maxMs.
		for range 50 {
			duration := Jitter(10, 200, 30)
			assert.GreaterOrEqual(t, duration, time.Duration(0))
			assert.Less(t, duration, 200*time.Millisecond)
		}
	}
	{
		// Early attempts are bounded by the exponential term.
		for range 50 {
			assert.Less(t, Jitter(10, DefaultMaxMs, 0), 10*time.Millisecond)
		}
	}
}
