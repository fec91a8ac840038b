package jitter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration_Bounds(t *testing.T) {
	for i := 0; i < 100; i++ {
		d := Duration(100*time.Millisecond, DefaultJitter)
		assert.GreaterOrEqual(t, d, 100*time.Millisecond)
		assert.LessOrEqual(t, d, 150*time.Millisecond)
	}

	assert.Equal(t, time.Second, Duration(time.Second, 0))
}

func TestExponentialBackoff_Capped(t *testing.T) {
	assert.Equal(t, 10*time.Millisecond, ExponentialBackoff(10*time.Millisecond, time.Second, 0, 0))
	assert.Equal(t, 40*time.Millisecond, ExponentialBackoff(10*time.Millisecond, time.Second, 2, 0))
	assert.Equal(t, time.Second, ExponentialBackoff(10*time.Millisecond, time.Second, 20, 0))
}

func TestSleep_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Sleep(ctx, time.Hour)
	require.ErrorIs(t, err, context.Canceled)
}
