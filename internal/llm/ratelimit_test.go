package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterTryAcquire(t *testing.T) {
	rl := newRateLimiter(2)
	defer rl.Close()

	assert.True(t, rl.tryAcquire())
	assert.True(t, rl.tryAcquire())
	assert.False(t, rl.tryAcquire(), "bucket must be empty after capacity acquires")
}

func TestRateLimiterWaitWithTokens(t *testing.T) {
	rl := newRateLimiter(10)
	defer rl.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, rl.wait(ctx))
}

func TestRateLimiterWaitCanceled(t *testing.T) {
	rl := newRateLimiter(1)
	defer rl.Close()

	// Drain the bucket so wait has to block.
	require.True(t, rl.tryAcquire())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := rl.wait(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRateLimiterDefaultCapacity(t *testing.T) {
	rl := newRateLimiter(0)
	defer rl.Close()

	assert.Equal(t, 60, rl.capacity)
}
