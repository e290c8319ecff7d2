package rate_limiter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestLimiter_AllowsBurstPerClient(t *testing.T) {
	l := New(1, 3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("10.0.0.1"), "request %d within burst", i+1)
	}
	assert.False(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.2"), "clients have separate buckets")
	assert.Equal(t, 2, l.Len())
}

func TestLimiter_CleanupForgetsIdleClients(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l := New(1, 1, 5*time.Minute)
	l.now = func() time.Time { return now }

	l.Allow("old")
	now = now.Add(4 * time.Minute)
	l.Allow("recent")
	now = now.Add(2 * time.Minute)

	l.Cleanup()
	assert.Equal(t, 1, l.Len())
	l.mu.Lock()
	_, kept := l.visitors["recent"]
	l.mu.Unlock()
	assert.True(t, kept)
}

func TestLimiter_RunStopsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	l := New(1, 1, time.Millisecond)
	l.Allow("client")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.Run(ctx, time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return l.Len() == 0 }, time.Second, time.Millisecond)
	cancel()
	<-done
}
