package github

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rateHeader(remaining int, reset time.Time) http.Header {
	h := http.Header{}
	h.Set(HeaderRateLimit, "60")
	h.Set(HeaderRateRemaining, strconv.Itoa(remaining))
	if !reset.IsZero() {
		h.Set(HeaderRateReset, strconv.FormatInt(reset.Unix(), 10))
	}
	return h
}

func TestRateLimiter_CheckRateLimit(t *testing.T) {
	clk := newFakeClock()
	now := clk.Now()

	t.Run("403 with zero remaining uses reset header", func(t *testing.T) {
		rl := NewRateLimiter(WithClock(clk.Now, clk.Sleep))

		err := rl.CheckRateLimit(http.StatusForbidden, rateHeader(0, now.Add(2*time.Second)))

		require.NotNil(t, err)
		assert.Equal(t, now.Add(2*time.Second), err.ResetAt)
		assert.Equal(t, now.Add(7*time.Second), err.RetryAt)
		assert.Equal(t, 60, err.Limit)
	})

	t.Run("missing reset header means reset now", func(t *testing.T) {
		rl := NewRateLimiter(WithClock(clk.Now, clk.Sleep))

		err := rl.CheckRateLimit(http.StatusForbidden, rateHeader(0, time.Time{}))

		require.NotNil(t, err)
		assert.Equal(t, now, err.ResetAt)
		assert.Equal(t, now.Add(SafetyMargin), err.RetryAt)
	})

	t.Run("retry-after overrides reset", func(t *testing.T) {
		rl := NewRateLimiter(WithClock(clk.Now, clk.Sleep))
		h := http.Header{}
		h.Set(HeaderRetryAfter, "30")

		err := rl.CheckRateLimit(http.StatusForbidden, h)

		require.NotNil(t, err)
		assert.Equal(t, now.Add(30*time.Second), err.ResetAt)
	})

	t.Run("429 is always a rate limit", func(t *testing.T) {
		rl := NewRateLimiter(WithClock(clk.Now, clk.Sleep))

		assert.NotNil(t, rl.CheckRateLimit(http.StatusTooManyRequests, http.Header{}))
	})

	t.Run("403 with quota left is not a rate limit", func(t *testing.T) {
		rl := NewRateLimiter(WithClock(clk.Now, clk.Sleep))

		assert.Nil(t, rl.CheckRateLimit(http.StatusForbidden, rateHeader(10, now.Add(time.Hour))))
	})

	t.Run("success updates state", func(t *testing.T) {
		rl := NewRateLimiter(WithClock(clk.Now, clk.Sleep))

		assert.Nil(t, rl.CheckRateLimit(http.StatusOK, rateHeader(42, now.Add(time.Hour))))
		assert.Equal(t, 42, rl.Remaining())
		assert.Equal(t, 60, rl.Limit())
		assert.Equal(t, now.Add(time.Hour), rl.ResetTime())
	})
}

func TestRateLimiter_Wait(t *testing.T) {
	t.Run("no wait without a window", func(t *testing.T) {
		clk := newFakeClock()
		rl := NewRateLimiter(WithClock(clk.Now, clk.Sleep))

		require.NoError(t, rl.Wait(context.Background()))
		assert.Empty(t, clk.Slept())
	})

	t.Run("waits out a blocked window", func(t *testing.T) {
		clk := newFakeClock()
		rl := NewRateLimiter(WithClock(clk.Now, clk.Sleep))
		rl.Block(clk.Now().Add(10 * time.Second))

		require.NoError(t, rl.Wait(context.Background()))
		assert.Equal(t, []time.Duration{10 * time.Second}, clk.Slept())
	})

	t.Run("earlier block does not shorten the window", func(t *testing.T) {
		clk := newFakeClock()
		rl := NewRateLimiter(WithClock(clk.Now, clk.Sleep))
		rl.Block(clk.Now().Add(10 * time.Second))
		rl.Block(clk.Now().Add(time.Second))

		d, until := rl.pending()
		assert.Equal(t, 10*time.Second, d)
		assert.Equal(t, clk.Now().Add(10*time.Second), until)
	})

	t.Run("refuses a window longer than max wait", func(t *testing.T) {
		clk := newFakeClock()
		rl := NewRateLimiter(WithClock(clk.Now, clk.Sleep), WithMaxWait(time.Minute))
		rl.UpdateFromResponse(rateHeader(0, clk.Now().Add(24*time.Hour)))

		err := rl.Wait(context.Background())

		var rlErr *RateLimitError
		require.True(t, errors.As(err, &rlErr))
		assert.Equal(t, clk.Now().Add(24*time.Hour), rlErr.ResetAt)
		assert.Equal(t, clk.Now().Add(24*time.Hour+SafetyMargin), rlErr.RetryAt)
		assert.Equal(t, 60, rlErr.Limit)
		assert.Empty(t, clk.Slept())
	})

	t.Run("waits within max wait", func(t *testing.T) {
		clk := newFakeClock()
		rl := NewRateLimiter(WithClock(clk.Now, clk.Sleep), WithMaxWait(time.Minute))
		rl.Block(clk.Now().Add(time.Minute))

		require.NoError(t, rl.Wait(context.Background()))
		assert.Equal(t, []time.Duration{time.Minute}, clk.Slept())
	})

	t.Run("exhausted quota waits for reset plus margin", func(t *testing.T) {
		clk := newFakeClock()
		rl := NewRateLimiter(WithClock(clk.Now, clk.Sleep))
		rl.UpdateFromResponse(rateHeader(0, clk.Now().Add(3*time.Second)))

		require.NoError(t, rl.Wait(context.Background()))
		assert.Equal(t, []time.Duration{8 * time.Second}, clk.Slept())
	})

	t.Run("released callers are staggered", func(t *testing.T) {
		clk := newFakeClock()
		rl := NewRateLimiter(WithClock(clk.Now, clk.Sleep), WithReleaseSpacing(time.Second))

		require.NoError(t, rl.release(context.Background()))
		require.NoError(t, rl.release(context.Background()))
		assert.Equal(t, []time.Duration{time.Second}, clk.Slept())
	})

	t.Run("cancelled context interrupts the wait", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		clk := newFakeClock()
		rl := NewRateLimiter(WithClock(clk.Now, func(ctx context.Context, _ time.Duration) error {
			cancel()
			<-ctx.Done()
			return ctx.Err()
		}))
		rl.Block(clk.Now().Add(time.Hour))

		err := rl.Wait(ctx)

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("real sleep honours cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		assert.ErrorIs(t, sleepContext(ctx, time.Hour), context.Canceled)
		assert.NoError(t, sleepContext(context.Background(), time.Millisecond))
	})
}
