package github

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/i18nscout/internal/logger"
	"github.com/custodia-labs/i18nscout/internal/metrics"
)

const (
	// ProactiveRate is the default proactive throttle. Zero disables it.
	ProactiveRate = 0

	// MinBuffer is the remaining-request floor below which requests wait for
	// the known reset.
	MinBuffer = 1

	// SafetyMargin is added to every reset time before requests resume.
	SafetyMargin = 5 * time.Second

	// ReleaseSpacing staggers requests released from a blocked window.
	ReleaseSpacing = 250 * time.Millisecond

	// HeaderRateLimit is the rate limit header.
	HeaderRateLimit = "X-RateLimit-Limit"

	// HeaderRateRemaining is the remaining requests header.
	HeaderRateRemaining = "X-RateLimit-Remaining"

	// HeaderRateReset is the reset timestamp header (Unix seconds).
	HeaderRateReset = "X-RateLimit-Reset"

	// HeaderRetryAfter is the retry-after header (seconds).
	HeaderRetryAfter = "Retry-After"
)

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// RateLimiter gates every request of a client. It combines an optional
// token bucket with a shared blocked window derived from API headers, so one
// rate-limit response pauses all concurrent callers.
type RateLimiter struct {
	mu           sync.Mutex
	remaining    int
	limit        int
	known        bool
	resetTime    time.Time
	blockedUntil time.Time
	releaseAt    time.Time
	bucket       *rate.Limiter
	minBuffer    int
	margin       time.Duration
	spacing      time.Duration
	maxWait      time.Duration
	now          func() time.Time
	sleep        SleepFunc
}

// RateLimiterOption configures a RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithRequestsPerSecond enables proactive throttling. Zero disables it.
func WithRequestsPerSecond(rps float64) RateLimiterOption {
	return func(r *RateLimiter) {
		if rps > 0 {
			r.bucket = rate.NewLimiter(rate.Limit(rps), 1)
		} else {
			r.bucket = rate.NewLimiter(rate.Inf, 1)
		}
	}
}

// WithSafetyMargin overrides the margin added to reset times.
func WithSafetyMargin(d time.Duration) RateLimiterOption {
	return func(r *RateLimiter) { r.margin = d }
}

// WithMinBuffer overrides the remaining-request floor.
func WithMinBuffer(n int) RateLimiterOption {
	return func(r *RateLimiter) { r.minBuffer = n }
}

// WithReleaseSpacing overrides the stagger between released requests.
func WithReleaseSpacing(d time.Duration) RateLimiterOption {
	return func(r *RateLimiter) { r.spacing = d }
}

// WithMaxWait caps how long Wait may block. A longer pending window makes
// Wait return a *RateLimitError. Zero disables the cap.
func WithMaxWait(d time.Duration) RateLimiterOption {
	return func(r *RateLimiter) { r.maxWait = d }
}

// WithClock replaces the time source and sleep function.
func WithClock(now func() time.Time, sleep SleepFunc) RateLimiterOption {
	return func(r *RateLimiter) {
		if now != nil {
			r.now = now
		}
		if sleep != nil {
			r.sleep = sleep
		}
	}
}

// NewRateLimiter creates a rate limiter.
func NewRateLimiter(opts ...RateLimiterOption) *RateLimiter {
	r := &RateLimiter{
		bucket:    rate.NewLimiter(rate.Inf, 1),
		minBuffer: MinBuffer,
		margin:    SafetyMargin,
		spacing:   ReleaseSpacing,
		now:       time.Now,
		sleep:     sleepContext,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Wait blocks until it's safe to make a request. It returns a
// *RateLimitError instead of waiting longer than the configured maximum.
func (r *RateLimiter) Wait(ctx context.Context) error {
	blocked := false
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		d, until := r.pending()
		if d <= 0 {
			break
		}
		if r.maxWait > 0 && d > r.maxWait {
			logger.Warn("rate limit wait %s exceeds maximum %s", d.Round(time.Second), r.maxWait)
			return r.refusal(until)
		}
		blocked = true
		metrics.RecordRateLimitWait(d)
		logger.Debug("rate limited, waiting %s", d.Round(time.Second))
		if err := r.sleep(ctx, d); err != nil {
			return err
		}
	}

	if blocked {
		if err := r.release(ctx); err != nil {
			return err
		}
	}

	return r.bucket.Wait(ctx)
}

// pending returns how long callers must still wait and when they may resume.
func (r *RateLimiter) pending() (time.Duration, time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	until := r.blockedUntil
	if r.known && r.remaining < r.minBuffer && now.Before(r.resetTime) {
		if resume := r.resetTime.Add(r.margin); resume.After(until) {
			until = resume
		}
	}
	return until.Sub(now), until
}

// refusal describes a window Wait will not sit out.
func (r *RateLimiter) refusal(until time.Time) *RateLimitError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return &RateLimitError{
		ResetAt:   until.Add(-r.margin),
		RetryAt:   until,
		Remaining: r.remaining,
		Limit:     r.limit,
	}
}

// release assigns each caller leaving a blocked window its own slot.
func (r *RateLimiter) release(ctx context.Context) error {
	r.mu.Lock()
	now := r.now()
	slot := r.releaseAt
	if slot.Before(now) {
		slot = now
	}
	r.releaseAt = slot.Add(r.spacing)
	r.mu.Unlock()

	if d := slot.Sub(now); d > 0 {
		return r.sleep(ctx, d)
	}
	return nil
}

// Block pauses all callers until t. Earlier times never shorten a window.
func (r *RateLimiter) Block(t time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.After(r.blockedUntil) {
		r.blockedUntil = t
	}
}

// UpdateFromResponse updates rate limit state from response headers.
func (r *RateLimiter) UpdateFromResponse(header http.Header) {
	if header == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if remaining := header.Get(HeaderRateRemaining); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			r.remaining = val
			r.known = true
			metrics.SetRateLimitRemaining(val)
		}
	}

	if limit := header.Get(HeaderRateLimit); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil {
			r.limit = val
		}
	}

	if reset := header.Get(HeaderRateReset); reset != "" {
		if val, err := strconv.ParseInt(reset, 10, 64); err == nil {
			r.resetTime = time.Unix(val, 0)
		}
	}
}

// CheckRateLimit records the response headers and reports whether the
// response is a rate-limit refusal. A 429 always is; a 403 is when the
// remaining quota is exhausted or the server sent Retry-After.
func (r *RateLimiter) CheckRateLimit(status int, header http.Header) *RateLimitError {
	r.UpdateFromResponse(header)

	retryAfter, hasRetryAfter := parseRetryAfter(header)
	remaining, hasRemaining := headerInt(header, HeaderRateRemaining)

	exhausted := hasRemaining && remaining < max(r.minBuffer, 1)
	if status != http.StatusTooManyRequests && !(status == http.StatusForbidden && (exhausted || hasRetryAfter)) {
		return nil
	}

	now := r.now()
	resetAt := now
	switch {
	case hasRetryAfter:
		resetAt = now.Add(retryAfter)
	default:
		if v, ok := headerInt(header, HeaderRateReset); ok {
			resetAt = time.Unix(int64(v), 0)
		}
	}

	limit, _ := headerInt(header, HeaderRateLimit)
	return &RateLimitError{
		ResetAt:   resetAt,
		RetryAt:   resetAt.Add(r.margin),
		Remaining: remaining,
		Limit:     limit,
	}
}

// Remaining returns the last reported remaining requests.
func (r *RateLimiter) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remaining
}

// Limit returns the last reported rate limit.
func (r *RateLimiter) Limit() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.limit
}

// ResetTime returns the last reported reset time.
func (r *RateLimiter) ResetTime() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resetTime
}

// Now returns the limiter's current time.
func (r *RateLimiter) Now() time.Time {
	return r.now()
}

func parseRetryAfter(header http.Header) (time.Duration, bool) {
	seconds, ok := headerInt(header, HeaderRetryAfter)
	if !ok || seconds < 0 {
		return 0, false
	}
	return time.Duration(seconds) * time.Second, true
}

func headerInt(header http.Header, key string) (int, bool) {
	if header == nil {
		return 0, false
	}
	raw := header.Get(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
