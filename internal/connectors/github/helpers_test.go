package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/i18nscout/internal/core/domain"
)

// fakeClock advances only when something sleeps on it.
type fakeClock struct {
	mu    sync.Mutex
	now   time.Time
	slept []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1_700_000_000, 0)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.slept = append(f.slept, d)
	f.now = f.now.Add(d)
	return nil
}

func (f *fakeClock) Slept() []time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]time.Duration(nil), f.slept...)
}

// manualClock moves only when the test advances it. Sleepers block until
// the clock reaches their deadline.
type manualClock struct {
	mu      sync.Mutex
	now     time.Time
	slept   []time.Duration
	waiters []*clockWaiter
}

type clockWaiter struct {
	at   time.Time
	wake chan struct{}
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Unix(1_700_000_000, 0)}
}

func (m *manualClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *manualClock) Sleep(ctx context.Context, d time.Duration) error {
	m.mu.Lock()
	w := &clockWaiter{at: m.now.Add(d), wake: make(chan struct{})}
	m.slept = append(m.slept, d)
	m.waiters = append(m.waiters, w)
	m.mu.Unlock()

	select {
	case <-w.wake:
		return nil
	case <-ctx.Done():
		m.mu.Lock()
		for i, other := range m.waiters {
			if other == w {
				m.waiters = append(m.waiters[:i], m.waiters[i+1:]...)
				break
			}
		}
		m.mu.Unlock()
		return ctx.Err()
	}
}

// Sleeping returns the number of blocked sleepers.
func (m *manualClock) Sleeping() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.waiters)
}

// AdvanceToNext moves the clock to the earliest deadline and wakes every
// sleeper due by then.
func (m *manualClock) AdvanceToNext() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.waiters) == 0 {
		return
	}

	next := m.waiters[0].at
	for _, w := range m.waiters[1:] {
		if w.at.Before(next) {
			next = w.at
		}
	}
	if next.After(m.now) {
		m.now = next
	}

	kept := m.waiters[:0]
	for _, w := range m.waiters {
		if w.at.After(m.now) {
			kept = append(kept, w)
			continue
		}
		close(w.wake)
	}
	m.waiters = kept
}

func (m *manualClock) Slept() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.slept...)
}

// mockTokenProvider implements driven.TokenProvider for testing.
type mockTokenProvider struct {
	token string
	err   error
}

func (p *mockTokenProvider) GetToken(_ context.Context) (string, error) {
	return p.token, p.err
}

func (p *mockTokenProvider) AuthMethod() domain.AuthMethod {
	return domain.AuthMethodPAT
}

func (p *mockTokenProvider) IsAuthenticated() bool {
	return p.token != ""
}

// newTestClient starts a server for handler and returns a client bound to it
// with a fake clock.
func newTestClient(t *testing.T, handler http.HandlerFunc, mutate func(*Config)) (*Client, *fakeClock) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	clk := newFakeClock()
	cfg := DefaultConfig()
	cfg.Endpoints.BaseURL = srv.URL
	if mutate != nil {
		mutate(cfg)
	}

	client, err := NewClient(nil, cfg,
		WithHTTPClient(srv.Client()),
		WithRateLimiter(NewRateLimiter(
			WithSafetyMargin(cfg.SafetyMargin),
			WithMaxWait(cfg.MaxWait),
			WithClock(clk.Now, clk.Sleep),
		)),
	)
	require.NoError(t, err)
	return client, clk
}
