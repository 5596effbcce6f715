// Package metrics provides Prometheus metrics for i18nscout.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// API client metrics
	apiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "i18nscout_api_requests_total",
			Help: "Total number of platform API requests by status code",
		},
		[]string{"status"},
	)

	apiRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "i18nscout_api_request_duration_seconds",
			Help:    "Platform API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	rateLimitWaitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "i18nscout_rate_limit_waits_total",
			Help: "Number of times a request waited for the rate limit to reset",
		},
	)

	rateLimitWaitSeconds = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "i18nscout_rate_limit_wait_seconds_total",
			Help: "Total time spent waiting for rate limit resets",
		},
	)

	rateLimitRemaining = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "i18nscout_rate_limit_remaining",
			Help: "Remaining requests in the current rate limit window",
		},
	)

	// Scan metrics
	repositoriesScanned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "i18nscout_repositories_scanned_total",
			Help: "Repositories scanned by outcome",
		},
		[]string{"outcome"},
	)

	pathCandidatesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "i18nscout_path_candidates_total",
			Help: "Files accepted by the path classifier",
		},
	)

	contentVerdictsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "i18nscout_content_verdicts_total",
			Help: "Content classification outcomes",
		},
		[]string{"verdict"},
	)
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordAPIRequest records a completed platform API request.
func RecordAPIRequest(status int, duration time.Duration) {
	apiRequestsTotal.WithLabelValues(strconv.Itoa(status)).Inc()
	apiRequestDuration.Observe(duration.Seconds())
}

// RecordRateLimitWait records a wait for the rate limit window to reset.
func RecordRateLimitWait(wait time.Duration) {
	rateLimitWaitsTotal.Inc()
	rateLimitWaitSeconds.Add(wait.Seconds())
}

// SetRateLimitRemaining sets the last reported remaining quota.
func SetRateLimitRemaining(remaining int) {
	rateLimitRemaining.Set(float64(remaining))
}

// RecordRepository records a scanned repository.
func RecordRepository(success bool) {
	outcome := "success"
	if !success {
		outcome = "error"
	}
	repositoriesScanned.WithLabelValues(outcome).Inc()
}

// RecordPathCandidate records a file that passed the path classifier.
func RecordPathCandidate() {
	pathCandidatesTotal.Inc()
}

// RecordVerdict records a content classification outcome.
func RecordVerdict(verdict string) {
	contentVerdictsTotal.WithLabelValues(verdict).Inc()
}

// Serve exposes /metrics on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
