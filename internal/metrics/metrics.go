package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type passStats struct {
	passes         int
	eventsUpdated  int
	eventFailures  int
	persists       int
	persistErrors  int
	publishErrors  int
	lastPassLength time.Duration
}

// Recorder captures lightweight, in-memory metrics and forwards them to OTel instruments when configured.
type Recorder struct {
	mu    sync.Mutex
	stats map[string]*providerStats
	pass  passStats
	http  map[string]int
	otel  *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*providerStats),
		http:  make(map[string]int),
		otel:  otel,
	}
}

// RecordProviderAttempt increments counters for a provider call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider, operation string, duration time.Duration, err error, errKind string) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, operation, duration, errKind)
	}
}

// RecordRateLimit tracks that a provider response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(provider, retryAfter)
	}
}

// RecordPass tracks one poller sweep.
func (r *Recorder) RecordPass(duration time.Duration, updated, failed int) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.pass.passes++
	r.pass.eventsUpdated += updated
	r.pass.eventFailures += failed
	r.pass.lastPassLength = duration
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordPass(duration, updated, failed)
	}
}

// RecordPersist tracks a dataset write.
func (r *Recorder) RecordPersist(duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.pass.persists++
	if err != nil {
		r.pass.persistErrors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordPersist(duration, err)
	}
}

// RecordPublish tracks a change publication attempt.
func (r *Recorder) RecordPublish(err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	if err != nil {
		r.pass.publishErrors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordPublish(err)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.http[path]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordHTTPRequest(method, path, status, duration)
	}
}

// HTTPRequests returns how many requests were recorded for a normalized path.
func (r *Recorder) HTTPRequests(path string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.http[path]
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// RateLimitHits returns the number of rate limit events seen for a provider.
func (r *Recorder) RateLimitHits(provider string) int {
	return r.Snapshot(provider).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for a provider.
func (r *Recorder) LastRetryAfter(provider string) time.Duration {
	return r.Snapshot(provider).LastRetryAfter
}

// LastCallLatency returns the last recorded latency for a provider call.
func (r *Recorder) LastCallLatency(provider string) time.Duration {
	return r.Snapshot(provider).LastCallLatency
}

// Snapshot returns a copy of the current stats for the provider.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// PassSnapshot summarizes poller activity.
type PassSnapshot struct {
	Passes         int
	EventsUpdated  int
	EventFailures  int
	Persists       int
	PersistErrors  int
	PublishErrors  int
	LastPassLength time.Duration
}

// Passes returns a copy of the poller counters.
func (r *Recorder) Passes() PassSnapshot {
	if r == nil {
		return PassSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return PassSnapshot{
		Passes:         r.pass.passes,
		EventsUpdated:  r.pass.eventsUpdated,
		EventFailures:  r.pass.eventFailures,
		Persists:       r.pass.persists,
		PersistErrors:  r.pass.persistErrors,
		PublishErrors:  r.pass.publishErrors,
		LastPassLength: r.pass.lastPassLength,
	}
}

// ensureStats must be called with r.mu held.
func (r *Recorder) ensureStats(provider string) *providerStats {
	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}
