// Package fetch wraps datastore reads with bounded exponential-backoff
// retry and offline-cache fallback. Discovery reads never hard-fail on
// network trouble: the caller always gets a value plus a degradation
// flag.
package fetch

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"time"

	"github.com/vietddude/matchboard/internal/core/domain"
	"github.com/vietddude/matchboard/internal/metrics"
	"github.com/vietddude/matchboard/internal/resilience/cache"
)

// Degradation reasons reported to callers.
const (
	ReasonOffline = "offline"
	ReasonNetwork = "network"
)

// Config defines retry behavior.
type Config struct {
	MaxAttempts     int
	InitialDelay    time.Duration
	BackoffMultiple float64
}

// DefaultConfig matches the documented retry ladder: 3 attempts total
// with 1s, 2s, 4s between attempts.
var DefaultConfig = Config{
	MaxAttempts:     3,
	InitialDelay:    1 * time.Second,
	BackoffMultiple: 2.0,
}

// NetworkStater reports the current connectivity view. Satisfied by
// *connectivity.Monitor.
type NetworkStater interface {
	State() domain.NetworkState
}

// Fetcher executes reads against the live datastore when possible and
// falls back to last-known-good snapshots when not.
type Fetcher struct {
	cache   cache.Store
	network NetworkStater
	cfg     Config
}

func NewFetcher(cacheStore cache.Store, network NetworkStater, cfg Config) *Fetcher {
	if cfg.MaxAttempts <= 0 {
		cfg = DefaultConfig
	}
	return &Fetcher{cache: cacheStore, network: network, cfg: cfg}
}

// Result carries the fetched (or fallback) value and how fresh it is.
// CachedAt is zero for live results.
type Result[T any] struct {
	Value    T
	Degraded bool
	Reason   string
	CachedAt time.Time
}

// Do runs op with retry and fallback under the given logical key.
//
//  1. Offline: skip the network entirely, serve cache/fallback with
//     reason "offline", no delay.
//  2. Success: snapshot the result under key, return it live.
//  3. Application-class error: propagate on the first failure, no
//     retry, no fallback substitution.
//  4. Network-class error: retry with exponential backoff; once the
//     attempt budget is spent, serve cache/fallback with reason
//     "network" — the raw error never reaches the caller on this path.
//
// Pending backoff delays abort on ctx cancellation without writing
// anything back.
func Do[T any](ctx context.Context, f *Fetcher, key string, fallback T, op func(context.Context) (T, error)) (Result[T], error) {
	var zero Result[T]

	if !f.network.State().IsOnline {
		return fromCache(ctx, f, key, fallback, ReasonOffline), nil
	}

	var lastErr error
	for attempt := 0; attempt < f.cfg.MaxAttempts; attempt++ {
		metrics.FetchAttemptsTotal.WithLabelValues(key).Inc()

		value, err := op(ctx)
		if err == nil {
			f.snapshot(ctx, key, value)
			return Result[T]{Value: value}, nil
		}
		lastErr = err

		class := Classify(err)
		metrics.FetchErrorsTotal.WithLabelValues(key, class.String()).Inc()
		if class == ClassApplication {
			return zero, err
		}

		// Caller gone: abandon instead of burning the retry budget.
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}

		if attempt == f.cfg.MaxAttempts-1 {
			break
		}

		delay := backoffDelay(attempt, f.cfg)
		slog.Debug("Retrying fetch", "key", key, "attempt", attempt+1, "delay", delay, "error", err)
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}
	}

	slog.Warn("Fetch failed after retries, serving fallback",
		"key", key, "attempts", f.cfg.MaxAttempts, "error", lastErr)
	return fromCache(ctx, f, key, fallback, ReasonNetwork), nil
}

// fromCache serves the last-known-good snapshot, or the supplied
// fallback when no snapshot exists or cannot be decoded.
func fromCache[T any](ctx context.Context, f *Fetcher, key string, fallback T, reason string) Result[T] {
	metrics.CacheFallbacksTotal.WithLabelValues(key, reason).Inc()

	entry, err := f.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("Snapshot cache read failed", "key", key, "error", err)
		return Result[T]{Value: fallback, Degraded: true, Reason: reason}
	}
	if entry == nil {
		return Result[T]{Value: fallback, Degraded: true, Reason: reason}
	}

	var value T
	if err := json.Unmarshal(entry.Value, &value); err != nil {
		slog.Warn("Snapshot cache entry corrupt", "key", key, "error", err)
		return Result[T]{Value: fallback, Degraded: true, Reason: reason}
	}
	return Result[T]{Value: value, Degraded: true, Reason: reason, CachedAt: entry.StoredAt}
}

// snapshot stores a successful result. Best effort: a cache write
// failure only costs us a future fallback, not this response.
func (f *Fetcher) snapshot(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		slog.Warn("Failed to marshal snapshot", "key", key, "error", err)
		return
	}
	if err := f.cache.Set(ctx, key, data); err != nil {
		slog.Warn("Failed to store snapshot", "key", key, "error", err)
	}
}

func backoffDelay(attempt int, cfg Config) time.Duration {
	return time.Duration(float64(cfg.InitialDelay) * math.Pow(cfg.BackoffMultiple, float64(attempt)))
}
