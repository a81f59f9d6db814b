// Package connectivity tracks whether the process is online and whether
// the datastore endpoint is reachable, and publishes transitions to
// subscribers.
package connectivity

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/vietddude/matchboard/internal/core/domain"
	"github.com/vietddude/matchboard/internal/metrics"
)

// DefaultProbeTimeout bounds a single reachability probe.
const DefaultProbeTimeout = 5 * time.Second

// Subscriber receives network state transitions. The current state is
// delivered synchronously on subscription, then every transition after.
type Subscriber func(domain.NetworkState)

// Monitor owns the process-wide NetworkState. One instance per process,
// passed explicitly to whoever needs it. State changes only through the
// online/offline signals and probe completions; there is no timer-driven
// polling, probes run on demand.
type Monitor struct {
	prober       Prober
	probeTimeout time.Duration

	mu      sync.RWMutex
	state   domain.NetworkState
	subs    map[int]Subscriber
	nextSub int
}

// NewMonitor creates a monitor that starts online but unverified; call
// Refresh to run the first probe.
func NewMonitor(prober Prober) *Monitor {
	return &Monitor{
		prober:       prober,
		probeTimeout: DefaultProbeTimeout,
		state:        domain.NetworkState{IsOnline: true},
		subs:         make(map[int]Subscriber),
	}
}

// State returns the latest published state.
func (m *Monitor) State() domain.NetworkState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// SetOffline handles the platform offline signal. Offline implies
// unreachable; no probe is attempted.
func (m *Monitor) SetOffline() {
	slog.Info("Network signal", "online", false)
	m.transition(func(s *domain.NetworkState) {
		s.IsOnline = false
		s.IsServiceReachable = false
	})
}

// SetOnline handles the platform online signal and triggers an
// immediate reachability probe.
func (m *Monitor) SetOnline(ctx context.Context) {
	slog.Info("Network signal", "online", true)
	m.transition(func(s *domain.NetworkState) {
		s.IsOnline = true
	})
	m.Refresh(ctx)
}

// Refresh probes the datastore endpoint and publishes the result. When
// the monitor is offline the probe is skipped and the current state
// returned unchanged.
func (m *Monitor) Refresh(ctx context.Context) domain.NetworkState {
	if !m.State().IsOnline {
		return m.State()
	}

	probeCtx, cancel := context.WithTimeout(ctx, m.probeTimeout)
	defer cancel()

	err := m.prober.Probe(probeCtx)
	reachable := err == nil

	if reachable {
		metrics.ProbesTotal.WithLabelValues("ok").Inc()
	} else {
		metrics.ProbesTotal.WithLabelValues("failed").Inc()
		slog.Warn("Reachability probe failed", "error", err)
	}

	return m.transition(func(s *domain.NetworkState) {
		s.IsServiceReachable = reachable
		s.LastCheckedAt = time.Now()
	})
}

// Subscribe registers a subscriber, delivers the current state to it
// synchronously, and returns an unsubscribe func.
func (m *Monitor) Subscribe(fn Subscriber) func() {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	state := m.state
	m.mu.Unlock()

	fn(state)

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// transition applies mutate under the lock and pushes the new state to
// subscribers when the connectivity flags changed. Subscribers are
// invoked outside the lock so they may call back into the monitor.
func (m *Monitor) transition(mutate func(*domain.NetworkState)) domain.NetworkState {
	m.mu.Lock()
	before := m.state
	mutate(&m.state)
	after := m.state
	changed := before.IsOnline != after.IsOnline ||
		before.IsServiceReachable != after.IsServiceReachable
	var subs []Subscriber
	if changed {
		subs = make([]Subscriber, 0, len(m.subs))
		for _, fn := range m.subs {
			subs = append(subs, fn)
		}
	}
	m.mu.Unlock()

	for _, fn := range subs {
		fn(after)
	}
	return after
}
