package connectivity

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Prober answers a single question: can the datastore endpoint be
// reached right now? Implementations must honor the context deadline.
type Prober interface {
	Probe(ctx context.Context) error
}

// ProbeFunc adapts a plain function to the Prober interface.
type ProbeFunc func(ctx context.Context) error

func (f ProbeFunc) Probe(ctx context.Context) error { return f(ctx) }

// HTTPProber checks reachability with a lightweight HEAD request to the
// datastore endpoint. Any HTTP response counts as reachable: the probe
// verifies connectivity, not application health.
type HTTPProber struct {
	endpoint   string
	httpClient *http.Client
}

func NewHTTPProber(endpoint string) *HTTPProber {
	return &HTTPProber{
		endpoint: endpoint,
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:    2,
				IdleConnTimeout: 90 * time.Second,
			},
		},
	}
}

func (p *HTTPProber) Probe(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.endpoint, nil)
	if err != nil {
		return fmt.Errorf("create probe request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("probe request: %w", err)
	}
	_ = resp.Body.Close()
	return nil
}

// Pinger matches database handles that expose PingContext, such as
// *sql.DB and *sqlx.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingProber checks reachability of a SQL-backed datastore.
type PingProber struct {
	db Pinger
}

func NewPingProber(db Pinger) *PingProber {
	return &PingProber{db: db}
}

func (p *PingProber) Probe(ctx context.Context) error {
	if err := p.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping datastore: %w", err)
	}
	return nil
}

// StaticProber always succeeds. Used with the in-memory datastore,
// which has no endpoint to lose.
type StaticProber struct{}

func (StaticProber) Probe(ctx context.Context) error { return nil }
