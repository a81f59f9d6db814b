// Package analytics rolls up campaign counts and sums for reporting.
package analytics

import (
	"context"
	"time"

	"github.com/vietddude/matchboard/internal/core/domain"
	"github.com/vietddude/matchboard/internal/datastore"
	"github.com/vietddude/matchboard/internal/resilience/fetch"
)

// Key for the cached campaign set backing reports.
const cacheKey = "campaign_analytics"

// Report is a point-in-time rollup over all campaigns. Budget figures
// use each campaign's budget-range midpoint. Degraded reports come from
// the snapshot cache; CachedAt says how old that snapshot is.
type Report struct {
	TotalCampaigns    int                           `json:"total_campaigns"`
	ByStatus          map[domain.CampaignStatus]int `json:"by_status"`
	ActiveBudgetTotal int64                         `json:"active_budget_total"`
	ActiveBudgetAvg   float64                       `json:"active_budget_avg"`
	AvgMinFollowers   float64                       `json:"avg_min_followers"`
	Degraded          bool                          `json:"degraded"`
	Reason            string                        `json:"reason,omitempty"`
	CachedAt          time.Time                     `json:"cached_at,omitzero"`
	GeneratedAt       time.Time                     `json:"generated_at"`
}

// Aggregator computes reports over resilient campaign reads.
type Aggregator struct {
	store   datastore.DataStore
	fetcher *fetch.Fetcher
}

func NewAggregator(store datastore.DataStore, fetcher *fetch.Fetcher) *Aggregator {
	return &Aggregator{store: store, fetcher: fetcher}
}

// CampaignReport rolls up counts and sums over the full campaign set.
// Served from the offline cache when the live read degrades.
func (a *Aggregator) CampaignReport(ctx context.Context) (Report, error) {
	res, err := fetch.Do(ctx, a.fetcher, cacheKey, []domain.CampaignListing(nil),
		func(ctx context.Context) ([]domain.CampaignListing, error) {
			return a.store.QueryCampaigns(ctx, datastore.CampaignFilter{})
		})
	if err != nil {
		return Report{}, err
	}

	report := Report{
		TotalCampaigns: len(res.Value),
		ByStatus:       make(map[domain.CampaignStatus]int),
		Degraded:       res.Degraded,
		Reason:         res.Reason,
		CachedAt:       res.CachedAt,
		GeneratedAt:    time.Now(),
	}

	var (
		activeCount   int
		followerTotal int64
	)
	for _, c := range res.Value {
		report.ByStatus[c.Status]++
		if c.Status != domain.CampaignStatusActive {
			continue
		}
		activeCount++
		report.ActiveBudgetTotal += (c.BudgetMin + c.BudgetMax) / 2
		followerTotal += c.MinFollowers
	}
	if activeCount > 0 {
		report.ActiveBudgetAvg = float64(report.ActiveBudgetTotal) / float64(activeCount)
		report.AvgMinFollowers = float64(followerTotal) / float64(activeCount)
	}

	return report, nil
}
