// Package service exposes the matching surface: ranked recommendations,
// single-pair scores, proposal drafts, analytics, and network status.
package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/vietddude/matchboard/internal/core/domain"
	"github.com/vietddude/matchboard/internal/datastore"
	"github.com/vietddude/matchboard/internal/matching/analytics"
	"github.com/vietddude/matchboard/internal/matching/proposal"
	"github.com/vietddude/matchboard/internal/matching/ranker"
	"github.com/vietddude/matchboard/internal/matching/scorer"
	"github.com/vietddude/matchboard/internal/metrics"
	"github.com/vietddude/matchboard/internal/resilience/connectivity"
	"github.com/vietddude/matchboard/internal/resilience/fetch"
)

// Logical cache keys for resilient reads.
const (
	keyActiveCampaigns  = "active_campaigns"
	keyAllCampaigns     = "all_campaigns"
	keyInfluencerPrefix = "influencer_profile:"
)

func influencerKey(id string) string {
	return keyInfluencerPrefix + id
}

// RecommendationSet is an ordered recommendation list plus an explicit
// degradation flag. CachedAt is zero for fully live responses.
type RecommendationSet struct {
	Results  []domain.MatchResult `json:"results"`
	Degraded bool                 `json:"degraded"`
	Reason   string               `json:"reason,omitempty"`
	CachedAt time.Time            `json:"cached_at,omitzero"`
}

// MatchService wires the pure matching computations to the resilient
// retrieval layer.
type MatchService struct {
	store     datastore.DataStore
	fetcher   *fetch.Fetcher
	monitor   *connectivity.Monitor
	analytics *analytics.Aggregator
}

func NewMatchService(store datastore.DataStore, fetcher *fetch.Fetcher, monitor *connectivity.Monitor) *MatchService {
	return &MatchService{
		store:     store,
		fetcher:   fetcher,
		monitor:   monitor,
		analytics: analytics.NewAggregator(store, fetcher),
	}
}

// GetRecommendedCampaigns returns active campaigns ranked for the
// influencer. Network trouble degrades to cached data instead of
// failing; application errors (unknown influencer, bad request)
// propagate.
func (s *MatchService) GetRecommendedCampaigns(ctx context.Context, influencerID string) (*RecommendationSet, error) {
	inf, profileRes, err := s.loadInfluencer(ctx, influencerID)
	if err != nil {
		return nil, err
	}

	campRes, err := fetch.Do(ctx, s.fetcher, keyActiveCampaigns, []domain.CampaignListing(nil),
		func(ctx context.Context) ([]domain.CampaignListing, error) {
			return s.store.QueryCampaigns(ctx, datastore.CampaignFilter{Status: domain.CampaignStatusActive})
		})
	if err != nil {
		return nil, err
	}

	results := ranker.Recommend(campRes.Value, inf)
	for _, r := range results {
		metrics.MatchScoreDistribution.Observe(float64(r.Score))
	}

	set := &RecommendationSet{Results: results}
	set.Degraded, set.Reason, set.CachedAt = mergeDegradation(profileRes.Degraded, profileRes.Reason, profileRes.CachedAt, campRes.Degraded, campRes.Reason, campRes.CachedAt)

	metrics.RecommendationsServedTotal.WithLabelValues(strconv.FormatBool(set.Degraded)).Inc()
	return set, nil
}

// GetMatchScore computes the score for one campaign/influencer pair.
// Unlike the ranked list, this works for any campaign status and
// exercises the partial follower credit.
func (s *MatchService) GetMatchScore(ctx context.Context, campaignID, influencerID string) (*domain.MatchResult, error) {
	c, err := s.findCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	inf, _, err := s.loadInfluencer(ctx, influencerID)
	if err != nil {
		return nil, err
	}

	result := scorer.Score(c, inf)
	metrics.MatchScoreDistribution.Observe(float64(result.Score))
	return &result, nil
}

// DraftProposal drafts a proposal for one campaign/influencer pair.
func (s *MatchService) DraftProposal(ctx context.Context, campaignID, influencerID string) (*domain.Proposal, error) {
	c, err := s.findCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	inf, _, err := s.loadInfluencer(ctx, influencerID)
	if err != nil {
		return nil, err
	}
	return proposal.Draft(c, inf), nil
}

// CampaignAnalytics returns the reporting rollup.
func (s *MatchService) CampaignAnalytics(ctx context.Context) (analytics.Report, error) {
	return s.analytics.CampaignReport(ctx)
}

// NetworkStatus returns the latest connectivity state.
func (s *MatchService) NetworkStatus() domain.NetworkState {
	return s.monitor.State()
}

// RefreshNetworkStatus re-probes the datastore endpoint on demand.
func (s *MatchService) RefreshNetworkStatus(ctx context.Context) domain.NetworkState {
	return s.monitor.Refresh(ctx)
}

// SubscribeNetworkStatus registers for connectivity transitions and
// returns an unsubscribe func.
func (s *MatchService) SubscribeNetworkStatus(fn connectivity.Subscriber) func() {
	return s.monitor.Subscribe(fn)
}

// loadInfluencer reads a profile through the resilient fetch layer. A
// degraded read with nothing cached yields a not-found style error:
// there is no meaningful fallback for a missing profile.
func (s *MatchService) loadInfluencer(ctx context.Context, id string) (*domain.InfluencerCandidate, fetch.Result[*domain.InfluencerCandidate], error) {
	res, err := fetch.Do(ctx, s.fetcher, influencerKey(id), (*domain.InfluencerCandidate)(nil),
		func(ctx context.Context) (*domain.InfluencerCandidate, error) {
			return s.store.GetInfluencer(ctx, id)
		})
	if err != nil {
		return nil, res, err
	}
	if res.Value == nil {
		return nil, res, fmt.Errorf("influencer %s unavailable: %w", id, datastore.ErrNotFound)
	}
	return res.Value, res, nil
}

// findCampaign locates one campaign through the resilient fetch layer,
// querying the full set so non-active campaigns resolve too.
func (s *MatchService) findCampaign(ctx context.Context, id string) (*domain.CampaignListing, error) {
	res, err := fetch.Do(ctx, s.fetcher, keyAllCampaigns, []domain.CampaignListing(nil),
		func(ctx context.Context) ([]domain.CampaignListing, error) {
			return s.store.QueryCampaigns(ctx, datastore.CampaignFilter{})
		})
	if err != nil {
		return nil, err
	}
	for i := range res.Value {
		if res.Value[i].ID == id {
			return &res.Value[i], nil
		}
	}
	return nil, fmt.Errorf("campaign %s: %w", id, datastore.ErrNotFound)
}

func mergeDegradation(aDeg bool, aReason string, aAt time.Time, bDeg bool, bReason string, bAt time.Time) (bool, string, time.Time) {
	if aDeg {
		return true, aReason, aAt
	}
	if bDeg {
		return true, bReason, bAt
	}
	return false, "", time.Time{}
}
