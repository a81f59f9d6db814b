// Package memory provides an in-memory DataStore for development and
// tests.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/vietddude/matchboard/internal/core/domain"
	"github.com/vietddude/matchboard/internal/datastore"
)

type Store struct {
	mu          sync.RWMutex
	campaigns   map[string]domain.CampaignListing
	influencers map[string]domain.InfluencerCandidate
}

func NewStore() *Store {
	return &Store{
		campaigns:   make(map[string]domain.CampaignListing),
		influencers: make(map[string]domain.InfluencerCandidate),
	}
}

// SeedCampaigns loads campaigns, overwriting existing IDs.
func (s *Store) SeedCampaigns(campaigns []domain.CampaignListing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range campaigns {
		s.campaigns[c.ID] = c
	}
}

// SeedInfluencers loads influencer profiles, overwriting existing IDs.
func (s *Store) SeedInfluencers(influencers []domain.InfluencerCandidate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, inf := range influencers {
		s.influencers[inf.ID] = inf
	}
}

func (s *Store) QueryCampaigns(ctx context.Context, filter datastore.CampaignFilter) ([]domain.CampaignListing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.CampaignListing
	for _, c := range s.campaigns {
		if matches(c, filter) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Store) GetInfluencer(ctx context.Context, id string) (*domain.InfluencerCandidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inf, ok := s.influencers[id]
	if !ok {
		return nil, datastore.ErrNotFound
	}
	return &inf, nil
}

func matches(c domain.CampaignListing, f datastore.CampaignFilter) bool {
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.Category != "" && !strings.EqualFold(c.Category, f.Category) {
		return false
	}
	// Budget range overlap
	if f.MinBudget > 0 && c.BudgetMax < f.MinBudget {
		return false
	}
	if f.MaxBudget > 0 && c.BudgetMin > f.MaxBudget {
		return false
	}
	// MinFollowers filters to campaigns the given follower count qualifies for
	if f.MinFollowers > 0 && c.MinFollowers > f.MinFollowers {
		return false
	}
	if len(f.TargetLanguages) > 0 && !intersects(c.TargetLanguages, f.TargetLanguages) {
		return false
	}
	if len(f.TargetRegions) > 0 && !intersects(c.TargetRegions, f.TargetRegions) {
		return false
	}
	return true
}

func intersects(a, b []string) bool {
	set := make(map[string]struct{}, len(a))
	for _, v := range a {
		set[strings.ToLower(v)] = struct{}{}
	}
	for _, v := range b {
		if _, ok := set[strings.ToLower(v)]; ok {
			return true
		}
	}
	return false
}
