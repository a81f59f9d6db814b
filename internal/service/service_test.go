package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vietddude/matchboard/internal/core/domain"
	"github.com/vietddude/matchboard/internal/datastore"
	"github.com/vietddude/matchboard/internal/resilience/cache"
	"github.com/vietddude/matchboard/internal/resilience/connectivity"
	"github.com/vietddude/matchboard/internal/resilience/fetch"
)

// mockStore counts calls so tests can assert the fetch layer's
// behavior around it.
type mockStore struct {
	campaigns   []domain.CampaignListing
	influencers map[string]domain.InfluencerCandidate

	queryCalls int
	getCalls   int
	queryErr   error
}

func (m *mockStore) QueryCampaigns(ctx context.Context, filter datastore.CampaignFilter) ([]domain.CampaignListing, error) {
	m.queryCalls++
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	if filter.Status == "" {
		return m.campaigns, nil
	}
	var out []domain.CampaignListing
	for _, c := range m.campaigns {
		if c.Status == filter.Status {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockStore) GetInfluencer(ctx context.Context, id string) (*domain.InfluencerCandidate, error) {
	m.getCalls++
	inf, ok := m.influencers[id]
	if !ok {
		return nil, datastore.ErrNotFound
	}
	return &inf, nil
}

var fastRetry = fetch.Config{MaxAttempts: 3, InitialDelay: time.Microsecond, BackoffMultiple: 2.0}

func newTestService(store *mockStore) (*MatchService, *connectivity.Monitor) {
	monitor := connectivity.NewMonitor(connectivity.StaticProber{})
	fetcher := fetch.NewFetcher(cache.NewMemoryStore(), monitor, fastRetry)
	return NewMatchService(store, fetcher, monitor), monitor
}

func fixtureStore() *mockStore {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	return &mockStore{
		campaigns: []domain.CampaignListing{
			{ID: "beauty", Status: domain.CampaignStatusActive, Category: "Beauty",
				MinFollowers: 10000, TargetLanguages: []string{"en", "ko"},
				BudgetMin: 1000, BudgetMax: 2000, CreatedAt: base},
			{ID: "tech", Status: domain.CampaignStatusActive, Category: "Tech",
				MinFollowers: 1000, TargetLanguages: []string{"ja"}, CreatedAt: base},
			{ID: "huge", Status: domain.CampaignStatusActive, MinFollowers: 1000000, CreatedAt: base},
			{ID: "paused", Status: domain.CampaignStatusPaused, MinFollowers: 0, CreatedAt: base},
		},
		influencers: map[string]domain.InfluencerCandidate{
			"dana": {ID: "dana", DisplayName: "Dana", TotalFollowers: 15000,
				AvgEngagementRate: 5, Languages: []string{"en"},
				ContentCategories: []string{"Beauty/Skincare"}},
		},
	}
}

func TestGetRecommendedCampaigns_RanksAndFilters(t *testing.T) {
	svc, _ := newTestService(fixtureStore())

	set, err := svc.GetRecommendedCampaigns(context.Background(), "dana")
	if err != nil {
		t.Fatalf("GetRecommendedCampaigns failed: %v", err)
	}
	if set.Degraded {
		t.Errorf("live response marked degraded: %+v", set)
	}
	if len(set.Results) != 2 {
		t.Fatalf("got %d results, want 2 (paused and out-of-reach filtered)", len(set.Results))
	}
	if set.Results[0].CampaignID != "beauty" {
		t.Errorf("top result = %s, want beauty", set.Results[0].CampaignID)
	}
	if set.Results[0].Score != 78 {
		t.Errorf("top score = %d, want 78", set.Results[0].Score)
	}
}

func TestGetRecommendedCampaigns_OfflineServesCache(t *testing.T) {
	store := fixtureStore()
	svc, monitor := newTestService(store)
	ctx := context.Background()

	// Warm the cache with a live round.
	if _, err := svc.GetRecommendedCampaigns(ctx, "dana"); err != nil {
		t.Fatalf("warmup failed: %v", err)
	}
	callsAfterWarmup := store.queryCalls + store.getCalls

	monitor.SetOffline()

	set, err := svc.GetRecommendedCampaigns(ctx, "dana")
	if err != nil {
		t.Fatalf("offline recommendation failed: %v", err)
	}
	if !set.Degraded || set.Reason != fetch.ReasonOffline {
		t.Errorf("set = degraded:%v reason:%q, want offline degradation", set.Degraded, set.Reason)
	}
	if set.CachedAt.IsZero() {
		t.Error("degraded response missing CachedAt")
	}
	if len(set.Results) != 2 {
		t.Errorf("got %d cached results, want 2", len(set.Results))
	}
	if got := store.queryCalls + store.getCalls; got != callsAfterWarmup {
		t.Errorf("datastore touched %d times while offline", got-callsAfterWarmup)
	}
}

func TestGetRecommendedCampaigns_NetworkFailureDegrades(t *testing.T) {
	store := fixtureStore()
	svc, _ := newTestService(store)
	ctx := context.Background()

	if _, err := svc.GetRecommendedCampaigns(ctx, "dana"); err != nil {
		t.Fatalf("warmup failed: %v", err)
	}

	store.queryErr = errors.New("connection refused")

	set, err := svc.GetRecommendedCampaigns(ctx, "dana")
	if err != nil {
		t.Fatalf("degraded recommendation failed: %v", err)
	}
	if !set.Degraded || set.Reason != fetch.ReasonNetwork {
		t.Errorf("set = degraded:%v reason:%q, want network degradation", set.Degraded, set.Reason)
	}
	if len(set.Results) != 2 {
		t.Errorf("got %d cached results, want 2", len(set.Results))
	}
}

func TestGetRecommendedCampaigns_UnknownInfluencer(t *testing.T) {
	store := fixtureStore()
	svc, _ := newTestService(store)

	_, err := svc.GetRecommendedCampaigns(context.Background(), "ghost")
	if !errors.Is(err, datastore.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if store.getCalls != 1 {
		t.Errorf("GetInfluencer called %d times, want 1 (application errors are not retried)", store.getCalls)
	}
}

func TestGetMatchScore_PartialFollowerCredit(t *testing.T) {
	store := fixtureStore()
	store.influencers["small"] = domain.InfluencerCandidate{
		ID: "small", TotalFollowers: 5000,
	}
	svc, _ := newTestService(store)

	// Below the 10000 minimum: excluded from ranked lists, but the
	// direct pair query still scores with partial credit.
	res, err := svc.GetMatchScore(context.Background(), "beauty", "small")
	if err != nil {
		t.Fatalf("GetMatchScore failed: %v", err)
	}
	if res.Breakdown.FollowerScore != 15 {
		t.Errorf("follower component = %v, want 15", res.Breakdown.FollowerScore)
	}
}

func TestGetMatchScore_NonActiveCampaignResolves(t *testing.T) {
	svc, _ := newTestService(fixtureStore())

	res, err := svc.GetMatchScore(context.Background(), "paused", "dana")
	if err != nil {
		t.Fatalf("GetMatchScore failed for paused campaign: %v", err)
	}
	if res.Score < 0 || res.Score > 100 {
		t.Errorf("score = %d", res.Score)
	}
}

func TestDraftProposal(t *testing.T) {
	svc, _ := newTestService(fixtureStore())

	p, err := svc.DraftProposal(context.Background(), "beauty", "dana")
	if err != nil {
		t.Fatalf("DraftProposal failed: %v", err)
	}
	if p.SuggestedBudget != 1500 {
		t.Errorf("SuggestedBudget = %d, want 1500", p.SuggestedBudget)
	}
	if p.Text == "" || p.SuggestedTimeline == "" {
		t.Errorf("proposal incomplete: %+v", p)
	}
}

func TestCampaignAnalytics(t *testing.T) {
	svc, _ := newTestService(fixtureStore())

	report, err := svc.CampaignAnalytics(context.Background())
	if err != nil {
		t.Fatalf("CampaignAnalytics failed: %v", err)
	}
	if report.TotalCampaigns != 4 {
		t.Errorf("TotalCampaigns = %d, want 4", report.TotalCampaigns)
	}
	if report.ByStatus[domain.CampaignStatusActive] != 3 {
		t.Errorf("active count = %d, want 3", report.ByStatus[domain.CampaignStatusActive])
	}
	// Active midpoints: 1500 + 0 + 0.
	if report.ActiveBudgetTotal != 1500 {
		t.Errorf("ActiveBudgetTotal = %d, want 1500", report.ActiveBudgetTotal)
	}
}

func TestNetworkStatusSurface(t *testing.T) {
	svc, monitor := newTestService(fixtureStore())

	var transitions []domain.NetworkState
	unsub := svc.SubscribeNetworkStatus(func(s domain.NetworkState) {
		transitions = append(transitions, s)
	})
	defer unsub()

	monitor.SetOffline()

	if got := svc.NetworkStatus(); got.IsOnline {
		t.Errorf("NetworkStatus = %+v after offline", got)
	}
	if len(transitions) != 2 {
		t.Errorf("got %d deliveries, want initial + offline", len(transitions))
	}
}
