package scorer

import (
	"testing"

	"github.com/vietddude/matchboard/internal/core/domain"
)

func TestScore_WorkedExample(t *testing.T) {
	c := &domain.CampaignListing{
		ID:              "c1",
		Category:        "Beauty",
		MinFollowers:    10000,
		TargetLanguages: []string{"en", "ko"},
	}
	inf := &domain.InfluencerCandidate{
		ID:                "i1",
		TotalFollowers:    15000,
		AvgEngagementRate: 5,
		Languages:         []string{"en"},
		ContentCategories: []string{"Beauty/Skincare"},
	}

	res := Score(c, inf)

	if res.Breakdown.FollowerScore != 30 {
		t.Errorf("follower score = %v, want 30", res.Breakdown.FollowerScore)
	}
	if res.Breakdown.LanguageScore != 12.5 {
		t.Errorf("language score = %v, want 12.5", res.Breakdown.LanguageScore)
	}
	if res.Breakdown.CategoryScore != 25 {
		t.Errorf("category score = %v, want 25", res.Breakdown.CategoryScore)
	}
	if res.Breakdown.EngagementScore != 10 {
		t.Errorf("engagement score = %v, want 10", res.Breakdown.EngagementScore)
	}
	if res.Score != 78 {
		t.Errorf("total score = %d, want 78", res.Score)
	}
}

func TestScore_FollowerComponent(t *testing.T) {
	tests := []struct {
		name         string
		minFollowers int64
		followers    int64
		want         float64
	}{
		{"meets minimum exactly", 10000, 10000, 30},
		{"above minimum", 10000, 50000, 30},
		{"no minimum always full", 0, 0, 30},
		{"no minimum with followers", 0, 123, 30},
		{"half of minimum", 10000, 5000, 15},
		{"zero followers below minimum", 10000, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &domain.CampaignListing{MinFollowers: tt.minFollowers}
			inf := &domain.InfluencerCandidate{TotalFollowers: tt.followers}
			if got := followerScore(c, inf); got != tt.want {
				t.Errorf("followerScore = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScore_LanguageComponent(t *testing.T) {
	tests := []struct {
		name    string
		targets []string
		spoken  []string
		want    float64
	}{
		{"full overlap", []string{"en"}, []string{"en"}, 25},
		{"half overlap", []string{"en", "ko"}, []string{"en"}, 12.5},
		{"no overlap", []string{"ja"}, []string{"en"}, 0},
		{"case insensitive", []string{"EN"}, []string{"en"}, 25},
		{"empty targets score zero", nil, []string{"en"}, emptyTargetLanguageScore},
		{"influencer speaks nothing", []string{"en"}, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &domain.CampaignListing{TargetLanguages: tt.targets}
			inf := &domain.InfluencerCandidate{Languages: tt.spoken}
			if got := languageScore(c, inf); got != tt.want {
				t.Errorf("languageScore = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScore_CategoryComponent(t *testing.T) {
	tests := []struct {
		name       string
		campaign   string
		categories []string
		want       float64
	}{
		{"substring match", "Beauty", []string{"Beauty/Skincare"}, 25},
		{"exact match", "Tech", []string{"Tech"}, 25},
		{"case insensitive", "beauty", []string{"BEAUTY"}, 25},
		{"no match", "Fitness", []string{"Gaming"}, 0},
		{"empty campaign category", "", []string{"Gaming"}, 0},
		{"no influencer categories", "Gaming", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &domain.CampaignListing{Category: tt.campaign}
			inf := &domain.InfluencerCandidate{ContentCategories: tt.categories}
			if got := categoryScore(c, inf); got != tt.want {
				t.Errorf("categoryScore = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScore_EngagementSaturates(t *testing.T) {
	inf := &domain.InfluencerCandidate{AvgEngagementRate: 50}
	if got := engagementScore(inf); got != 20 {
		t.Errorf("engagementScore = %v, want 20", got)
	}

	inf.AvgEngagementRate = -3
	if got := engagementScore(inf); got != 0 {
		t.Errorf("engagementScore for negative rate = %v, want 0", got)
	}
}

func TestScore_Bounds(t *testing.T) {
	campaigns := []*domain.CampaignListing{
		{},
		{MinFollowers: 1, TargetLanguages: []string{"en"}, Category: "x"},
		{MinFollowers: 1000000, TargetLanguages: []string{"en", "ko", "ja"}, Category: "Beauty"},
	}
	influencers := []*domain.InfluencerCandidate{
		{},
		{TotalFollowers: 1, AvgEngagementRate: 100, Languages: []string{"en"}, ContentCategories: []string{"x"}},
		{TotalFollowers: 999999999, AvgEngagementRate: 0.1, Languages: []string{"ko", "ja"}, ContentCategories: []string{"Beauty"}},
	}

	for _, c := range campaigns {
		for _, inf := range influencers {
			res := Score(c, inf)
			if res.Score < 0 || res.Score > 100 {
				t.Errorf("score %d out of [0,100] for campaign %+v influencer %+v", res.Score, c, inf)
			}
		}
	}
}
