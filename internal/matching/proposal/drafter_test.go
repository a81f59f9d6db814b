package proposal

import (
	"strings"
	"testing"

	"github.com/vietddude/matchboard/internal/core/domain"
)

func TestDraft_BudgetIsFlooredMidpoint(t *testing.T) {
	tests := []struct {
		name     string
		min, max int64
		want     int64
	}{
		{"even midpoint", 1000, 3000, 2000},
		{"odd midpoint floors", 1000, 1001, 1000},
		{"missing bounds default to zero", 0, 0, 0},
		{"only max set", 0, 5000, 2500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &domain.CampaignListing{ID: "c1", BudgetMin: tt.min, BudgetMax: tt.max}
			p := Draft(c, &domain.InfluencerCandidate{ID: "i1"})
			if p.SuggestedBudget != tt.want {
				t.Errorf("SuggestedBudget = %d, want %d", p.SuggestedBudget, tt.want)
			}
		})
	}
}

func TestDraft_TextSubstitution(t *testing.T) {
	c := &domain.CampaignListing{
		ID:        "c1",
		BrandName: "GlowCo",
		Currency:  "USD",
		BudgetMin: 1000,
		BudgetMax: 2000,
	}
	inf := &domain.InfluencerCandidate{
		ID:                "i1",
		DisplayName:       "Dana",
		TotalFollowers:    15000,
		AvgEngagementRate: 4.5,
		ContentCategories: []string{"Beauty", "Lifestyle"},
	}

	p := Draft(c, inf)

	for _, want := range []string{"GlowCo", "Dana", "15000", "4.5%", "Beauty, Lifestyle", "USD 1500", SuggestedTimeline} {
		if !strings.Contains(p.Text, want) {
			t.Errorf("proposal text missing %q:\n%s", want, p.Text)
		}
	}
	if p.SuggestedTimeline != SuggestedTimeline {
		t.Errorf("SuggestedTimeline = %q", p.SuggestedTimeline)
	}
}

func TestDraft_Deterministic(t *testing.T) {
	c := &domain.CampaignListing{ID: "c1", BrandName: "GlowCo"}
	inf := &domain.InfluencerCandidate{ID: "i1", DisplayName: "Dana"}

	a := Draft(c, inf)
	b := Draft(c, inf)
	if a.Text != b.Text || a.SuggestedBudget != b.SuggestedBudget {
		t.Error("Draft is not deterministic for identical inputs")
	}
}
