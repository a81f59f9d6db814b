// Package scorer computes heuristic campaign/influencer match scores.
package scorer

import (
	"math"
	"strings"

	"github.com/vietddude/matchboard/internal/core/domain"
)

// Component weights. They sum to 100 so the final score lands in [0,100].
const (
	FollowerWeight   = 30.0
	LanguageWeight   = 25.0
	CategoryWeight   = 25.0
	EngagementWeight = 20.0
)

// emptyTargetLanguageScore is awarded when a campaign targets no
// languages at all. Untargeted campaigns currently rank low; flip this
// to LanguageWeight to make them match everyone instead.
const emptyTargetLanguageScore = 0.0

// Score rates how well an influencer fits a campaign on a 0-100 scale.
// Pure and deterministic: missing optional fields count as empty sets or
// zero, so partially populated profiles still score without error.
func Score(c *domain.CampaignListing, inf *domain.InfluencerCandidate) domain.MatchResult {
	b := domain.ScoreBreakdown{
		FollowerScore:   followerScore(c, inf),
		LanguageScore:   languageScore(c, inf),
		CategoryScore:   categoryScore(c, inf),
		EngagementScore: engagementScore(inf),
	}

	// Sum first, round half-up once at the end, then clamp.
	total := b.FollowerScore + b.LanguageScore + b.CategoryScore + b.EngagementScore
	score := int(math.Floor(total + 0.5))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return domain.MatchResult{
		CampaignID:   c.ID,
		InfluencerID: inf.ID,
		Score:        score,
		Breakdown:    b,
	}
}

// followerScore awards full credit when the influencer meets the
// campaign minimum, proportional credit below it. A zero minimum means
// "no requirement" and auto-satisfies (also avoids dividing by zero).
func followerScore(c *domain.CampaignListing, inf *domain.InfluencerCandidate) float64 {
	if c.MinFollowers <= 0 {
		return FollowerWeight
	}
	if inf.TotalFollowers >= c.MinFollowers {
		return FollowerWeight
	}
	if inf.TotalFollowers <= 0 {
		return 0
	}
	return FollowerWeight * float64(inf.TotalFollowers) / float64(c.MinFollowers)
}

// languageScore is the fraction of the campaign's target languages the
// influencer covers.
func languageScore(c *domain.CampaignListing, inf *domain.InfluencerCandidate) float64 {
	if len(c.TargetLanguages) == 0 {
		return emptyTargetLanguageScore
	}

	spoken := make(map[string]struct{}, len(inf.Languages))
	for _, l := range inf.Languages {
		spoken[strings.ToLower(l)] = struct{}{}
	}

	matched := 0
	for _, l := range c.TargetLanguages {
		if _, ok := spoken[strings.ToLower(l)]; ok {
			matched++
		}
	}

	return LanguageWeight * float64(matched) / float64(len(c.TargetLanguages))
}

// categoryScore is binary: full credit if any influencer content
// category contains the campaign category as a case-insensitive
// substring ("Beauty/Skincare" matches a "Beauty" campaign).
func categoryScore(c *domain.CampaignListing, inf *domain.InfluencerCandidate) float64 {
	target := strings.ToLower(strings.TrimSpace(c.Category))
	if target == "" {
		return 0
	}
	for _, cat := range inf.ContentCategories {
		if strings.Contains(strings.ToLower(cat), target) {
			return CategoryWeight
		}
	}
	return 0
}

// engagementScore maps the engagement-rate percentage to points,
// saturating at the full weight (a 10% rate already maxes out).
func engagementScore(inf *domain.InfluencerCandidate) float64 {
	if inf.AvgEngagementRate <= 0 {
		return 0
	}
	return math.Min(EngagementWeight, inf.AvgEngagementRate*2)
}
