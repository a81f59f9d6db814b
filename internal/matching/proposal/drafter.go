// Package proposal drafts collaboration proposals for a
// campaign/influencer pair.
package proposal

import (
	"fmt"
	"strings"

	"github.com/vietddude/matchboard/internal/core/domain"
)

// SuggestedTimeline is a fixed literal; it is not derived from campaign
// dates.
const SuggestedTimeline = "2-3 weeks from agreement"

const textTemplate = `Hi %s team,

I'm %s, a content creator with %d followers and an average engagement rate of %.1f%%.
My content focuses on %s, which I believe aligns well with your campaign.

I'd love to collaborate on this campaign. Based on your budget range, I suggest
a collaboration fee of %s %d with delivery within %s.

Looking forward to hearing from you!`

// Draft produces a deterministic proposal for the pair. The suggested
// budget is the floored midpoint of the campaign budget range; missing
// bounds count as zero. Always succeeds for well-formed inputs.
func Draft(c *domain.CampaignListing, inf *domain.InfluencerCandidate) *domain.Proposal {
	budget := (c.BudgetMin + c.BudgetMax) / 2

	categories := strings.Join(inf.ContentCategories, ", ")
	if categories == "" {
		categories = "a variety of topics"
	}

	currency := c.Currency
	if currency == "" {
		currency = "USD"
	}

	text := fmt.Sprintf(textTemplate,
		c.BrandName,
		inf.DisplayName,
		inf.TotalFollowers,
		inf.AvgEngagementRate,
		categories,
		currency,
		budget,
		SuggestedTimeline,
	)

	return &domain.Proposal{
		CampaignID:        c.ID,
		InfluencerID:      inf.ID,
		Text:              text,
		SuggestedBudget:   budget,
		SuggestedTimeline: SuggestedTimeline,
	}
}
