package domain

// Proposal is a drafted collaboration offer for a campaign/influencer
// pair. Text is a single-language template render; SuggestedBudget is
// the floored midpoint of the campaign budget range.
type Proposal struct {
	CampaignID        string `json:"campaign_id"`
	InfluencerID      string `json:"influencer_id"`
	Text              string `json:"text"`
	SuggestedBudget   int64  `json:"suggested_budget"`
	SuggestedTimeline string `json:"suggested_timeline"`
}
