package domain

// ScoreBreakdown holds the unrounded per-component contributions to a
// match score. Components sum to the final score before rounding.
type ScoreBreakdown struct {
	FollowerScore   float64 `json:"follower_score"`
	LanguageScore   float64 `json:"language_score"`
	CategoryScore   float64 `json:"category_score"`
	EngagementScore float64 `json:"engagement_score"`
}

// MatchResult is a derived campaign/influencer compatibility rating.
// It is recomputed on demand and never persisted.
type MatchResult struct {
	CampaignID   string         `json:"campaign_id"`
	InfluencerID string         `json:"influencer_id"`
	Score        int            `json:"score"`
	Breakdown    ScoreBreakdown `json:"breakdown"`
}
