package domain

// InfluencerCandidate is the read-side view of a creator profile used
// for matching. AvgEngagementRate is a percentage in [0,100].
type InfluencerCandidate struct {
	ID                string
	DisplayName       string
	TotalFollowers    int64
	AvgEngagementRate float64
	ContentCategories []string
	Languages         []string
}
