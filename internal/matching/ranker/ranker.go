// Package ranker turns a campaign set into an ordered recommendation
// list for one influencer.
package ranker

import (
	"sort"

	"github.com/vietddude/matchboard/internal/core/domain"
	"github.com/vietddude/matchboard/internal/matching/scorer"
)

// Recommend filters campaigns by hard constraints, scores the
// survivors, and returns them best-first. Idempotent and
// side-effect-free for identical inputs.
//
// Hard filters: only active campaigns, and only campaigns whose minimum
// follower requirement the influencer meets. Candidates below the
// threshold never appear here; partial follower credit is reachable
// only through a direct single-pair score.
func Recommend(campaigns []domain.CampaignListing, inf *domain.InfluencerCandidate) []domain.MatchResult {
	results := make([]domain.MatchResult, 0, len(campaigns))
	createdAt := make(map[string]int64, len(campaigns))

	for i := range campaigns {
		c := &campaigns[i]
		if c.Status != domain.CampaignStatusActive {
			continue
		}
		if inf.TotalFollowers < c.MinFollowers {
			continue
		}
		results = append(results, scorer.Score(c, inf))
		createdAt[c.ID] = c.CreatedAt.UnixNano()
	}

	// Score descending, newer campaigns first on ties, input order for
	// the rest (stable sort).
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return createdAt[results[i].CampaignID] > createdAt[results[j].CampaignID]
	})

	return results
}
