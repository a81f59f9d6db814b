// Package datastore defines the read interface the matching core
// consumes. Persistence itself is owned by the backing service; this
// package only names the queries and the error taxonomy.
package datastore

import (
	"context"
	"errors"
	"fmt"

	"github.com/vietddude/matchboard/internal/core/domain"
)

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")
)

// CampaignFilter narrows a campaign query. Zero values mean "no
// constraint" for that field.
type CampaignFilter struct {
	Status          domain.CampaignStatus
	Category        string
	MinBudget       int64
	MaxBudget       int64
	TargetLanguages []string
	TargetRegions   []string
	MinFollowers    int64
}

// DataStore provides filtered reads over campaigns and influencer
// profiles. Implementations: memory, postgres, httpapi.
type DataStore interface {
	// QueryCampaigns returns campaigns matching the filter
	QueryCampaigns(ctx context.Context, filter CampaignFilter) ([]domain.CampaignListing, error)

	// GetInfluencer retrieves one influencer profile by ID
	GetInfluencer(ctx context.Context, id string) (*domain.InfluencerCandidate, error)
}

// RequestError marks an application-level rejection by the datastore
// (bad filter, auth, validation). The fetch layer propagates these
// immediately instead of retrying.
type RequestError struct {
	Op     string
	Status int
	Msg    string
}

func (e *RequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: rejected with status %d: %s", e.Op, e.Status, e.Msg)
	}
	return fmt.Sprintf("%s: rejected: %s", e.Op, e.Msg)
}

// IsRequestError reports whether err is an application-level rejection.
func IsRequestError(err error) bool {
	var re *RequestError
	return errors.As(err, &re)
}
