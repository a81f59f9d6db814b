// Package postgres implements the DataStore over PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/vietddude/matchboard/internal/core/domain"
	"github.com/vietddude/matchboard/internal/datastore"
	"github.com/vietddude/matchboard/internal/metrics"
)

// Store implements datastore.DataStore using PostgreSQL.
type Store struct {
	db *DB
}

// NewStore creates a PostgreSQL-backed datastore.
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

type campaignRow struct {
	ID              string         `db:"id"`
	BrandName       string         `db:"brand_name"`
	Title           string         `db:"title"`
	Category        string         `db:"category"`
	BudgetMin       int64          `db:"budget_min"`
	BudgetMax       int64          `db:"budget_max"`
	Currency        string         `db:"currency"`
	MinFollowers    int64          `db:"min_followers"`
	TargetLanguages pq.StringArray `db:"target_languages"`
	TargetRegions   pq.StringArray `db:"target_regions"`
	Status          string         `db:"status"`
	CreatedAt       time.Time      `db:"created_at"`
}

type influencerRow struct {
	ID                string         `db:"id"`
	DisplayName       string         `db:"display_name"`
	TotalFollowers    int64          `db:"total_followers"`
	AvgEngagementRate float64        `db:"avg_engagement_rate"`
	ContentCategories pq.StringArray `db:"content_categories"`
	Languages         pq.StringArray `db:"languages"`
}

// QueryCampaigns compiles the filter to a WHERE clause. Zero-valued
// filter fields add no constraint.
func (s *Store) QueryCampaigns(ctx context.Context, filter datastore.CampaignFilter) ([]domain.CampaignListing, error) {
	start := time.Now()
	defer func() {
		metrics.DatastoreLatency.WithLabelValues("query_campaigns").Observe(time.Since(start).Seconds())
	}()

	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Status != "" {
		where = append(where, "status = "+arg(string(filter.Status)))
	}
	if filter.Category != "" {
		where = append(where, "lower(category) = lower("+arg(filter.Category)+")")
	}
	if filter.MinBudget > 0 {
		where = append(where, "budget_max >= "+arg(filter.MinBudget))
	}
	if filter.MaxBudget > 0 {
		where = append(where, "budget_min <= "+arg(filter.MaxBudget))
	}
	if filter.MinFollowers > 0 {
		where = append(where, "min_followers <= "+arg(filter.MinFollowers))
	}
	if len(filter.TargetLanguages) > 0 {
		where = append(where, "target_languages && "+arg(pq.StringArray(filter.TargetLanguages)))
	}
	if len(filter.TargetRegions) > 0 {
		where = append(where, "target_regions && "+arg(pq.StringArray(filter.TargetRegions)))
	}

	query := `SELECT id, brand_name, title, category, budget_min, budget_max, currency,
		min_followers, target_languages, target_regions, status, created_at
		FROM campaigns`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	var rows []campaignRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query campaigns: %w", err)
	}

	campaigns := make([]domain.CampaignListing, 0, len(rows))
	for _, r := range rows {
		campaigns = append(campaigns, domain.CampaignListing{
			ID:              r.ID,
			BrandName:       r.BrandName,
			Title:           r.Title,
			Category:        r.Category,
			BudgetMin:       r.BudgetMin,
			BudgetMax:       r.BudgetMax,
			Currency:        r.Currency,
			MinFollowers:    r.MinFollowers,
			TargetLanguages: r.TargetLanguages,
			TargetRegions:   r.TargetRegions,
			Status:          domain.CampaignStatus(r.Status),
			CreatedAt:       r.CreatedAt,
		})
	}
	return campaigns, nil
}

// GetInfluencer retrieves one influencer profile.
func (s *Store) GetInfluencer(ctx context.Context, id string) (*domain.InfluencerCandidate, error) {
	start := time.Now()
	defer func() {
		metrics.DatastoreLatency.WithLabelValues("get_influencer").Observe(time.Since(start).Seconds())
	}()

	var r influencerRow
	err := s.db.GetContext(ctx, &r, `SELECT id, display_name, total_followers,
		avg_engagement_rate, content_categories, languages
		FROM influencers WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, datastore.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get influencer: %w", err)
	}

	return &domain.InfluencerCandidate{
		ID:                r.ID,
		DisplayName:       r.DisplayName,
		TotalFollowers:    r.TotalFollowers,
		AvgEngagementRate: r.AvgEngagementRate,
		ContentCategories: r.ContentCategories,
		Languages:         r.Languages,
	}, nil
}
