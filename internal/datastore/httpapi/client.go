// Package httpapi implements the DataStore over a remote REST service.
package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vietddude/matchboard/internal/core/domain"
	"github.com/vietddude/matchboard/internal/datastore"
	"github.com/vietddude/matchboard/internal/metrics"
)

// DefaultTimeout bounds a single datastore request so the retry budget
// cannot hang indefinitely.
const DefaultTimeout = 5 * time.Second

// Config holds remote datastore settings.
type Config struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// Client is a JSON client for the datastore service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a datastore client for the given base URL.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

type campaignDTO struct {
	ID              string   `json:"id"`
	BrandName       string   `json:"brand_name"`
	Title           string   `json:"title"`
	Category        string   `json:"category"`
	BudgetMin       int64    `json:"budget_min"`
	BudgetMax       int64    `json:"budget_max"`
	Currency        string   `json:"currency"`
	MinFollowers    int64    `json:"min_followers"`
	TargetLanguages []string `json:"target_languages"`
	TargetRegions   []string `json:"target_regions"`
	Status          string   `json:"status"`
	CreatedAt       string   `json:"created_at"`
}

type influencerDTO struct {
	ID                string   `json:"id"`
	DisplayName       string   `json:"display_name"`
	TotalFollowers    int64    `json:"total_followers"`
	AvgEngagementRate float64  `json:"avg_engagement_rate"`
	ContentCategories []string `json:"content_categories"`
	Languages         []string `json:"languages"`
}

// QueryCampaigns fetches campaigns matching the filter.
func (c *Client) QueryCampaigns(ctx context.Context, filter datastore.CampaignFilter) ([]domain.CampaignListing, error) {
	start := time.Now()
	defer func() {
		metrics.DatastoreLatency.WithLabelValues("query_campaigns").Observe(time.Since(start).Seconds())
	}()

	q := url.Values{}
	if filter.Status != "" {
		q.Set("status", string(filter.Status))
	}
	if filter.Category != "" {
		q.Set("category", filter.Category)
	}
	if filter.MinBudget > 0 {
		q.Set("min_budget", strconv.FormatInt(filter.MinBudget, 10))
	}
	if filter.MaxBudget > 0 {
		q.Set("max_budget", strconv.FormatInt(filter.MaxBudget, 10))
	}
	if filter.MinFollowers > 0 {
		q.Set("min_followers", strconv.FormatInt(filter.MinFollowers, 10))
	}
	if len(filter.TargetLanguages) > 0 {
		q.Set("target_languages", strings.Join(filter.TargetLanguages, ","))
	}
	if len(filter.TargetRegions) > 0 {
		q.Set("target_regions", strings.Join(filter.TargetRegions, ","))
	}

	endpoint := c.baseURL + "/v1/campaigns"
	if enc := q.Encode(); enc != "" {
		endpoint += "?" + enc
	}

	var dtos []campaignDTO
	if err := c.getJSON(ctx, "query_campaigns", endpoint, &dtos); err != nil {
		return nil, err
	}

	campaigns := make([]domain.CampaignListing, 0, len(dtos))
	for _, d := range dtos {
		campaigns = append(campaigns, d.toDomain())
	}
	return campaigns, nil
}

// GetInfluencer fetches one influencer profile.
func (c *Client) GetInfluencer(ctx context.Context, id string) (*domain.InfluencerCandidate, error) {
	start := time.Now()
	defer func() {
		metrics.DatastoreLatency.WithLabelValues("get_influencer").Observe(time.Since(start).Seconds())
	}()

	endpoint := c.baseURL + "/v1/influencers/" + url.PathEscape(id)

	var d influencerDTO
	if err := c.getJSON(ctx, "get_influencer", endpoint, &d); err != nil {
		return nil, err
	}

	return &domain.InfluencerCandidate{
		ID:                d.ID,
		DisplayName:       d.DisplayName,
		TotalFollowers:    d.TotalFollowers,
		AvgEngagementRate: d.AvgEngagementRate,
		ContentCategories: d.ContentCategories,
		Languages:         d.Languages,
	}, nil
}

// getJSON runs one GET and decodes the body. 4xx responses become
// application-class errors; transport failures and 5xx stay
// network-class so the fetch layer retries them.
func (c *Client) getJSON(ctx context.Context, op, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("datastore request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return datastore.ErrNotFound
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return &datastore.RequestError{Op: op, Status: resp.StatusCode, Msg: strings.TrimSpace(string(body))}
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

func (d campaignDTO) toDomain() domain.CampaignListing {
	createdAt, _ := time.Parse(time.RFC3339, d.CreatedAt)
	return domain.CampaignListing{
		ID:              d.ID,
		BrandName:       d.BrandName,
		Title:           d.Title,
		Category:        d.Category,
		BudgetMin:       d.BudgetMin,
		BudgetMax:       d.BudgetMax,
		Currency:        d.Currency,
		MinFollowers:    d.MinFollowers,
		TargetLanguages: d.TargetLanguages,
		TargetRegions:   d.TargetRegions,
		Status:          domain.CampaignStatus(d.Status),
		CreatedAt:       createdAt,
	}
}
