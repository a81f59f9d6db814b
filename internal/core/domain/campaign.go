package domain

import "time"

type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusPaused    CampaignStatus = "paused"
	CampaignStatusCompleted CampaignStatus = "completed"
	CampaignStatusCancelled CampaignStatus = "cancelled"
)

// CampaignListing represents a brand-funded collaboration opportunity
// open to influencer applications. Budgets are stored in whole currency
// units; BudgetMin <= BudgetMax is enforced at write time by the datastore.
type CampaignListing struct {
	ID              string
	BrandName       string
	Title           string
	Category        string
	BudgetMin       int64
	BudgetMax       int64
	Currency        string
	MinFollowers    int64
	TargetLanguages []string
	TargetRegions   []string
	Status          CampaignStatus
	CreatedAt       time.Time
}
