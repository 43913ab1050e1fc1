package domain

import "time"

// Campaign is an advertiser's budgeted container of ads.
// Budgets are stored in integer units (e.g. cents).
type Campaign struct {
	ID           int64
	Name         string
	AdvertiserID int64
	TenantID     string
	Type         CampaignType
	BidStrategy  BidStrategy
	DailyBudget  int64
	TotalBudget  int64
	StartDate    time.Time
	EndDate      time.Time
	State        GlobalState
	Review       StateType
	CreatedAt    time.Time
}

// CampaignInput is the writable subset of a campaign.
type CampaignInput struct {
	Name         string       `validate:"required,max=120"`
	AdvertiserID int64        `validate:"required,min=1"`
	Type         CampaignType `validate:"min=0,max=3"`
	BidStrategy  BidStrategy  `validate:"min=0,max=4"`
	DailyBudget  int64        `validate:"min=0"`
	TotalBudget  int64        `validate:"gtefield=DailyBudget"`
	StartDate    time.Time    `validate:"required"`
	EndDate      time.Time    `validate:"required,gtfield=StartDate"`
}
