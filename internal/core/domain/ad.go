package domain

import "time"

// Ad is a single creative served under a campaign.
type Ad struct {
	ID             int64
	CampaignID     int64
	Title          string
	Description    string
	DestinationURL string
	ImageURL       string
	BidType        BidType
	BidAmount      int64
	State          GlobalState
	Review         StateType
	CreatedAt      time.Time
}

// AdInput is the writable subset of an ad.
type AdInput struct {
	CampaignID     int64   `validate:"required,min=1"`
	Title          string  `validate:"required,max=90"`
	Description    string  `validate:"omitempty,max=500"`
	DestinationURL string  `validate:"required,url"`
	ImageURL       string  `validate:"omitempty,url"`
	BidType        BidType `validate:"min=0,max=2"`
	BidAmount      int64   `validate:"min=0"`
}
