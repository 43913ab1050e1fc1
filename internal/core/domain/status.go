package domain

// The enumerations below travel as integers on the wire. Each one has a
// String method with the English display text and a LabelKey used for
// catalog lookups by the views.

// AgencyStatus is the lifecycle state of an agency.
type AgencyStatus int

const (
	AgencyStatusPending AgencyStatus = iota
	AgencyStatusActive
	AgencyStatusInactive
	AgencyStatusSuspended
)

func (s AgencyStatus) String() string {
	switch s {
	case AgencyStatusPending:
		return "Pending"
	case AgencyStatusActive:
		return "Active"
	case AgencyStatusInactive:
		return "Inactive"
	case AgencyStatusSuspended:
		return "Suspended"
	default:
		return "Unknown"
	}
}

func (s AgencyStatus) LabelKey() string {
	return "status.agency." + lowerKey(s.String())
}

// AgencyStatuses lists every status in display order.
func AgencyStatuses() []AgencyStatus {
	return []AgencyStatus{AgencyStatusPending, AgencyStatusActive, AgencyStatusInactive, AgencyStatusSuspended}
}

// GlobalState is the delivery state shared by campaigns and ads.
type GlobalState int

const (
	GlobalStateEnabled GlobalState = iota
	GlobalStatePaused
	GlobalStateRemoved
)

func (s GlobalState) String() string {
	switch s {
	case GlobalStateEnabled:
		return "Enabled"
	case GlobalStatePaused:
		return "Paused"
	case GlobalStateRemoved:
		return "Removed"
	default:
		return "Unknown"
	}
}

func (s GlobalState) LabelKey() string {
	return "status.global." + lowerKey(s.String())
}

// StateType is the review state of a campaign or ad.
type StateType int

const (
	StateDraft StateType = iota
	StatePendingReview
	StateApproved
	StateRejected
)

func (s StateType) String() string {
	switch s {
	case StateDraft:
		return "Draft"
	case StatePendingReview:
		return "Pending review"
	case StateApproved:
		return "Approved"
	case StateRejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}

func (s StateType) LabelKey() string {
	return "status.review." + lowerKey(s.String())
}

// CampaignType is the inventory a campaign buys.
type CampaignType int

const (
	CampaignTypeSearch CampaignType = iota
	CampaignTypeDisplay
	CampaignTypeVideo
	CampaignTypeShopping
)

func (t CampaignType) String() string {
	switch t {
	case CampaignTypeSearch:
		return "Search"
	case CampaignTypeDisplay:
		return "Display"
	case CampaignTypeVideo:
		return "Video"
	case CampaignTypeShopping:
		return "Shopping"
	default:
		return "Unknown"
	}
}

func (t CampaignType) LabelKey() string {
	return "campaign.type." + lowerKey(t.String())
}

// CampaignTypes lists every campaign type in display order.
func CampaignTypes() []CampaignType {
	return []CampaignType{CampaignTypeSearch, CampaignTypeDisplay, CampaignTypeVideo, CampaignTypeShopping}
}

// BidStrategy controls how the bidder spends a campaign budget.
type BidStrategy int

const (
	BidStrategyManual BidStrategy = iota
	BidStrategyMaximizeClicks
	BidStrategyMaximizeConversions
	BidStrategyTargetCPA
	BidStrategyTargetROAS
)

func (b BidStrategy) String() string {
	switch b {
	case BidStrategyManual:
		return "Manual"
	case BidStrategyMaximizeClicks:
		return "Maximize clicks"
	case BidStrategyMaximizeConversions:
		return "Maximize conversions"
	case BidStrategyTargetCPA:
		return "Target CPA"
	case BidStrategyTargetROAS:
		return "Target ROAS"
	default:
		return "Unknown"
	}
}

func (b BidStrategy) LabelKey() string {
	return "campaign.bid_strategy." + lowerKey(b.String())
}

// BidStrategies lists every strategy in display order.
func BidStrategies() []BidStrategy {
	return []BidStrategy{BidStrategyManual, BidStrategyMaximizeClicks, BidStrategyMaximizeConversions, BidStrategyTargetCPA, BidStrategyTargetROAS}
}

// BidType is the billing event an ad is charged for.
type BidType int

const (
	BidTypeCPC BidType = iota
	BidTypeCPM
	BidTypeCPA
)

func (b BidType) String() string {
	switch b {
	case BidTypeCPC:
		return "CPC"
	case BidTypeCPM:
		return "CPM"
	case BidTypeCPA:
		return "CPA"
	default:
		return "Unknown"
	}
}

func (b BidType) LabelKey() string {
	return "ad.bid_type." + lowerKey(b.String())
}

// BidTypes lists every bid type in display order.
func BidTypes() []BidType {
	return []BidType{BidTypeCPC, BidTypeCPM, BidTypeCPA}
}

func lowerKey(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z':
			out = append(out, c+('a'-'A'))
		case c == ' ':
			out = append(out, '_')
		default:
			out = append(out, c)
		}
	}
	return string(out)
}
