package restapi

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"mesa-console/internal/core/domain"
	"mesa-console/internal/core/pagination"
)

// Wire shapes of the upstream services. Mapping to domain types happens in
// the to* functions below.

type pageDTO[T any] struct {
	Items       []T  `json:"items"`
	Page        int  `json:"page"`
	PageSize    int  `json:"pageSize"`
	TotalCount  *int `json:"totalCount"`
	TotalItems  *int `json:"totalItems"`
	TotalPages  int  `json:"totalPages"`
	HasPrevious bool `json:"hasPrevious"`
	HasNext     bool `json:"hasNext"`
}

// toPage maps a page envelope. Services disagree on the name of the count
// field, so both totalCount and totalItems are accepted. Missing page
// metadata is derived from the count.
func toPage[D, T any](p pageDTO[D], q domain.ListQuery, fn func(D) T) domain.Page[T] {
	out := domain.Page[T]{
		Items:       make([]T, 0, len(p.Items)),
		Page:        p.Page,
		PageSize:    p.PageSize,
		TotalPages:  p.TotalPages,
		HasPrevious: p.HasPrevious,
		HasNext:     p.HasNext,
	}
	for _, it := range p.Items {
		out.Items = append(out.Items, fn(it))
	}
	switch {
	case p.TotalCount != nil:
		out.Total = *p.TotalCount
	case p.TotalItems != nil:
		out.Total = *p.TotalItems
	default:
		out.Total = len(p.Items)
	}
	if out.Page == 0 {
		out.Page = q.Page
	}
	if out.PageSize == 0 {
		out.PageSize = q.PageSize
	}
	if out.TotalPages == 0 && out.Total > 0 {
		r := pagination.Compute(out.Page, out.Total, out.PageSize)
		out.TotalPages = r.TotalPages
		out.HasPrevious = r.HasPrevious
		out.HasNext = r.HasNext
	}
	return out
}

// parseTime accepts RFC3339 with or without fractional seconds and the
// zone-less form some services emit. Unparseable values map to zero.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// wireID is an identifier sent either as a JSON number or as a string.
type wireID string

func (id *wireID) UnmarshalJSON(b []byte) error {
	switch {
	case string(b) == "null":
		*id = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = wireID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("decode id %s: %w", b, err)
	}
	*id = wireID(n)
	return nil
}

type productDTO struct {
	ID            wireID  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stockQuantity"`
	Category      string  `json:"category"`
	SellerID      wireID  `json:"sellerId"`
	ImageURL      string  `json:"imageUrl"`
}

func toProduct(d productDTO) domain.Product {
	return domain.Product{
		ID:          string(d.ID),
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Quantity:    d.StockQuantity,
		Category:    d.Category,
		SellerID:    string(d.SellerID),
		ImageURL:    d.ImageURL,
	}
}

type productRequest struct {
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stockQuantity"`
	Category      string  `json:"category"`
	SellerID      int64   `json:"sellerId"`
	ImageURL      string  `json:"imageUrl,omitempty"`
}

func fromProductInput(in domain.ProductInput) productRequest {
	seller, _ := strconv.ParseInt(in.SellerID, 10, 64)
	return productRequest{
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		StockQuantity: in.Quantity,
		Category:      in.Category,
		SellerID:      seller,
		ImageURL:      in.ImageURL,
	}
}

type agencyDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Status    int    `json:"status"`
	ManagerID int64  `json:"managerId"`
	TenantID  string `json:"tenantId"`
	CreatedAt string `json:"createdAt"`
}

func toAgency(d agencyDTO) domain.Agency {
	return domain.Agency{
		ID:        d.ID,
		Name:      d.Name,
		Email:     d.Email,
		Phone:     d.Phone,
		Address:   d.Address,
		Status:    domain.AgencyStatus(d.Status),
		ManagerID: d.ManagerID,
		TenantID:  d.TenantID,
		CreatedAt: parseTime(d.CreatedAt),
	}
}

type agencyRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	Status    int    `json:"status"`
	ManagerID int64  `json:"managerId,omitempty"`
}

func fromAgencyInput(in domain.AgencyInput) agencyRequest {
	return agencyRequest{
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		Status:    int(in.Status),
		ManagerID: in.ManagerID,
	}
}

type userDTO struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	AgencyID  *int64 `json:"agencyId"`
	TenantID  string `json:"tenantId"`
	IsActive  bool   `json:"isActive"`
	CreatedAt string `json:"createdAt"`
}

func toUser(d userDTO) domain.User {
	return domain.User{
		ID:        d.ID,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Email:     d.Email,
		Role:      domain.ParseRole(d.Role),
		AgencyID:  d.AgencyID,
		TenantID:  d.TenantID,
		Active:    d.IsActive,
		CreatedAt: parseTime(d.CreatedAt),
	}
}

type userRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	AgencyID  *int64 `json:"agencyId,omitempty"`
	Password  string `json:"password,omitempty"`
}

func fromUserInput(in domain.UserInput) userRequest {
	return userRequest{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Role:      string(in.Role),
		AgencyID:  in.AgencyID,
		Password:  in.Password,
	}
}

type campaignDTO struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	AdvertiserID int64  `json:"advertiserId"`
	TenantID     string `json:"tenantId"`
	CampaignType int    `json:"campaignType"`
	BidStrategy  int    `json:"bidStrategy"`
	DailyBudget  int64  `json:"dailyBudget"`
	TotalBudget  int64  `json:"totalBudget"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	GlobalState  int    `json:"globalState"`
	StateType    int    `json:"stateType"`
	CreatedAt    string `json:"createdAt"`
}

func toCampaign(d campaignDTO) domain.Campaign {
	return domain.Campaign{
		ID:           d.ID,
		Name:         d.Name,
		AdvertiserID: d.AdvertiserID,
		TenantID:     d.TenantID,
		Type:         domain.CampaignType(d.CampaignType),
		BidStrategy:  domain.BidStrategy(d.BidStrategy),
		DailyBudget:  d.DailyBudget,
		TotalBudget:  d.TotalBudget,
		StartDate:    parseTime(d.StartDate),
		EndDate:      parseTime(d.EndDate),
		State:        domain.GlobalState(d.GlobalState),
		Review:       domain.StateType(d.StateType),
		CreatedAt:    parseTime(d.CreatedAt),
	}
}

type campaignRequest struct {
	Name         string `json:"name"`
	AdvertiserID int64  `json:"advertiserId"`
	CampaignType int    `json:"campaignType"`
	BidStrategy  int    `json:"bidStrategy"`
	DailyBudget  int64  `json:"dailyBudget"`
	TotalBudget  int64  `json:"totalBudget"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
}

func fromCampaignInput(in domain.CampaignInput) campaignRequest {
	return campaignRequest{
		Name:         in.Name,
		AdvertiserID: in.AdvertiserID,
		CampaignType: int(in.Type),
		BidStrategy:  int(in.BidStrategy),
		DailyBudget:  in.DailyBudget,
		TotalBudget:  in.TotalBudget,
		StartDate:    formatTime(in.StartDate),
		EndDate:      formatTime(in.EndDate),
	}
}

type adDTO struct {
	ID             int64  `json:"id"`
	CampaignID     int64  `json:"campaignId"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	DestinationURL string `json:"destinationUrl"`
	ImageURL       string `json:"imageUrl"`
	BidType        int    `json:"bidType"`
	BidAmount      int64  `json:"bidAmount"`
	GlobalState    int    `json:"globalState"`
	StateType      int    `json:"stateType"`
	CreatedAt      string `json:"createdAt"`
}

func toAd(d adDTO) domain.Ad {
	return domain.Ad{
		ID:             d.ID,
		CampaignID:     d.CampaignID,
		Title:          d.Title,
		Description:    d.Description,
		DestinationURL: d.DestinationURL,
		ImageURL:       d.ImageURL,
		BidType:        domain.BidType(d.BidType),
		BidAmount:      d.BidAmount,
		State:          domain.GlobalState(d.GlobalState),
		Review:         domain.StateType(d.StateType),
		CreatedAt:      parseTime(d.CreatedAt),
	}
}

type adRequest struct {
	CampaignID     int64  `json:"campaignId"`
	Title          string `json:"title"`
	Description    string `json:"description,omitempty"`
	DestinationURL string `json:"destinationUrl"`
	ImageURL       string `json:"imageUrl,omitempty"`
	BidType        int    `json:"bidType"`
	BidAmount      int64  `json:"bidAmount"`
}

func fromAdInput(in domain.AdInput) adRequest {
	return adRequest{
		CampaignID:     in.CampaignID,
		Title:          in.Title,
		Description:    in.Description,
		DestinationURL: in.DestinationURL,
		ImageURL:       in.ImageURL,
		BidType:        int(in.BidType),
		BidAmount:      in.BidAmount,
	}
}

type sellerDTO struct {
	ID    wireID `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func toSeller(d sellerDTO) domain.Seller {
	return domain.Seller{ID: string(d.ID), Name: d.Name, Email: d.Email}
}

type notificationDTO struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	IsRead    bool   `json:"isRead"`
	CreatedAt string `json:"createdAt"`
}

func toNotification(d notificationDTO) domain.Notification {
	return domain.Notification{
		ID:        d.ID,
		UserID:    d.UserID,
		Title:     d.Title,
		Message:   d.Message,
		Read:      d.IsRead,
		CreatedAt: parseTime(d.CreatedAt),
	}
}

func mapAll[D, T any](in []D, fn func(D) T) []T {
	out := make([]T, 0, len(in))
	for _, d := range in {
		out = append(out, fn(d))
	}
	return out
}

func listQuery(q domain.ListQuery) url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	return v
}
