package port

import (
	"context"

	"mesa-console/internal/core/domain"
)

// The interfaces below are the outbound ports to the upstream REST
// services. List reads never fail: on upstream errors they return an empty
// collection. Single reads and mutations return the upstream error.

// ProductAPI manages catalog products.
type ProductAPI interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetBySeller(ctx context.Context, sellerID string) []domain.Product
	GetByCategory(ctx context.Context, category string) []domain.Product
	GetAll(ctx context.Context) []domain.Product
	Create(ctx context.Context, in domain.ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, in domain.ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

// AgencyAPI manages agencies.
type AgencyAPI interface {
	List(ctx context.Context, q domain.ListQuery) domain.Page[domain.Agency]
	GetByID(ctx context.Context, id int64) (*domain.Agency, error)
	GetByManager(ctx context.Context, managerID int64) []domain.Agency
	Create(ctx context.Context, in domain.AgencyInput) (*domain.Agency, error)
	Update(ctx context.Context, id int64, in domain.AgencyInput) (*domain.Agency, error)
	SetStatus(ctx context.Context, id int64, status domain.AgencyStatus) error
	Delete(ctx context.Context, id int64) error
}

// ProfileAPI resolves the user behind the bearer token on ctx.
type ProfileAPI interface {
	Me(ctx context.Context) (*domain.User, error)
}

// UserAPI manages dashboard users.
type UserAPI interface {
	ProfileAPI
	List(ctx context.Context, q domain.ListQuery) domain.Page[domain.User]
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByAgency(ctx context.Context, agencyID int64) []domain.User
	Create(ctx context.Context, in domain.UserInput) (*domain.User, error)
	Update(ctx context.Context, id int64, in domain.UserInput) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}

// CampaignAPI manages campaigns.
type CampaignAPI interface {
	List(ctx context.Context, q domain.ListQuery) domain.Page[domain.Campaign]
	GetByID(ctx context.Context, id int64) (*domain.Campaign, error)
	GetByAdvertiser(ctx context.Context, advertiserID int64) []domain.Campaign
	Create(ctx context.Context, in domain.CampaignInput) (*domain.Campaign, error)
	Update(ctx context.Context, id int64, in domain.CampaignInput) (*domain.Campaign, error)
	Delete(ctx context.Context, id int64) error
}

// AdAPI manages ads.
type AdAPI interface {
	List(ctx context.Context, q domain.ListQuery) domain.Page[domain.Ad]
	GetByID(ctx context.Context, id int64) (*domain.Ad, error)
	GetByCampaign(ctx context.Context, campaignID int64) []domain.Ad
	Create(ctx context.Context, in domain.AdInput) (*domain.Ad, error)
	Update(ctx context.Context, id int64, in domain.AdInput) (*domain.Ad, error)
	Delete(ctx context.Context, id int64) error
}

// SellerAPI reads sellers.
type SellerAPI interface {
	GetAll(ctx context.Context) []domain.Seller
	GetByID(ctx context.Context, id string) (*domain.Seller, error)
}

// NotificationAPI reads and acknowledges notifications.
type NotificationAPI interface {
	GetByUser(ctx context.Context, userID int64) []domain.Notification
	MarkRead(ctx context.Context, id int64) error
}

// AuthAPI exchanges credentials for a bearer token.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (string, error)
}
