package domain

import "time"

// Agency groups advertisers under one manager.
type Agency struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	Address   string
	Status    AgencyStatus
	ManagerID int64
	TenantID  string
	CreatedAt time.Time
}

// AgencyInput is the writable subset of an agency.
type AgencyInput struct {
	Name      string       `validate:"required,max=120"`
	Email     string       `validate:"required,email"`
	Phone     string       `validate:"omitempty,max=32"`
	Address   string       `validate:"omitempty,max=255"`
	Status    AgencyStatus `validate:"min=0,max=3"`
	ManagerID int64        `validate:"omitempty,min=1"`
}
