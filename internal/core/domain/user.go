package domain

import "time"

// User is a dashboard account. Advertisers and agency managers carry the
// agency they belong to.
type User struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Role      Role
	AgencyID  *int64
	TenantID  string
	Active    bool
	CreatedAt time.Time
}

// FullName joins first and last name.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// UserInput is the writable subset of a user.
type UserInput struct {
	FirstName string `validate:"required,max=80"`
	LastName  string `validate:"required,max=80"`
	Email     string `validate:"required,email"`
	Role      Role   `validate:"required,oneof=ADMIN ADVERTISER AGENCY_MANAGER"`
	AgencyID  *int64 `validate:"omitempty"`
	Password  string `validate:"omitempty,min=8"`
}
