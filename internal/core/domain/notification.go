package domain

import "time"

// Notification is an inbox entry addressed to one user.
type Notification struct {
	ID        int64
	UserID    int64
	Title     string
	Message   string
	Read      bool
	CreatedAt time.Time
}
