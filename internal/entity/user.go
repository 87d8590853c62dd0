// Package entity defines the persisted domain types shared by the
// repository, service, and handler layers.
package entity

import "time"

// User is the persisted user record.
//
// Email is unique across all users (compared case-insensitively).
// ID is assigned by the store at creation time and never changes.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserUpdate carries a partial set of user fields for an update.
// A nil field means "leave unchanged".
type UserUpdate struct {
	Name  *string
	Email *string
}
