package model

import "time"

// User is an account as exposed to handlers. Anonymous (guest) users have
// no email and cannot edit their profile.
type User struct {
	ID          string    `json:"uid"`
	Email       string    `json:"email,omitempty"`
	DisplayName string    `json:"displayName,omitempty"`
	IsAnonymous bool      `json:"isAnonymous"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Session is an opaque bearer token bound to a user.
type Session struct {
	Token     string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}
