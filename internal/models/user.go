// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents a user in the Ripple application. Users are never created
// locally; they are synced from the external identity provider, keyed by the
// provider-issued ExternalID.
type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ExternalID string    `gorm:"uniqueIndex;size:64;not null" json:"external_id"`
	Username   string    `gorm:"uniqueIndex;size:32;not null" json:"username"`
	Name       string    `gorm:"size:128" json:"name"`
	Image      string    `json:"image"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Posts []Post `gorm:"foreignKey:AuthorID" json:"posts,omitempty"`
}

// UserSummary is the author projection embedded in feed entries and returned
// by the identity lookup endpoint.
type UserSummary struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Image    string `json:"image"`
}

// Summary returns the presentation projection of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
		Image:    u.Image,
	}
}
