// Package models contains data structures for the application's domain models.
package models

import "time"

// MaxContentLength is the maximum post/reply length in characters (runes),
// measured after trimming surrounding whitespace.
const MaxContentLength = 140

// Post represents a post in the Ripple application.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	AuthorID uint   `gorm:"not null;index:idx_posts_author" json:"author_id"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author"`
	Content  string `gorm:"size:140;not null" json:"content"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// RepliesCount is not persisted; computed at query time from live reply rows
	RepliesCount int `gorm:"->" json:"replies_count"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked     bool      `gorm:"->" json:"liked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// RepliesPreview is a bounded, newest-first preview attached to feed
	// entries. Never persisted.
	RepliesPreview []Reply `gorm:"-" json:"replies_preview,omitempty"`
}
