// Package models contains data structures for the application's domain models.
package models

import "time"

// Follow represents a directed follow edge between two users: FollowerID
// follows FollowingID. The ordered pair must be unique.
type Follow struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FollowerID  uint      `gorm:"not null;uniqueIndex:idx_follows_pair;index:idx_follows_follower" json:"follower_id"`
	FollowingID uint      `gorm:"not null;uniqueIndex:idx_follows_pair" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`

	Follower  User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Following User `gorm:"foreignKey:FollowingID" json:"following,omitempty"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}
