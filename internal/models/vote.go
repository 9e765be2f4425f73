package models

import "time"

// VoteType is the stored direction of a vote. Absence of a Vote row is the
// third logical state ("none") and is never persisted.
type VoteType string

const (
	VoteUp   VoteType = "UP"
	VoteDown VoteType = "DOWN"
)

// Valid reports whether t is one of the two recognized directions.
func (t VoteType) Valid() bool {
	return t == VoteUp || t == VoteDown
}

// Vote tracks one user's stance on one post. The (user, post) pair is the
// natural key, enforced as a composite primary key.
type Vote struct {
	UserID    string    `gorm:"primaryKey" json:"user_id"`
	PostID    string    `gorm:"primaryKey" json:"post_id"`
	Type      VoteType  `gorm:"not null" json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CastVoteRequest struct {
	PostID   string   `json:"postId" binding:"required"`
	VoteType VoteType `json:"voteType" binding:"required,oneof=UP DOWN"`
}
