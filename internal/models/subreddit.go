package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Subreddit struct {
	ID          string `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"unique;not null" json:"name"`
	Description string `json:"description"`
	CreatorID   string `json:"creator_id"`
	Creator     User   `gorm:"foreignKey:CreatorID" json:"creator"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Subreddit) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// Subscription links a user to a subreddit they follow.
// One row per (user, subreddit) pair.
type Subscription struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	UserID      string    `gorm:"not null;uniqueIndex:idx_user_subreddit" json:"user_id"`
	SubredditID string    `gorm:"not null;uniqueIndex:idx_user_subreddit" json:"subreddit_id"`
	User        User      `gorm:"foreignKey:UserID" json:"user"`
	Subreddit   Subreddit `gorm:"foreignKey:SubredditID" json:"subreddit"`
	CreatedAt   time.Time `json:"created_at"`
}

func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

type CreateSubredditRequest struct {
	Name        string `json:"name" binding:"required,min=3,max=21"`
	Description string `json:"description"`
}

type SubscribeRequest struct {
	SubredditID string `json:"subredditId" binding:"required"`
}
