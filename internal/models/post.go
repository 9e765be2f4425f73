package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Post struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Content     string    `json:"content"`
	AuthorID    string    `json:"author_id"`
	Author      User      `gorm:"foreignKey:AuthorID" json:"author"`
	SubredditID string    `json:"subreddit_id"`
	Subreddit   Subreddit `gorm:"foreignKey:SubredditID" json:"subreddit"`
	Votes       []Vote    `gorm:"foreignKey:PostID" json:"votes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type CreatePostRequest struct {
	Title       string `json:"title" binding:"required,min=3,max=120"`
	Content     string `json:"content"`
	SubredditID string `json:"subredditId" binding:"required"`
}
