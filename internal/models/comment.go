package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Comment struct {
	ID              string    `gorm:"primaryKey" json:"id"`
	Body            string    `gorm:"not null" json:"body"`
	AuthorID        string    `json:"author_id"`
	Author          User      `gorm:"foreignKey:AuthorID" json:"author"`
	PostID          string    `json:"post_id"`
	ParentCommentID *string   `json:"parent_comment_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type CreateCommentRequest struct {
	Body            string  `json:"body" binding:"required"`
	PostID          string  `json:"post_id" binding:"required"`
	ParentCommentID *string `json:"parent_comment_id,omitempty"`
}
