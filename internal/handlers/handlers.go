package handlers

import (
	"gorm.io/gorm"

	"github.com/emilythestrangee/breadit/backend/internal/cache"
	"github.com/emilythestrangee/breadit/backend/internal/votes"
)

// Handler combines all handler types
type Handler struct {
	Auth      *AuthHandler
	Post      *PostHandler
	Subreddit *SubredditHandler
	Comment   *CommentHandler
	Vote      *VoteHandler
}

// New creates a unified handler with all sub-handlers
func New(db *gorm.DB, voteService *votes.Service, postCache *cache.PostCache, jwtSecret []byte) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(db, jwtSecret),
		Post:      NewPostHandler(db, postCache),
		Subreddit: NewSubredditHandler(db),
		Comment:   NewCommentHandler(db),
		Vote:      NewVoteHandler(voteService),
	}
}
