package votes

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/emilythestrangee/breadit/backend/internal/models"
)

// PostRepo loads posts with the associations the reconciliation path needs.
type PostRepo struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) *PostRepo {
	return &PostRepo{db: db}
}

// FindByID returns the post with author and votes preloaded, or nil if it
// does not exist.
func (r *PostRepo) FindByID(ctx context.Context, postID string) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Votes").
		First(&post, "id = ?", postID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}
