package votes

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/emilythestrangee/breadit/backend/internal/apperrors"
	"github.com/emilythestrangee/breadit/backend/internal/models"
)

const uniqueViolationCode = "23505"

// Store persists vote rows keyed by the (user, post) pair. The composite
// primary key on votes makes concurrent creates for the same pair collide
// instead of duplicating rows.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Find returns the vote for the pair, or nil if the user has not voted.
func (s *Store) Find(ctx context.Context, userID, postID string) (*models.Vote, error) {
	var vote models.Vote
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

// Create inserts a new vote. A colliding concurrent insert for the same
// (user, post) pair surfaces as a conflict error.
func (s *Store) Create(ctx context.Context, vote *models.Vote) error {
	err := s.db.WithContext(ctx).Create(vote).Error
	if err != nil && isUniqueViolation(err) {
		return apperrors.Conflict("vote already exists for this user and post")
	}
	return err
}

// UpdateType flips the stored direction for the pair in place.
func (s *Store) UpdateType(ctx context.Context, userID, postID string, voteType models.VoteType) error {
	return s.db.WithContext(ctx).
		Model(&models.Vote{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Update("type", voteType).Error
}

// Delete removes the vote for the pair.
func (s *Store) Delete(ctx context.Context, userID, postID string) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Vote{}).Error
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
