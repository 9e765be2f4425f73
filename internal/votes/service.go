package votes

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/emilythestrangee/breadit/backend/internal/apperrors"
	"github.com/emilythestrangee/breadit/backend/internal/metrics"
	"github.com/emilythestrangee/breadit/backend/internal/models"
)

// VoteStore is the subset of vote persistence the service needs.
type VoteStore interface {
	Find(ctx context.Context, userID, postID string) (*models.Vote, error)
	Create(ctx context.Context, vote *models.Vote) error
	UpdateType(ctx context.Context, userID, postID string, voteType models.VoteType) error
	Delete(ctx context.Context, userID, postID string) error
}

// PostFinder loads a post with its author and full vote collection preloaded.
// Returns nil when no such post exists.
type PostFinder interface {
	FindByID(ctx context.Context, postID string) (*models.Post, error)
}

// SnapshotCache receives denormalized snapshots of posts that crossed the
// population threshold.
type SnapshotCache interface {
	Put(ctx context.Context, snapshot models.CachedPost) error
}

// Service applies one user's vote intent against durable state and decides
// whether to refresh the post snapshot cache.
type Service struct {
	store     VoteStore
	posts     PostFinder
	cache     SnapshotCache
	threshold int
	clock     clockwork.Clock
	m         *metrics.VoteMetrics
	log       *slog.Logger
}

func NewService(store VoteStore, posts PostFinder, cache SnapshotCache, threshold int, clock clockwork.Clock, m *metrics.VoteMetrics, log *slog.Logger) *Service {
	return &Service{
		store:     store,
		posts:     posts,
		cache:     cache,
		threshold: threshold,
		clock:     clock,
		m:         m,
		log:       log,
	}
}

// CastVote reconciles a vote intent with toggle/switch/create semantics:
// repeating the stored direction deletes the vote, voting the opposite
// direction flips it in place, and a first vote creates the row. A conflicting
// concurrent create is retried once as an update.
//
// The cache-population decision scores the vote collection loaded before the
// mutation, adjusted by the delta of the action just applied. Toggle-off
// returns without touching the cache at all, which can leave a stale snapshot
// behind after an un-vote; that gap is carried over deliberately from the
// original system.
func (s *Service) CastVote(ctx context.Context, userID, postID string, voteType models.VoteType) error {
	start := s.clock.Now()
	defer func() {
		s.m.ProcessingDuration.Observe(s.clock.Since(start).Seconds())
	}()

	if userID == "" {
		s.m.VotesProcessed.WithLabelValues(metrics.OutcomeRejected).Inc()
		return apperrors.Unauthorized("you must be logged in to vote")
	}
	if !voteType.Valid() {
		s.m.VotesProcessed.WithLabelValues(metrics.OutcomeRejected).Inc()
		return apperrors.Validation("voteType must be UP or DOWN")
	}

	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		s.m.VotesProcessed.WithLabelValues(metrics.OutcomeError).Inc()
		return apperrors.Internal("could not load post", err)
	}
	if post == nil {
		s.m.VotesProcessed.WithLabelValues(metrics.OutcomeRejected).Inc()
		return apperrors.NotFound("post not found")
	}

	existing, err := s.store.Find(ctx, userID, postID)
	if err != nil {
		s.m.VotesProcessed.WithLabelValues(metrics.OutcomeError).Inc()
		return apperrors.Internal("could not load existing vote", err)
	}

	outcome := ""
	delta := 0
	switch {
	case existing != nil && existing.Type == voteType:
		// Toggle-off: same direction repeated, remove the vote. The cache
		// is intentionally not refreshed on this branch.
		if err := s.store.Delete(ctx, userID, postID); err != nil {
			s.m.VotesProcessed.WithLabelValues(metrics.OutcomeError).Inc()
			return apperrors.Internal("could not remove vote", err)
		}
		s.m.VotesProcessed.WithLabelValues(metrics.OutcomeToggled).Inc()
		return nil

	case existing != nil:
		// Switch: flip the stored direction in place.
		if err := s.store.UpdateType(ctx, userID, postID, voteType); err != nil {
			s.m.VotesProcessed.WithLabelValues(metrics.OutcomeError).Inc()
			return apperrors.Internal("could not update vote", err)
		}
		outcome = metrics.OutcomeSwitched
		delta = 2

	default:
		if err := s.createOrRecover(ctx, userID, postID, voteType); err != nil {
			s.m.VotesProcessed.WithLabelValues(metrics.OutcomeError).Inc()
			return err
		}
		outcome = metrics.OutcomeCreated
		delta = 1
	}
	if voteType == models.VoteDown {
		delta = -delta
	}

	s.maybePopulateCache(ctx, post, voteType, delta)
	s.m.VotesProcessed.WithLabelValues(outcome).Inc()
	return nil
}

// createOrRecover inserts the vote, retrying once as an update when a
// concurrent request created the row first.
func (s *Service) createOrRecover(ctx context.Context, userID, postID string, voteType models.VoteType) error {
	err := s.store.Create(ctx, &models.Vote{UserID: userID, PostID: postID, Type: voteType})
	if err == nil {
		return nil
	}

	var structured *apperrors.Error
	if errors.As(err, &structured) && structured.Kind == apperrors.KindConflict {
		s.log.Warn("Concurrent vote create collided, retrying as update",
			"user_id", userID,
			"post_id", postID,
		)
		if err := s.store.UpdateType(ctx, userID, postID, voteType); err != nil {
			return apperrors.Internal("could not recover conflicting vote", err)
		}
		return nil
	}

	return apperrors.Internal("could not create vote", err)
}

// maybePopulateCache writes a snapshot when the score meets the threshold.
// The score is the pre-mutation vote collection plus the applied action's
// delta, so it matches the state just committed. CurrentVote records the
// direction just applied, not aggregate state. Cache failures are logged and
// swallowed; the durable vote is the source of truth.
func (s *Service) maybePopulateCache(ctx context.Context, post *models.Post, voteType models.VoteType, delta int) {
	if Score(post.Votes)+delta < s.threshold {
		return
	}

	snapshot := models.CachedPost{
		ID:             post.ID,
		Title:          post.Title,
		AuthorUsername: post.Author.Username,
		Content:        post.Content,
		CurrentVote:    voteType,
		CreatedAt:      post.CreatedAt,
	}

	if err := s.cache.Put(ctx, snapshot); err != nil {
		s.log.Warn("Failed to populate post cache",
			"post_id", post.ID,
			"error", err,
		)
	}
}
