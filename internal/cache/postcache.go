package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"

	"github.com/emilythestrangee/breadit/backend/internal/metrics"
	"github.com/emilythestrangee/breadit/backend/internal/models"
)

// PostCache stores denormalized post snapshots as Redis hashes keyed
// "post:{id}". Entries are overwritten on every qualifying write; no TTL.
//
// All operations pass through a circuit breaker so a slow or dead Redis
// cannot drag down the vote path it is meant to relieve.
type PostCache struct {
	rdb *goredis.Client
	cb  *gobreaker.CircuitBreaker
	m   *metrics.CacheMetrics
}

func NewPostCache(rdb *goredis.Client, m *metrics.CacheMetrics) *PostCache {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "post-cache",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 5 && counts.TotalFailures*10 >= counts.Requests*6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Cache circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})

	return &PostCache{rdb: rdb, cb: cb, m: m}
}

// Put overwrites the snapshot for the post. Any prior entry is replaced
// wholesale, last writer wins.
func (c *PostCache) Put(ctx context.Context, snapshot models.CachedPost) error {
	fields := map[string]any{
		"id":              snapshot.ID,
		"title":           snapshot.Title,
		"author_username": snapshot.AuthorUsername,
		"content":         snapshot.Content,
		"current_vote":    string(snapshot.CurrentVote),
		"created_at":      snapshot.CreatedAt.UTC().Format(time.RFC3339Nano),
	}

	_, err := c.cb.Execute(func() (any, error) {
		return nil, c.rdb.HSet(ctx, postKey(snapshot.ID), fields).Err()
	})
	if err != nil {
		c.m.WriteErrors.Inc()
		return fmt.Errorf("failed to write post snapshot: %w", err)
	}

	c.m.Writes.Inc()
	return nil
}

// Get returns the snapshot for the post, or nil if none is cached.
func (c *PostCache) Get(ctx context.Context, postID string) (*models.CachedPost, error) {
	result, err := c.cb.Execute(func() (any, error) {
		return c.rdb.HGetAll(ctx, postKey(postID)).Result()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read post snapshot: %w", err)
	}

	fields := result.(map[string]string)
	if len(fields) == 0 {
		c.m.Misses.Inc()
		return nil, nil
	}

	snapshot := &models.CachedPost{
		ID:             fields["id"],
		Title:          fields["title"],
		AuthorUsername: fields["author_username"],
		Content:        fields["content"],
		CurrentVote:    models.VoteType(fields["current_vote"]),
	}

	if raw := fields["created_at"]; raw != "" {
		createdAt, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, fmt.Errorf("post snapshot has invalid created_at %q: %w", raw, err)
		}
		snapshot.CreatedAt = createdAt
	}

	c.m.Hits.Inc()
	return snapshot, nil
}

func postKey(postID string) string {
	return "post:" + postID
}
