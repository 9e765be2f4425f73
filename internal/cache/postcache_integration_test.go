package cache

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/emilythestrangee/breadit/backend/internal/metrics"
	"github.com/emilythestrangee/breadit/backend/internal/models"
	"github.com/prometheus/client_golang/prometheus"
)

var testRedisURL string

func TestMain(m *testing.M) {
	flag.Parse()

	if testing.Short() {
		os.Exit(m.Run())
	}

	ctx := context.Background()

	redisContainer, err := tcredis.Run(ctx, "redis:8-alpine")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start redis container: %v\n", err)
		os.Exit(1)
	}

	defer func() {
		if err := redisContainer.Terminate(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to terminate redis container: %v\n", err)
		}
	}()

	testRedisURL, err = redisContainer.ConnectionString(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to get redis connection string: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

func setupTestCache(t *testing.T) (*PostCache, *goredis.Client) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	rdb, err := NewClient(ctx, testRedisURL)
	require.NoError(t, err)

	t.Cleanup(func() {
		rdb.FlushDB(context.Background())
		rdb.Close()
	})

	return NewPostCache(rdb, metrics.NewCacheMetrics(prometheus.NewRegistry())), rdb
}

func testSnapshot() models.CachedPost {
	return models.CachedPost{
		ID:             "post-1",
		Title:          "hello world",
		AuthorUsername: "alice",
		Content:        `{"blocks":[]}`,
		CurrentVote:    models.VoteUp,
		CreatedAt:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestPostCachePutGetRoundTrip(t *testing.T) {
	postCache, _ := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, postCache.Put(ctx, testSnapshot()))

	got, err := postCache.Get(ctx, "post-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, testSnapshot(), *got)
}

func TestPostCacheGetAbsent(t *testing.T) {
	postCache, _ := setupTestCache(t)

	got, err := postCache.Get(context.Background(), "never-seen")

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPostCachePutOverwrites(t *testing.T) {
	postCache, _ := setupTestCache(t)
	ctx := context.Background()

	first := testSnapshot()
	require.NoError(t, postCache.Put(ctx, first))

	second := first
	second.CurrentVote = models.VoteDown
	second.Title = "hello again"
	require.NoError(t, postCache.Put(ctx, second))

	got, err := postCache.Get(ctx, "post-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.VoteDown, got.CurrentVote)
	assert.Equal(t, "hello again", got.Title)
}

func TestPostCacheStoresHashFields(t *testing.T) {
	postCache, rdb := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, postCache.Put(ctx, testSnapshot()))

	// Entries are stored hash-style under post:{id}, one field per column.
	fields, err := rdb.HGetAll(ctx, "post:post-1").Result()
	require.NoError(t, err)
	assert.Equal(t, "alice", fields["author_username"])
	assert.Equal(t, "UP", fields["current_vote"])
}
