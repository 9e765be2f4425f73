package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/breadit/backend/internal/metrics"
	"github.com/emilythestrangee/breadit/backend/internal/models"
	"github.com/emilythestrangee/breadit/backend/internal/votes"
)

// --- Fakes ---

type fakeVoteStore struct {
	existing *models.Vote
	created  []models.Vote
	deleted  int
	updated  int
	err      error
}

func (f *fakeVoteStore) Find(ctx context.Context, userID, postID string) (*models.Vote, error) {
	return f.existing, f.err
}

func (f *fakeVoteStore) Create(ctx context.Context, vote *models.Vote) error {
	f.created = append(f.created, *vote)
	return f.err
}

func (f *fakeVoteStore) UpdateType(ctx context.Context, userID, postID string, voteType models.VoteType) error {
	f.updated++
	return f.err
}

func (f *fakeVoteStore) Delete(ctx context.Context, userID, postID string) error {
	f.deleted++
	return f.err
}

type fakePostFinder struct {
	post *models.Post
	err  error
}

func (f *fakePostFinder) FindByID(ctx context.Context, postID string) (*models.Post, error) {
	return f.post, f.err
}

type fakeSnapshotCache struct {
	puts []models.CachedPost
}

func (f *fakeSnapshotCache) Put(ctx context.Context, snapshot models.CachedPost) error {
	f.puts = append(f.puts, snapshot)
	return nil
}

// --- Helpers ---

func newVoteRouter(t *testing.T, store *fakeVoteStore, posts *fakePostFinder, userID string) (*gin.Engine, *fakeSnapshotCache) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	snapshots := &fakeSnapshotCache{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := votes.NewService(
		store,
		posts,
		snapshots,
		1,
		clockwork.NewFakeClock(),
		metrics.NewVoteMetrics(prometheus.NewRegistry()),
		logger,
	)
	handler := NewVoteHandler(service)

	r := gin.New()
	r.PATCH("/api/subreddit/post/vote", func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
		}
		handler.CastVote(c)
	})
	return r, snapshots
}

func patchVote(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/api/subreddit/post/vote", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func testPost() *models.Post {
	return &models.Post{
		ID:      "post-1",
		Title:   "hello",
		Content: "{}",
		Author:  models.User{Username: "alice"},
	}
}

// --- Tests ---

func TestCastVoteEndpointSuccess(t *testing.T) {
	store := &fakeVoteStore{}
	r, snapshots := newVoteRouter(t, store, &fakePostFinder{post: testPost()}, "user-1")

	w := patchVote(r, `{"postId":"post-1","voteType":"UP"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
	require.Len(t, store.created, 1)
	assert.Equal(t, models.VoteUp, store.created[0].Type)
	require.Len(t, snapshots.puts, 1)
	assert.Equal(t, models.VoteUp, snapshots.puts[0].CurrentVote)
}

func TestCastVoteEndpointUnauthenticated(t *testing.T) {
	r, _ := newVoteRouter(t, &fakeVoteStore{}, &fakePostFinder{post: testPost()}, "")

	w := patchVote(r, `{"postId":"post-1","voteType":"UP"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCastVoteEndpointPostNotFound(t *testing.T) {
	r, _ := newVoteRouter(t, &fakeVoteStore{}, &fakePostFinder{}, "user-1")

	w := patchVote(r, `{"postId":"missing","voteType":"UP"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCastVoteEndpointRejectsBadDirection(t *testing.T) {
	r, _ := newVoteRouter(t, &fakeVoteStore{}, &fakePostFinder{post: testPost()}, "user-1")

	w := patchVote(r, `{"postId":"post-1","voteType":"SIDEWAYS"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	// The validator's message is echoed to the caller.
	assert.Contains(t, w.Body.String(), "VoteType")
}

func TestCastVoteEndpointRejectsMissingBody(t *testing.T) {
	r, _ := newVoteRouter(t, &fakeVoteStore{}, &fakePostFinder{post: testPost()}, "user-1")

	w := patchVote(r, `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCastVoteEndpointStorageFailureIsGeneric(t *testing.T) {
	store := &fakeVoteStore{err: assert.AnError}
	r, _ := newVoteRouter(t, store, &fakePostFinder{post: testPost()}, "user-1")

	w := patchVote(r, `{"postId":"post-1","voteType":"DOWN"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// No internal detail leaks to the caller.
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
	assert.Contains(t, w.Body.String(), "Please try later")
}

func TestCastVoteEndpointToggleOff(t *testing.T) {
	store := &fakeVoteStore{existing: &models.Vote{UserID: "user-1", PostID: "post-1", Type: models.VoteUp}}
	r, snapshots := newVoteRouter(t, store, &fakePostFinder{post: testPost()}, "user-1")

	w := patchVote(r, `{"postId":"post-1","voteType":"UP"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, store.deleted)
	assert.Empty(t, snapshots.puts, "toggle-off must not refresh the cache")
}
