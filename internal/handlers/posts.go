package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/emilythestrangee/breadit/backend/internal/cache"
	"github.com/emilythestrangee/breadit/backend/internal/models"
	"github.com/emilythestrangee/breadit/backend/internal/votes"
)

const feedSize = 25

type PostHandler struct {
	db    *gorm.DB
	cache *cache.PostCache
	posts *votes.PostRepo
	group singleflight.Group
}

func NewPostHandler(db *gorm.DB, postCache *cache.PostCache) *PostHandler {
	return &PostHandler{
		db:    db,
		cache: postCache,
		posts: votes.NewPostRepo(db),
	}
}

// GetPost returns a single post, serving the cached snapshot when one exists.
// Concurrent cache misses for the same post collapse into one database load.
func (h *PostHandler) GetPost(c *gin.Context) {
	postID := c.Param("id")
	ctx := c.Request.Context()

	snapshot, err := h.cache.Get(ctx, postID)
	if err != nil {
		slog.Warn("Post cache read failed, falling back to database", "post_id", postID, "error", err)
	}
	if snapshot != nil {
		c.JSON(http.StatusOK, gin.H{
			"id":              snapshot.ID,
			"title":           snapshot.Title,
			"content":         snapshot.Content,
			"author_username": snapshot.AuthorUsername,
			"current_vote":    snapshot.CurrentVote,
			"created_at":      snapshot.CreatedAt,
			"cached":          true,
		})
		return
	}

	result, err, _ := h.group.Do(postID, func() (any, error) {
		return h.posts.FindByID(ctx, postID)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post"})
		return
	}

	post := result.(*models.Post)
	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":              post.ID,
		"title":           post.Title,
		"content":         post.Content,
		"author_id":       post.AuthorID,
		"author_username": post.Author.Username,
		"subreddit_id":    post.SubredditID,
		"score":           votes.Score(post.Votes),
		"created_at":      post.CreatedAt,
		"updated_at":      post.UpdatedAt,
	})
}

// CreatePost creates a new post in a subreddit (PROTECTED). The author must
// be subscribed to the community.
func (h *PostHandler) CreatePost(c *gin.Context) {
	var input models.CreatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString("user_id")

	var subreddit models.Subreddit
	if err := h.db.First(&subreddit, "id = ?", input.SubredditID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subreddit not found"})
		return
	}

	var subscription models.Subscription
	if err := h.db.Where("user_id = ? AND subreddit_id = ?", userID, input.SubredditID).First(&subscription).Error; err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Subscribe to post"})
		return
	}

	post := models.Post{
		Title:       input.Title,
		Content:     input.Content,
		AuthorID:    userID,
		SubredditID: input.SubredditID,
	}

	if err := h.db.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not post to subreddit at this time. Please try later"})
		return
	}

	h.db.Preload("Author").First(&post, "id = ?", post.ID)

	c.JSON(http.StatusCreated, post)
}

// Feed returns recent posts from the caller's subscribed communities (PROTECTED)
func (h *PostHandler) Feed(c *gin.Context) {
	userID := c.GetString("user_id")

	var subscriptions []models.Subscription
	if err := h.db.Where("user_id = ?", userID).Find(&subscriptions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch feed"})
		return
	}

	subredditIDs := make([]string, 0, len(subscriptions))
	for _, subscription := range subscriptions {
		subredditIDs = append(subredditIDs, subscription.SubredditID)
	}

	var posts []models.Post
	if len(subredditIDs) > 0 {
		err := h.db.Preload("Author").Preload("Subreddit").Preload("Votes").
			Where("subreddit_id IN ?", subredditIDs).
			Order("created_at desc").
			Limit(feedSize).
			Find(&posts).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch feed"})
			return
		}
	}

	responses := make([]gin.H, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, gin.H{
			"id":              post.ID,
			"title":           post.Title,
			"content":         post.Content,
			"author_id":       post.AuthorID,
			"author_username": post.Author.Username,
			"subreddit":       post.Subreddit.Name,
			"subreddit_id":    post.SubredditID,
			"score":           votes.Score(post.Votes),
			"created_at":      post.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, responses)
}
