package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/emilythestrangee/breadit/backend/internal/models"
)

type SubredditHandler struct {
	db *gorm.DB
}

func NewSubredditHandler(db *gorm.DB) *SubredditHandler {
	return &SubredditHandler{db: db}
}

// Create creates a new subreddit and subscribes the creator (PROTECTED)
func (h *SubredditHandler) Create(c *gin.Context) {
	var input models.CreateSubredditRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString("user_id")

	var existing models.Subreddit
	if err := h.db.Where("name = ?", input.Name).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Subreddit already exists"})
		return
	}

	subreddit := models.Subreddit{
		Name:        input.Name,
		Description: input.Description,
		CreatorID:   userID,
	}

	if err := h.db.Create(&subreddit).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create the subreddit"})
		return
	}

	// The creator starts out subscribed to their own community.
	subscription := models.Subscription{
		UserID:      userID,
		SubredditID: subreddit.ID,
	}
	if err := h.db.Create(&subscription).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create the subreddit"})
		return
	}

	c.String(http.StatusCreated, subreddit.Name)
}

// Get returns a subreddit by name with its subscriber count
func (h *SubredditHandler) Get(c *gin.Context) {
	name := c.Param("name")

	var subreddit models.Subreddit
	if err := h.db.Preload("Creator").Where("name = ?", name).First(&subreddit).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subreddit not found"})
		return
	}

	var subscriberCount int64
	h.db.Model(&models.Subscription{}).Where("subreddit_id = ?", subreddit.ID).Count(&subscriberCount)

	isSubscribed := false
	if userID := c.GetString("user_id"); userID != "" {
		var subscription models.Subscription
		err := h.db.Where("user_id = ? AND subreddit_id = ?", userID, subreddit.ID).First(&subscription).Error
		isSubscribed = err == nil
	}

	c.JSON(http.StatusOK, gin.H{
		"id":               subreddit.ID,
		"name":             subreddit.Name,
		"description":      subreddit.Description,
		"creator_id":       subreddit.CreatorID,
		"subscriber_count": subscriberCount,
		"is_subscribed":    isSubscribed,
		"created_at":       subreddit.CreatedAt,
	})
}

// Subscribe joins the caller to a subreddit (PROTECTED)
func (h *SubredditHandler) Subscribe(c *gin.Context) {
	var input models.SubscribeRequest
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

	var existing models.Subscription
	if err := h.db.Where("user_id = ? AND subreddit_id = ?", userID, input.SubredditID).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "You are already subscribed to this subreddit"})
		return
	}

	subscription := models.Subscription{
		UserID:      userID,
		SubredditID: input.SubredditID,
	}
	if err := h.db.Create(&subscription).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not subscribe, please try again later"})
		return
	}

	c.String(http.StatusOK, input.SubredditID)
}

// Unsubscribe removes the caller from a subreddit (PROTECTED)
func (h *SubredditHandler) Unsubscribe(c *gin.Context) {
	var input models.SubscribeRequest
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

	if subreddit.CreatorID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You can't unsubscribe from your own subreddit"})
		return
	}

	var subscription models.Subscription
	if err := h.db.Where("user_id = ? AND subreddit_id = ?", userID, input.SubredditID).First(&subscription).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You are not subscribed to this subreddit"})
		return
	}

	if err := h.db.Delete(&subscription).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not unsubscribe, please try again later"})
		return
	}

	c.String(http.StatusOK, input.SubredditID)
}
