package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/breadit/backend/internal/apperrors"
	"github.com/emilythestrangee/breadit/backend/internal/models"
	"github.com/emilythestrangee/breadit/backend/internal/votes"
)

type VoteHandler struct {
	service *votes.Service
}

func NewVoteHandler(service *votes.Service) *VoteHandler {
	return &VoteHandler{service: service}
}

// CastVote applies the caller's vote intent to a post (PROTECTED).
// Validation failures echo the validator's message; storage failures map to a
// generic retry-later message.
func (h *VoteHandler) CastVote(c *gin.Context) {
	var input models.CastVoteRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString("user_id")

	if err := h.service.CastVote(c.Request.Context(), userID, input.PostID, input.VoteType); err != nil {
		appErr := apperrors.As(err)
		message := appErr.Message
		if appErr.Kind == apperrors.KindInternal {
			message = "Could not register your vote at this time. Please try later"
		}
		c.JSON(appErr.HTTPStatus(), gin.H{"error": message})
		return
	}

	c.String(http.StatusOK, "OK")
}
