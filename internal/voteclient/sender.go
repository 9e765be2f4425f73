package voteclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/emilythestrangee/breadit/backend/internal/models"
)

// ErrUnauthorized is returned when the server rejects the vote with a 401.
var ErrUnauthorized = errors.New("vote rejected: not logged in")

// HTTPSender issues vote requests against the backend's PATCH endpoint.
type HTTPSender struct {
	client  *http.Client
	baseURL string
	token   string
}

func NewHTTPSender(client *http.Client, baseURL, token string) *HTTPSender {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSender{client: client, baseURL: baseURL, token: token}
}

func (s *HTTPSender) SendVote(ctx context.Context, postID string, voteType models.VoteType) error {
	payload, err := json.Marshal(models.CastVoteRequest{PostID: postID, VoteType: voteType})
	if err != nil {
		return fmt.Errorf("failed to encode vote payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, s.baseURL+"/api/subreddit/post/vote", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build vote request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("vote request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("vote rejected with status %d: %s", resp.StatusCode, body)
	}
	return nil
}
