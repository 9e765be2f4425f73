// Package voteclient implements the client-side optimistic vote state
// machine: the predicted score change is applied before the network call is
// issued, and rolled back if the call fails.
package voteclient

import (
	"context"
	"errors"
	"sync"

	"github.com/emilythestrangee/breadit/backend/internal/models"
)

// None is the logical third vote state: the user has no stored vote.
const None = models.VoteType("")

// Sender issues the authoritative vote request.
type Sender interface {
	SendVote(ctx context.Context, postID string, voteType models.VoteType) error
}

// Notifier surfaces user-visible notices for failed votes.
type Notifier interface {
	LoginRequired()
	VoteFailed(err error)
}

// State is the client-local mirror of the authoritative vote state.
type State struct {
	CurrentVote models.VoteType
	VotesAmt    int
}

// Client predicts the effect of a vote action synchronously, then reconciles
// with the server in the background. Only one pending mutation's rollback
// target is remembered at a time: a single previous-state slot, not an undo
// stack.
type Client struct {
	postID   string
	sender   Sender
	notifier Notifier

	mu    sync.Mutex
	state State
	prev  State

	wg sync.WaitGroup
}

func New(postID string, initialVote models.VoteType, initialVotesAmt int, sender Sender, notifier Notifier) *Client {
	return &Client{
		postID:   postID,
		sender:   sender,
		notifier: notifier,
		state: State{
			CurrentVote: initialVote,
			VotesAmt:    initialVotesAmt,
		},
	}
}

// Vote applies the predicted state transition immediately and issues the
// network call concurrently. On failure the state rolls back to the value it
// had just before this action and the notifier is invoked.
func (c *Client) Vote(ctx context.Context, direction models.VoteType) {
	c.mu.Lock()
	c.prev = c.state

	if c.state.CurrentVote == direction {
		// Predicted toggle-off.
		c.state.CurrentVote = None
		if direction == models.VoteUp {
			c.state.VotesAmt--
		} else {
			c.state.VotesAmt++
		}
	} else {
		// Switch or fresh vote: magnitude 2 when replacing an opposite
		// vote, 1 when starting from none.
		delta := 1
		if c.state.CurrentVote != None {
			delta = 2
		}
		if direction == models.VoteDown {
			delta = -delta
		}
		c.state.CurrentVote = direction
		c.state.VotesAmt += delta
	}
	c.mu.Unlock()

	c.wg.Add(1)
	go c.send(ctx, direction)
}

func (c *Client) send(ctx context.Context, direction models.VoteType) {
	defer c.wg.Done()

	err := c.sender.SendVote(ctx, c.postID, direction)
	if err == nil {
		// Predicted state is trusted until the next authoritative read.
		return
	}

	c.mu.Lock()
	c.state = c.prev
	c.mu.Unlock()

	if errors.Is(err, ErrUnauthorized) {
		c.notifier.LoginRequired()
		return
	}
	c.notifier.VoteFailed(err)
}

// State returns the current predicted state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Refresh replaces the predicted state with fresh authoritative data.
func (c *Client) Refresh(vote models.VoteType, votesAmt int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = State{CurrentVote: vote, VotesAmt: votesAmt}
}

// Wait blocks until all in-flight vote requests have settled.
func (c *Client) Wait() {
	c.wg.Wait()
}
