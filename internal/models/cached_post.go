package models

import "time"

// CachedPost is the denormalized snapshot of a post kept in Redis for
// high-traffic posts. CurrentVote holds the direction of whichever user last
// triggered a cache-qualifying vote; it is a single shared slot, not
// per-viewer state.
type CachedPost struct {
	ID             string    `redis:"id"`
	Title          string    `redis:"title"`
	AuthorUsername string    `redis:"author_username"`
	Content        string    `redis:"content"`
	CurrentVote    VoteType  `redis:"current_vote"`
	CreatedAt      time.Time `redis:"created_at"`
}
