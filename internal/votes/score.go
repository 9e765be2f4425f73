package votes

import "github.com/emilythestrangee/breadit/backend/internal/models"

// Score derives a post's net score from its vote rows: +1 per upvote, -1 per
// downvote. The empty collection scores 0 and ordering is irrelevant.
func Score(collection []models.Vote) int {
	score := 0
	for _, vote := range collection {
		switch vote.Type {
		case models.VoteUp:
			score++
		case models.VoteDown:
			score--
		}
	}
	return score
}
