package srs

import (
	"math/rand/v2"
	"time"

	"github.com/dmitrijs2005/studyos/internal/models"
)

// DefaultNewCardLimit caps how many unseen cards a session introduces when no
// reviews are due.
const DefaultNewCardLimit = 10

// BuildQueue selects the cards to study right now.
//
// Primary selection: every card that is due (nextReview <= now) and has been
// seen before, in randomized order. When nothing is due, up to newLimit cards
// with status new are offered instead, in deck order. A non-positive newLimit
// falls back to DefaultNewCardLimit.
func BuildQueue(cards []models.Flashcard, now time.Time, newLimit int) []models.Flashcard {
	if newLimit <= 0 {
		newLimit = DefaultNewCardLimit
	}

	nowMs := now.UnixMilli()

	var due []models.Flashcard
	for _, c := range cards {
		if c.NextReviewAt <= nowMs && c.Status != models.StatusNew {
			due = append(due, c)
		}
	}

	if len(due) > 0 {
		rand.Shuffle(len(due), func(i, j int) {
			due[i], due[j] = due[j], due[i]
		})
		return due
	}

	var fresh []models.Flashcard
	for _, c := range cards {
		if c.Status == models.StatusNew {
			fresh = append(fresh, c)
			if len(fresh) == newLimit {
				break
			}
		}
	}

	return fresh
}
