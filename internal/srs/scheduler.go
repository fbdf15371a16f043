// Package srs implements the spaced-repetition scheduler and the study queue
// selection. Scheduling is a pure function over a card's state and the user's
// rating; callers persist the returned card themselves.
package srs

import (
	"math"
	"time"

	"github.com/dmitrijs2005/studyos/internal/common"
	"github.com/dmitrijs2005/studyos/internal/models"
)

// Rating is the user's self-assessment after revealing the answer.
type Rating int

const (
	RatingAgain Rating = 1
	RatingHard  Rating = 2
	RatingGood  Rating = 3
	RatingEasy  Rating = 4
)

// Schedule computes a card's next scheduling state from the given rating.
//
// Ratings below Good are the failure band: the interval resets to one day,
// the ease factor loses 0.2 and the card is marked failed. Successful reviews
// either (re)enter the learning phase with a short interval, or, for cards
// already in review, grow the interval by the ease factor. The ease factor
// adjustment on success follows the SM-2 curve and never drops below
// models.MinEaseFactor.
//
// The input card is not modified.
func Schedule(card models.Flashcard, rating Rating, now time.Time) models.Flashcard {
	c := card

	if rating < RatingGood {
		c.IntervalDays = 1
		c.EaseFactor = math.Max(models.MinEaseFactor, c.EaseFactor-0.2)
		c.Status = models.StatusFailed
	} else {
		switch card.Status {
		case models.StatusReview:
			c.IntervalDays = int64(math.Ceil(float64(card.IntervalDays) * card.EaseFactor))
			c.Status = models.StatusReview
		default: // new, learning, failed
			if rating == RatingGood {
				c.IntervalDays = 1
			} else {
				c.IntervalDays = 4
			}
			c.Status = models.StatusLearning
		}

		q := float64(5 - rating)
		c.EaseFactor = card.EaseFactor + (0.1 - q*(0.08+q*0.02))
		if c.EaseFactor < models.MinEaseFactor {
			c.EaseFactor = models.MinEaseFactor
		}
	}

	c.LastReviewedAt = now.UnixMilli()
	c.NextReviewAt = now.UnixMilli() + c.IntervalDays*common.MillisPerDay

	return c
}
