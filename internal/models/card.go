package models

import (
	"time"

	"github.com/google/uuid"
)

// CardStatus classifies where a flashcard sits in its review lifecycle.
type CardStatus string

const (
	StatusNew      CardStatus = "new"
	StatusLearning CardStatus = "learning"
	StatusReview   CardStatus = "review"
	StatusFailed   CardStatus = "failed"
)

const (
	// InitialEaseFactor is assigned to freshly created cards.
	InitialEaseFactor = 2.5

	// MinEaseFactor is the floor below which the ease factor never drops.
	MinEaseFactor = 1.3
)

// Flashcard is a single spaced-repetition unit. Scheduling fields are only
// mutated by the scheduler during review.
type Flashcard struct {
	Id string `json:"id"`

	// Question and Answer hold rich text (HTML fragments in practice).
	Question string `json:"q"`
	Answer   string `json:"a"`

	// Optional blob-store ids for attached images. Zero means none.
	QuestionImageId int64 `json:"q_image_id,omitempty"`
	AnswerImageId   int64 `json:"a_image_id,omitempty"`

	// LastReviewedAt is epoch ms of the last review, 0 if never reviewed.
	LastReviewedAt int64 `json:"lastReviewed,omitempty"`

	// NextReviewAt is the due time in epoch ms.
	NextReviewAt int64 `json:"nextReview"`

	// IntervalDays is the current review interval, non-negative.
	IntervalDays int64 `json:"interval"`

	// EaseFactor controls interval growth; never below MinEaseFactor.
	EaseFactor float64 `json:"easeFactor"`

	Status CardStatus `json:"status"`
}

// NewFlashcard creates a card in its initial scheduling state: due
// immediately, zero interval, default ease.
func NewFlashcard(question, answer string, now time.Time) Flashcard {
	return Flashcard{
		Id:           uuid.NewString(),
		Question:     question,
		Answer:       answer,
		NextReviewAt: now.UnixMilli(),
		IntervalDays: 0,
		EaseFactor:   InitialEaseFactor,
		Status:       StatusNew,
	}
}

// Deck is a named, ordered collection of flashcards. The name acts as the
// identifier; a deck owns its cards exclusively.
type Deck struct {
	Name  string      `json:"name"`
	Cards []Flashcard `json:"cards,omitempty"`
}
