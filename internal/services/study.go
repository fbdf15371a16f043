package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/studyos/internal/logging"
	"github.com/dmitrijs2005/studyos/internal/models"
	"github.com/dmitrijs2005/studyos/internal/repositories/decks"
	"github.com/dmitrijs2005/studyos/internal/srs"
)

var ErrSessionFinished = errors.New("session finished")

// Session walks a fixed queue of cards. The queue is built once at session
// start and never re-evaluated; answered cards are persisted immediately, so
// quitting early loses nothing.
type Session struct {
	Deck  string
	Queue []models.Flashcard

	pos      int
	Answered int
	Failed   int
}

// Current returns the card waiting for an answer, or false when the session
// is over.
func (s *Session) Current() (models.Flashcard, bool) {
	if s.pos >= len(s.Queue) {
		return models.Flashcard{}, false
	}
	return s.Queue[s.pos], true
}

func (s *Session) Remaining() int {
	return len(s.Queue) - s.pos
}

type StudyService interface {
	// Start builds the study queue for a deck.
	Start(ctx context.Context, deck string) (*Session, error)

	// Answer applies the rating to the session's current card, persists the
	// new scheduling state and advances the session.
	Answer(ctx context.Context, session *Session, rating srs.Rating) (models.Flashcard, error)
}

type studyService struct {
	decks    decks.Repository
	log      logging.Logger
	now      func() time.Time
	newLimit int
}

func NewStudyService(repo decks.Repository, log logging.Logger, newLimit int) StudyService {
	return &studyService{decks: repo, log: log, now: time.Now, newLimit: newLimit}
}

func (s *studyService) Start(ctx context.Context, deck string) (*Session, error) {

	cards, err := s.decks.ListCards(ctx, deck)
	if err != nil {
		return nil, fmt.Errorf("loading deck: %w", err)
	}

	queue := srs.BuildQueue(cards, s.now(), s.newLimit)
	s.log.Info(ctx, "study session started", "deck", deck, "queue", len(queue))

	return &Session{Deck: deck, Queue: queue}, nil
}

func (s *studyService) Answer(ctx context.Context, session *Session, rating srs.Rating) (models.Flashcard, error) {

	card, ok := session.Current()
	if !ok {
		return models.Flashcard{}, ErrSessionFinished
	}

	updated := srs.Schedule(card, rating, s.now())

	if err := s.decks.UpdateScheduling(ctx, updated); err != nil {
		return models.Flashcard{}, fmt.Errorf("saving review: %w", err)
	}

	session.pos++
	session.Answered++
	if rating < srs.RatingGood {
		session.Failed++
	}

	return updated, nil
}
