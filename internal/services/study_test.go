package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/studyos/internal/models"
	"github.com/dmitrijs2005/studyos/internal/repositories/decks"
	"github.com/dmitrijs2005/studyos/internal/srs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var studyNow = time.UnixMilli(1_700_000_000_000)

func newStudyService(t *testing.T) (StudyService, decks.Repository) {
	t.Helper()
	_, repos := setupRepos(t)
	s := &studyService{decks: repos.decks, log: testLogger(), now: func() time.Time { return studyNow }, newLimit: 10}
	return s, repos.decks
}

func seedDeck(t *testing.T, repo decks.Repository, deck string, cards ...models.Flashcard) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, repo.CreateDeck(ctx, deck))
	for _, c := range cards {
		require.NoError(t, repo.AddCard(ctx, deck, c))
	}
}

func reviewCard(id string, due int64) models.Flashcard {
	return models.Flashcard{
		Id: id, Question: "q", Answer: "a",
		NextReviewAt: due, IntervalDays: 10, EaseFactor: 2.0,
		Status: models.StatusReview,
	}
}

func TestStudyService_StartBuildsDueQueue(t *testing.T) {
	s, repo := newStudyService(t)

	seedDeck(t, repo, "bio",
		reviewCard("due1", studyNow.UnixMilli()-1),
		reviewCard("due2", studyNow.UnixMilli()),
		reviewCard("later", studyNow.UnixMilli()+1),
	)

	session, err := s.Start(context.Background(), "bio")
	require.NoError(t, err)

	ids := map[string]struct{}{}
	for _, c := range session.Queue {
		ids[c.Id] = struct{}{}
	}
	assert.Equal(t, map[string]struct{}{"due1": {}, "due2": {}}, ids)
}

func TestStudyService_AnswerPersistsImmediately(t *testing.T) {
	s, repo := newStudyService(t)
	ctx := context.Background()

	seedDeck(t, repo, "bio",
		reviewCard("c1", studyNow.UnixMilli()),
		reviewCard("c2", studyNow.UnixMilli()),
	)

	session, err := s.Start(ctx, "bio")
	require.NoError(t, err)
	require.Len(t, session.Queue, 2)

	first := session.Queue[0]
	updated, err := s.Answer(ctx, session, srs.RatingGood)
	require.NoError(t, err)
	assert.Equal(t, int64(20), updated.IntervalDays) // ceil(10 * 2.0)

	// abandon the session here: the answered card must already be durable
	stored, err := repo.ListCards(ctx, "bio")
	require.NoError(t, err)
	for _, c := range stored {
		if c.Id == first.Id {
			assert.Equal(t, int64(20), c.IntervalDays)
			assert.Equal(t, studyNow.UnixMilli(), c.LastReviewedAt)
		}
	}

	assert.Equal(t, 1, session.Answered)
	assert.Equal(t, 1, session.Remaining())
}

func TestStudyService_SessionEndsAfterQueue(t *testing.T) {
	s, repo := newStudyService(t)
	ctx := context.Background()

	seedDeck(t, repo, "bio", reviewCard("only", studyNow.UnixMilli()))

	session, err := s.Start(ctx, "bio")
	require.NoError(t, err)

	_, err = s.Answer(ctx, session, srs.RatingAgain)
	require.NoError(t, err)
	assert.Equal(t, 1, session.Failed)

	_, ok := session.Current()
	assert.False(t, ok)

	_, err = s.Answer(ctx, session, srs.RatingGood)
	assert.ErrorIs(t, err, ErrSessionFinished)
}

func TestStudyService_NewCardsFallback(t *testing.T) {
	s, repo := newStudyService(t)

	seedDeck(t, repo, "fresh",
		models.NewFlashcard("q1", "a1", studyNow),
		models.NewFlashcard("q2", "a2", studyNow),
	)

	session, err := s.Start(context.Background(), "fresh")
	require.NoError(t, err)

	require.Len(t, session.Queue, 2)
	assert.Equal(t, "q1", session.Queue[0].Question)
	assert.Equal(t, "q2", session.Queue[1].Question)
}
