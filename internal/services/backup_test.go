package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/studyos/internal/backup"
	"github.com/dmitrijs2005/studyos/internal/common"
	"github.com/dmitrijs2005/studyos/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var backupNow = time.UnixMilli(1_700_000_000_000)

func newBackupService(t *testing.T) (BackupService, repoSet) {
	t.Helper()
	_, repos := setupRepos(t)
	s := &backupService{
		files: repos.files,
		decks: repos.decks,
		snaps: repos.snaps,
		log:   testLogger(),
		now:   func() time.Time { return backupNow },
	}
	return s, repos
}

func seedState(t *testing.T, repos repoSet) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, repos.decks.CreateDeck(ctx, "bio"))
	require.NoError(t, repos.decks.AddCard(ctx, "bio", models.NewFlashcard("cell?", "unit of life", backupNow)))
	_, err := repos.files.Add(ctx, &models.StoredFileData{
		StoredFile: models.StoredFile{Name: "diagram.png", MimeType: "image/png", SizeBytes: 3, CreatedAt: backupNow.UnixMilli()},
		Data:       []byte{1, 2, 3},
	})
	require.NoError(t, err)
}

func TestBackupService_ExportProducesValidFullBundle(t *testing.T) {
	s, repos := newBackupService(t)
	seedState(t, repos)

	raw, err := s.Export(context.Background(), nil)
	require.NoError(t, err)

	b, err := backup.ParseBundle(raw)
	require.NoError(t, err)
	assert.Equal(t, backup.ScopeFull, b.Metadata.Type)
	assert.ElementsMatch(t, []string{"decks", "cards", "files"}, b.Metadata.Modules)

	cards, ok := b.Data[ModuleCards].([]any)
	require.True(t, ok)
	require.Len(t, cards, 1)
	card := cards[0].(map[string]any)
	assert.Equal(t, "cell?", card["q"])
	assert.Equal(t, "bio", card["deck"])
	assert.Equal(t, "new", card["status"])
}

func TestBackupService_RoundTripIntoEmptyState(t *testing.T) {
	src, srcRepos := newBackupService(t)
	seedState(t, srcRepos)

	raw, err := src.Export(context.Background(), nil)
	require.NoError(t, err)

	dst, dstRepos := newBackupService(t)
	require.NoError(t, dst.Import(context.Background(), raw, backup.StrategyOverwrite))

	names, err := dstRepos.decks.ListDecks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"bio"}, names)

	cards, err := dstRepos.decks.ListCards(context.Background(), "bio")
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "cell?", cards[0].Question)
	assert.Equal(t, models.StatusNew, cards[0].Status)
	assert.InDelta(t, models.InitialEaseFactor, cards[0].EaseFactor, 1e-9)
}

func TestBackupService_ImportRejectsBadBundleBeforeMutation(t *testing.T) {
	s, repos := newBackupService(t)
	seedState(t, repos)
	ctx := context.Background()

	err := s.Import(ctx, []byte(`{"data": {}}`), backup.StrategyOverwrite)
	assert.ErrorIs(t, err, common.ErrInvalidBundle)

	// nothing was touched
	names, err2 := repos.decks.ListDecks(ctx)
	require.NoError(t, err2)
	assert.Equal(t, []string{"bio"}, names)
}

func TestBackupService_MergeImportIsIdempotent(t *testing.T) {
	s, repos := newBackupService(t)
	seedState(t, repos)
	ctx := context.Background()

	raw := []byte(`{
		"metadata": {"version": 1, "type": "partial", "modules": ["cards"]},
		"data": {"cards": [
			{"id": "imported-1", "deck": "bio", "q": "dna?", "a": "helix",
			 "nextReview": 0, "interval": 0, "easeFactor": 2.5, "status": "new"}
		]}
	}`)

	require.NoError(t, s.Import(ctx, raw, backup.StrategyMerge))
	require.NoError(t, s.Import(ctx, raw, backup.StrategyMerge))

	cards, err := repos.decks.ListCards(ctx, "bio")
	require.NoError(t, err)
	assert.Len(t, cards, 2, "duplicate ids must not be appended twice")
}

func TestBackupService_SnapshotLifecycle(t *testing.T) {
	s, repos := newBackupService(t)
	seedState(t, repos)
	ctx := context.Background()

	ts, err := s.SaveSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, backupNow.UnixMilli(), ts)

	list, err := s.ListSnapshots(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{ts}, list)

	// wreck current state, then restore
	require.NoError(t, repos.decks.DeleteDeck(ctx, "bio"))
	require.NoError(t, s.RestoreSnapshot(ctx, ts))

	names, err := repos.decks.ListDecks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"bio"}, names)

	require.NoError(t, s.DeleteSnapshot(ctx, ts))
	assert.ErrorIs(t, s.RestoreSnapshot(ctx, ts), common.ErrNotFound)
}
