package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/dmitrijs2005/studyos/internal/common"
	"github.com/dmitrijs2005/studyos/internal/imaging"
	"github.com/dmitrijs2005/studyos/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileService(t *testing.T) FileService {
	t.Helper()
	_, repos := setupRepos(t)
	return NewFileService(repos.files, imaging.NewCompressor(testLogger()), testLogger())
}

func TestFileService_AddStoresSmallFileVerbatim(t *testing.T) {
	s := newFileService(t)
	ctx := context.Background()

	data := []byte("hello notes")
	id, err := s.Add(ctx, "notes.txt", "text/plain", data, nil, "")
	require.NoError(t, err)

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "text/plain", got.MimeType)
	assert.Equal(t, int64(len(data)), got.SizeBytes)
	assert.Equal(t, data, got.Data)
	assert.Equal(t, "/", got.Folder)
}

func TestFileService_CorruptImageFallsBackToOriginal(t *testing.T) {
	s := newFileService(t)
	ctx := context.Background()

	// oversized but undecodable: the upload must still succeed with the
	// original payload untouched
	corrupt := bytes.Repeat([]byte{0xab, 0xcd}, imaging.CompressThreshold)
	id, err := s.Add(ctx, "broken.png", "image/png", corrupt, nil, "")
	require.NoError(t, err)

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(len(corrupt)), got.SizeBytes)
	assert.Equal(t, "image/png", got.MimeType, "mime type only changes when compression ran")
	assert.Equal(t, corrupt, got.Data)
}

func TestFileService_MetadataLifecycle(t *testing.T) {
	s := newFileService(t)
	ctx := context.Background()

	id, err := s.Add(ctx, "syllabus.pdf", "application/pdf", []byte("pdf"), []string{"course"}, "/uni")
	require.NoError(t, err)

	folder := "/uni/archive"
	require.NoError(t, s.UpdateMetadata(ctx, id, models.MetadataPatch{Folder: &folder}))

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "/uni/archive", list[0].Folder)
	assert.Equal(t, []string{"course"}, list[0].Tags)

	require.NoError(t, s.Delete(ctx, id))
	assert.ErrorIs(t, s.Delete(ctx, id), common.ErrNotFound)
}
