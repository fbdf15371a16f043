// Package services contains the application services the CLI drives: file
// uploads, study sessions and backup/restore.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/studyos/internal/imaging"
	"github.com/dmitrijs2005/studyos/internal/logging"
	"github.com/dmitrijs2005/studyos/internal/models"
	"github.com/dmitrijs2005/studyos/internal/repositories/files"
)

type FileService interface {
	// Add stores a file, transparently compressing oversized raster images,
	// and returns the assigned id.
	Add(ctx context.Context, name, mimeType string, data []byte, tags []string, folder string) (int64, error)
	List(ctx context.Context) ([]models.StoredFile, error)
	Get(ctx context.Context, id int64) (*models.StoredFileData, error)
	UpdateMetadata(ctx context.Context, id int64, patch models.MetadataPatch) error
	Delete(ctx context.Context, id int64) error
}

type fileService struct {
	repo files.Repository
	comp *imaging.Compressor
	log  logging.Logger
	now  func() time.Time
}

func NewFileService(repo files.Repository, comp *imaging.Compressor, log logging.Logger) FileService {
	return &fileService{repo: repo, comp: comp, log: log, now: time.Now}
}

func (s *fileService) Add(ctx context.Context, name, mimeType string, data []byte, tags []string, folder string) (int64, error) {

	payload, compressed := s.comp.Compress(ctx, name, mimeType, data)
	if compressed {
		s.log.Debug(ctx, "image compressed", "file", name, "from", len(data), "to", len(payload))
		mimeType = "image/jpeg"
	}

	f := &models.StoredFileData{
		StoredFile: models.StoredFile{
			Name:      name,
			MimeType:  mimeType,
			SizeBytes: int64(len(payload)),
			CreatedAt: s.now().UnixMilli(),
			Tags:      tags,
			Folder:    folder,
		},
		Data: payload,
	}

	id, err := s.repo.Add(ctx, f)
	if err != nil {
		return 0, fmt.Errorf("saving file: %w", err)
	}

	return id, nil
}

func (s *fileService) List(ctx context.Context) ([]models.StoredFile, error) {
	result, err := s.repo.ListMetadata(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}
	return result, nil
}

func (s *fileService) Get(ctx context.Context, id int64) (*models.StoredFileData, error) {
	f, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("retrieving file: %w", err)
	}
	return f, nil
}

func (s *fileService) UpdateMetadata(ctx context.Context, id int64, patch models.MetadataPatch) error {
	if err := s.repo.UpdateMetadata(ctx, id, patch); err != nil {
		return fmt.Errorf("updating file metadata: %w", err)
	}
	return nil
}

// Delete removes the record. References to the id held by other entities
// (notes, tasks) are left dangling on purpose.
func (s *fileService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting file: %w", err)
	}
	return nil
}
