package files

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/studyos/internal/common"
	"github.com/dmitrijs2005/studyos/internal/dbx"
	"github.com/dmitrijs2005/studyos/internal/models"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Add(ctx context.Context, f *models.StoredFileData) (int64, error) {

	folder := f.Folder
	if folder == "" {
		folder = common.DefaultFolder
	}
	tags := f.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return 0, fmt.Errorf("encoding tags: %w", err)
	}

	query := `INSERT INTO files (name, mime_type, size, created_at, tags, folder, data)
			values (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, f.Name, f.MimeType, f.SizeBytes, f.CreatedAt, string(tagsJSON), folder, f.Data)
	if err != nil {
		return 0, fmt.Errorf("%w: insert file: %v", common.ErrStorage, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: last insert id: %v", common.ErrStorage, err)
	}

	return id, nil
}

func (r *SQLiteRepository) ListMetadata(ctx context.Context) ([]models.StoredFile, error) {

	query := `select id, name, mime_type, size, created_at, tags, folder from files order by id desc`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: list files: %v", common.ErrStorage, err)
	}
	defer rows.Close()

	var result []models.StoredFile

	for rows.Next() {
		item, err := scanMetadata(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list files: %v", common.ErrStorage, err)
	}

	return result, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id int64) (*models.StoredFileData, error) {

	query := `select id, name, mime_type, size, created_at, tags, folder, data from files where id=?`
	row := r.db.QueryRowContext(ctx, query, id)

	f := &models.StoredFileData{}
	var tagsJSON string
	err := row.Scan(&f.Id, &f.Name, &f.MimeType, &f.SizeBytes, &f.CreatedAt, &tagsJSON, &f.Folder, &f.Data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get file: %v", common.ErrStorage, err)
	}

	if err := json.Unmarshal([]byte(tagsJSON), &f.Tags); err != nil {
		return nil, fmt.Errorf("decoding tags: %w", err)
	}

	return f, nil
}

func (r *SQLiteRepository) UpdateMetadata(ctx context.Context, id int64, patch models.MetadataPatch) error {

	sets := make([]string, 0, 3)
	args := make([]any, 0, 4)

	if patch.Name != nil {
		sets = append(sets, "name=?")
		args = append(args, *patch.Name)
	}
	if patch.Tags != nil {
		tagsJSON, err := json.Marshal(*patch.Tags)
		if err != nil {
			return fmt.Errorf("encoding tags: %w", err)
		}
		sets = append(sets, "tags=?")
		args = append(args, string(tagsJSON))
	}
	if patch.Folder != nil {
		sets = append(sets, "folder=?")
		args = append(args, *patch.Folder)
	}

	if len(sets) == 0 {
		// nothing to change, but the id must still exist
		var one int
		err := r.db.QueryRowContext(ctx, `select 1 from files where id=?`, id).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("%w: check file: %v", common.ErrStorage, err)
		}
		return nil
	}

	args = append(args, id)
	query := `update files set ` + strings.Join(sets, ", ") + ` where id=?`
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: update file: %v", common.ErrStorage, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected: %v", common.ErrStorage, err)
	}

	if rowsAffected == 0 {
		return common.ErrNotFound
	}

	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {

	result, err := r.db.ExecContext(ctx, `delete from files where id=?`, id)
	if err != nil {
		return fmt.Errorf("%w: delete file: %v", common.ErrStorage, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected: %v", common.ErrStorage, err)
	}

	if rowsAffected == 0 {
		return common.ErrNotFound
	}

	return nil
}

func scanMetadata(scan func(dest ...any) error) (*models.StoredFile, error) {
	f := &models.StoredFile{}
	var tagsJSON string
	if err := scan(&f.Id, &f.Name, &f.MimeType, &f.SizeBytes, &f.CreatedAt, &tagsJSON, &f.Folder); err != nil {
		return nil, fmt.Errorf("%w: scan file: %v", common.ErrStorage, err)
	}
	if err := json.Unmarshal([]byte(tagsJSON), &f.Tags); err != nil {
		return nil, fmt.Errorf("decoding tags: %w", err)
	}
	return f, nil
}
