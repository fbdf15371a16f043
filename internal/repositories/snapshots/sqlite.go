package snapshots

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

func (r *SQLiteRepository) Save(ctx context.Context, ts int64, data string) error {

	query := `INSERT INTO snapshots (ts, data) values (?, ?)
			ON CONFLICT(ts) DO UPDATE SET data = excluded.data`
	_, err := r.db.ExecContext(ctx, query, ts, data)
	if err != nil {
		return fmt.Errorf("%w: save snapshot: %v", common.ErrStorage, err)
	}

	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]int64, error) {

	rows, err := r.db.QueryContext(ctx, `select ts from snapshots order by ts desc`)
	if err != nil {
		return nil, fmt.Errorf("%w: list snapshots: %v", common.ErrStorage, err)
	}
	defer rows.Close()

	var result []int64

	for rows.Next() {
		var ts int64
		if err := rows.Scan(&ts); err != nil {
			return nil, fmt.Errorf("%w: scan snapshot: %v", common.ErrStorage, err)
		}
		result = append(result, ts)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list snapshots: %v", common.ErrStorage, err)
	}

	return result, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, ts int64) (*models.Snapshot, error) {

	row := r.db.QueryRowContext(ctx, `select ts, data from snapshots where ts=?`, ts)

	s := &models.Snapshot{}
	err := row.Scan(&s.Timestamp, &s.Data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get snapshot: %v", common.ErrStorage, err)
	}

	return s, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, ts int64) error {

	result, err := r.db.ExecContext(ctx, `delete from snapshots where ts=?`, ts)
	if err != nil {
		return fmt.Errorf("%w: delete snapshot: %v", common.ErrStorage, err)
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
