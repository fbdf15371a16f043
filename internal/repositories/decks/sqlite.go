package decks

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/studyos/internal/common"
	"github.com/dmitrijs2005/studyos/internal/dbx"
	"github.com/dmitrijs2005/studyos/internal/models"
)

// SQLiteRepository holds *sql.DB rather than dbx.DBTX because ReplaceAll and
// DeleteDeck run multi-statement transactions via dbx.WithTx.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) CreateDeck(ctx context.Context, name string) error {

	_, err := r.db.ExecContext(ctx, `INSERT INTO decks (name) values (?)`, name)
	if err != nil {
		return fmt.Errorf("%w: insert deck: %v", common.ErrStorage, err)
	}

	return nil
}

func (r *SQLiteRepository) ListDecks(ctx context.Context) ([]string, error) {

	rows, err := r.db.QueryContext(ctx, `select name from decks order by rowid`)
	if err != nil {
		return nil, fmt.Errorf("%w: list decks: %v", common.ErrStorage, err)
	}
	defer rows.Close()

	var result []string

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w: scan deck: %v", common.ErrStorage, err)
		}
		result = append(result, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list decks: %v", common.ErrStorage, err)
	}

	return result, nil
}

func (r *SQLiteRepository) DeleteDeck(ctx context.Context, name string) error {

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `delete from cards where deck=?`, name); err != nil {
			return fmt.Errorf("%w: delete deck cards: %v", common.ErrStorage, err)
		}

		result, err := tx.ExecContext(ctx, `delete from decks where name=?`, name)
		if err != nil {
			return fmt.Errorf("%w: delete deck: %v", common.ErrStorage, err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("%w: rows affected: %v", common.ErrStorage, err)
		}
		if rowsAffected == 0 {
			return common.ErrNotFound
		}
		return nil
	})
}

func (r *SQLiteRepository) AddCard(ctx context.Context, deck string, card models.Flashcard) error {

	query := `INSERT INTO cards (id, deck, q, a, q_image_id, a_image_id, last_reviewed,
				next_review, interval, ease_factor, status, position)
			values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
				(select COALESCE(MAX(position), 0) + 1 from cards where deck=?))`
	_, err := r.db.ExecContext(ctx, query, card.Id, deck, card.Question, card.Answer,
		card.QuestionImageId, card.AnswerImageId, card.LastReviewedAt,
		card.NextReviewAt, card.IntervalDays, card.EaseFactor, card.Status, deck)
	if err != nil {
		return fmt.Errorf("%w: insert card: %v", common.ErrStorage, err)
	}

	return nil
}

const cardColumns = `id, q, a, q_image_id, a_image_id, last_reviewed, next_review, interval, ease_factor, status`

func scanCard(scan func(dest ...any) error, extra ...any) (models.Flashcard, error) {
	var c models.Flashcard
	dest := []any{&c.Id, &c.Question, &c.Answer, &c.QuestionImageId, &c.AnswerImageId,
		&c.LastReviewedAt, &c.NextReviewAt, &c.IntervalDays, &c.EaseFactor, &c.Status}
	dest = append(dest, extra...)
	if err := scan(dest...); err != nil {
		return c, fmt.Errorf("%w: scan card: %v", common.ErrStorage, err)
	}
	return c, nil
}

func (r *SQLiteRepository) ListCards(ctx context.Context, deck string) ([]models.Flashcard, error) {

	query := `select ` + cardColumns + ` from cards where deck=? order by position`
	rows, err := r.db.QueryContext(ctx, query, deck)
	if err != nil {
		return nil, fmt.Errorf("%w: list cards: %v", common.ErrStorage, err)
	}
	defer rows.Close()

	var result []models.Flashcard

	for rows.Next() {
		c, err := scanCard(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list cards: %v", common.ErrStorage, err)
	}

	return result, nil
}

func (r *SQLiteRepository) ListAllCards(ctx context.Context) ([]DeckCard, error) {

	query := `select ` + cardColumns + `, deck from cards order by deck, position`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: list cards: %v", common.ErrStorage, err)
	}
	defer rows.Close()

	var result []DeckCard

	for rows.Next() {
		var deck string
		c, err := scanCard(rows.Scan, &deck)
		if err != nil {
			return nil, err
		}
		result = append(result, DeckCard{Flashcard: c, Deck: deck})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list cards: %v", common.ErrStorage, err)
	}

	return result, nil
}

func (r *SQLiteRepository) UpdateScheduling(ctx context.Context, card models.Flashcard) error {

	query := `update cards set last_reviewed=?, next_review=?, interval=?, ease_factor=?, status=?
			where id=?`
	result, err := r.db.ExecContext(ctx, query, card.LastReviewedAt, card.NextReviewAt,
		card.IntervalDays, card.EaseFactor, card.Status, card.Id)
	if err != nil {
		return fmt.Errorf("%w: update card: %v", common.ErrStorage, err)
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

func (r *SQLiteRepository) ReplaceAll(ctx context.Context, decks []string, cards []DeckCard) error {

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `delete from cards`); err != nil {
			return fmt.Errorf("%w: clear cards: %v", common.ErrStorage, err)
		}
		if _, err := tx.ExecContext(ctx, `delete from decks`); err != nil {
			return fmt.Errorf("%w: clear decks: %v", common.ErrStorage, err)
		}

		known := make(map[string]bool, len(decks))
		for _, name := range decks {
			known[name] = true
			if _, err := tx.ExecContext(ctx, `INSERT INTO decks (name) values (?)`, name); err != nil {
				return fmt.Errorf("%w: insert deck: %v", common.ErrStorage, err)
			}
		}
		// merged bundles may carry cards for decks the deck list omits
		for _, c := range cards {
			if !known[c.Deck] {
				known[c.Deck] = true
				if _, err := tx.ExecContext(ctx, `INSERT INTO decks (name) values (?)`, c.Deck); err != nil {
					return fmt.Errorf("%w: insert deck: %v", common.ErrStorage, err)
				}
			}
		}

		positions := make(map[string]int64, len(decks))
		for _, c := range cards {
			positions[c.Deck]++
			query := `INSERT INTO cards (id, deck, q, a, q_image_id, a_image_id, last_reviewed,
						next_review, interval, ease_factor, status, position)
					values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
			_, err := tx.ExecContext(ctx, query, c.Id, c.Deck, c.Question, c.Answer,
				c.QuestionImageId, c.AnswerImageId, c.LastReviewedAt,
				c.NextReviewAt, c.IntervalDays, c.EaseFactor, c.Status, positions[c.Deck])
			if err != nil {
				return fmt.Errorf("%w: insert card: %v", common.ErrStorage, err)
			}
		}

		return nil
	})
}
