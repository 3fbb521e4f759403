// Package vocab implements the vocabulary repository using PostgreSQL.
// The word list is a flat ordered sheet; imports replace it wholesale.
package vocab

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/tuantran92/spelling-bee/internal/adapter/postgres"
	"github.com/tuantran92/spelling-bee/internal/domain"
)

// Filter narrows a vocabulary listing. Zero values mean "any".
type Filter struct {
	Category   string
	Difficulty string
}

// Repo provides vocabulary persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	txm  *postgres.TxManager
	sb   sq.StatementBuilderType
}

// New creates a new vocabulary repository.
func New(pool *pgxpool.Pool, txm *postgres.TxManager) *Repo {
	return &Repo{
		pool: pool,
		txm:  txm,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// List returns the full vocabulary in sheet order.
func (r *Repo) List(ctx context.Context) ([]domain.VocabWord, error) {
	return r.ListFiltered(ctx, Filter{})
}

// ListFiltered returns the vocabulary matching the filter, in sheet order.
func (r *Repo) ListFiltered(ctx context.Context, f Filter) ([]domain.VocabWord, error) {
	b := r.sb.
		Select("word", "meaning", "example", "category", "difficulty").
		From("vocab_words").
		OrderBy("position ASC")
	if f.Category != "" {
		b = b.Where(sq.Eq{"category": f.Category})
	}
	if f.Difficulty != "" {
		b = b.Where(sq.Eq{"difficulty": f.Difficulty})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build vocab query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list vocab: %w", err)
	}
	defer rows.Close()

	var out []domain.VocabWord
	for rows.Next() {
		var w domain.VocabWord
		if err := rows.Scan(&w.Word, &w.Meaning, &w.Example, &w.Category, &w.Difficulty); err != nil {
			return nil, fmt.Errorf("scan vocab row: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// ReplaceAll swaps the whole sheet in one transaction. Word progress is kept:
// records for words no longer on the sheet simply stop being surfaced.
func (r *Repo) ReplaceAll(ctx context.Context, words []domain.VocabWord) error {
	return r.txm.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, r.pool)

		if _, err := q.Exec(ctx, `DELETE FROM vocab_words`); err != nil {
			return fmt.Errorf("clear vocab: %w", err)
		}

		batch := &pgx.Batch{}
		for i, w := range words {
			key := w.Key()
			if key == "" {
				continue
			}
			batch.Queue(
				`INSERT INTO vocab_words (word, meaning, example, category, difficulty, position)
				 VALUES ($1, $2, $3, $4, $5, $6)
				 ON CONFLICT (word) DO UPDATE SET
				   meaning = EXCLUDED.meaning, example = EXCLUDED.example,
				   category = EXCLUDED.category, difficulty = EXCLUDED.difficulty,
				   position = EXCLUDED.position, updated_at = now()`,
				key, w.Meaning, w.Example, w.Category, w.Difficulty, i,
			)
		}
		if err := q.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert vocab: %w", err)
		}
		return nil
	})
}
