package book

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepo stores the collection as one row of book_collections.
type PostgresRepo struct {
	db      *pgxpool.Pool
	name    string
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, name string, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, name: name, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) Load(ctx context.Context) ([]Book, error) {
	const query = `SELECT document FROM book_collections WHERE name = $1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var document string
	err := r.db.QueryRow(timeoutCtx, query, r.name).Scan(&document)
	if errors.Is(err, pgx.ErrNoRows) {
		const insert = `
		INSERT INTO book_collections (name, document, updated_at)
		VALUES ($1, '[]', NOW())
		ON CONFLICT (name) DO NOTHING`
		if _, err := r.db.Exec(timeoutCtx, insert, r.name); err != nil {
			return nil, fmt.Errorf("create collection %q: %w", r.name, err)
		}
		return []Book{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read collection %q: %w", r.name, err)
	}

	books, err := unmarshalCollection([]byte(document))
	if err != nil {
		return nil, fmt.Errorf("parse collection %q: %w", r.name, err)
	}
	return books, nil
}

func (r *PostgresRepo) Save(ctx context.Context, books []Book) error {
	const upsert = `
		INSERT INTO book_collections (name, document, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (name) DO UPDATE SET
			document = EXCLUDED.document,
			updated_at = NOW()`

	data, err := marshalCollection(books)
	if err != nil {
		return fmt.Errorf("encode collection %q: %w", r.name, err)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if _, err := r.db.Exec(timeoutCtx, upsert, r.name, string(data)); err != nil {
		return fmt.Errorf("write collection %q: %w", r.name, err)
	}
	return nil
}
