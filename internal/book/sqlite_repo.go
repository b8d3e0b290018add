package book

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS book_collections (
	name TEXT PRIMARY KEY,
	document TEXT NOT NULL DEFAULT '[]',
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// OpenSQLite opens the database at path and makes sure the collection
// table exists.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// SQLiteRepo stores the collection as one row of book_collections.
type SQLiteRepo struct {
	db   *sql.DB
	name string
}

func NewSQLiteRepo(db *sql.DB, name string) *SQLiteRepo {
	return &SQLiteRepo{db: db, name: name}
}

func (r *SQLiteRepo) Load(ctx context.Context) ([]Book, error) {
	var document string
	err := r.db.QueryRowContext(ctx, `SELECT document FROM book_collections WHERE name = ?`, r.name).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		const insert = `INSERT INTO book_collections (name, document) VALUES (?, '[]') ON CONFLICT(name) DO NOTHING`
		if _, err := r.db.ExecContext(ctx, insert, r.name); err != nil {
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

func (r *SQLiteRepo) Save(ctx context.Context, books []Book) error {
	const upsert = `
		INSERT INTO book_collections (name, document, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			document = excluded.document,
			updated_at = CURRENT_TIMESTAMP`

	data, err := marshalCollection(books)
	if err != nil {
		return fmt.Errorf("encode collection %q: %w", r.name, err)
	}
	if _, err := r.db.ExecContext(ctx, upsert, r.name, string(data)); err != nil {
		return fmt.Errorf("write collection %q: %w", r.name, err)
	}
	return nil
}
