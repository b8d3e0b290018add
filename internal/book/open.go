package book

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bookshelf/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// OpenRepository builds the Repository selected by cfg.Driver. The returned
// close function releases any connection the backend holds.
func OpenRepository(ctx context.Context, cfg config.StoreConfig) (Repository, func(), error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	switch cfg.Driver {
	case config.DriverFile, "":
		return NewFileRepo(cfg.FilePath), func() {}, nil

	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot create db pool: %w", err)
		}
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := pool.Ping(pingCtx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("cannot ping database (%s): %w", RedactDSN(cfg.DSN), err)
		}
		return NewPostgresRepo(pool, cfg.Collection, timeout), pool.Close, nil

	case config.DriverSQLite:
		db, err := OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open sqlite database %s: %w", cfg.SQLitePath, err)
		}
		return NewSQLiteRepo(db, cfg.Collection), func() { _ = db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// RedactDSN hides the credentials of a connection string for logging.
func RedactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
