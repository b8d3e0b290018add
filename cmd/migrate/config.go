package main

import (
	"fmt"
	"os"

	"bookshelf/internal/config"
)

func migrationsDir() string {
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return "db/migrations"
}

// dialectFor maps a store driver to the goose dialect that manages its schema.
// The file store has no schema.
func dialectFor(driver string) (string, error) {
	switch driver {
	case config.DriverPostgres:
		return "postgres", nil
	case config.DriverSQLite:
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("store driver %q has no migrations; set BOOKS_STORE to %s or %s",
			driver, config.DriverPostgres, config.DriverSQLite)
	}
}
