package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=book

// Repository persists the whole collection as a single document.
// Load returns an empty, non-nil slice when the document does not exist yet,
// creating it on the way. Save replaces the document in full.
type Repository interface {
	Load(ctx context.Context) ([]Book, error)
	Save(ctx context.Context, books []Book) error
}
