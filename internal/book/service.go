package book

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// Service runs every operation as a full cycle against the Repository:
// load the collection, work on that request-local copy, save it back.
// Nothing is cached between calls, so the stored document stays the
// authority even when edited from outside the process.
//
// Unless WithSerializedMutations is set, concurrent mutations are not
// coordinated: two overlapping cycles both load, and the later save wins.
type Service struct {
	repo Repository
	mu   *sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithSerializedMutations makes create, update and delete cycles run one at
// a time within this process. Reads are never blocked.
func WithSerializedMutations() Option {
	return func(s *Service) {
		s.mu = &sync.Mutex{}
	}
}

// NewService creates a new book service.
func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the whole collection.
func (s *Service) List(ctx context.Context) ([]Book, error) {
	return s.load(ctx)
}

// GetByISBN returns the first book with the given ISBN.
func (s *Service) GetByISBN(ctx context.Context, isbn string) (Book, error) {
	books, err := s.load(ctx)
	if err != nil {
		return Book{}, err
	}
	i := indexOf(books, isbn)
	if i < 0 {
		return Book{}, ErrNotFound
	}
	return books[i], nil
}

// Create appends b to the collection. ISBN uniqueness is not checked.
func (s *Service) Create(ctx context.Context, b Book) (Book, error) {
	defer s.lock()()

	books, err := s.load(ctx)
	if err != nil {
		return Book{}, err
	}
	books = append(books, b)
	if err := s.save(ctx, books); err != nil {
		return Book{}, err
	}
	return b, nil
}

// Update applies req to the first book with the given ISBN and returns the
// record as it was before and after the change.
func (s *Service) Update(ctx context.Context, isbn string, req UpdateRequest) (before, after Book, err error) {
	defer s.lock()()

	books, err := s.load(ctx)
	if err != nil {
		return Book{}, Book{}, err
	}
	i := indexOf(books, isbn)
	if i < 0 {
		return Book{}, Book{}, ErrNotFound
	}

	before = books[i]
	req.Apply(&books[i])
	if err := s.save(ctx, books); err != nil {
		return Book{}, Book{}, err
	}
	return before, books[i], nil
}

// Delete removes the first book with the given ISBN and returns it.
// Later books sharing that ISBN stay in place.
func (s *Service) Delete(ctx context.Context, isbn string) (Book, error) {
	defer s.lock()()

	books, err := s.load(ctx)
	if err != nil {
		return Book{}, err
	}
	i := indexOf(books, isbn)
	if i < 0 {
		return Book{}, ErrNotFound
	}

	deleted := books[i]
	books = slices.Delete(books, i, i+1)
	if err := s.save(ctx, books); err != nil {
		return Book{}, err
	}
	return deleted, nil
}

func (s *Service) load(ctx context.Context) ([]Book, error) {
	books, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load: %w", ErrPersistence, err)
	}
	if books == nil {
		books = []Book{}
	}
	return books, nil
}

func (s *Service) save(ctx context.Context, books []Book) error {
	if err := s.repo.Save(ctx, books); err != nil {
		return fmt.Errorf("%w: save: %w", ErrPersistence, err)
	}
	return nil
}

func (s *Service) lock() (unlock func()) {
	if s.mu == nil {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func indexOf(books []Book, isbn string) int {
	return slices.IndexFunc(books, func(b Book) bool { return b.ISBN == isbn })
}
