package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"strconv"
	"time"

	"bookshelf/internal/book"
	"bookshelf/internal/config"
	"bookshelf/internal/platform/openlibrary"
)

const (
	sourceGenerated   = "generated"
	sourceOpenLibrary = "openlibrary"
)

func main() {
	var (
		count   = flag.Int("count", 100, "Number of books to add")
		source  = flag.String("source", sourceGenerated, "Where books come from: generated, openlibrary")
		subject = flag.String("subject", "fiction", "Open Library subject for -source=openlibrary")
	)
	flag.Parse()

	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	repo, closeRepo, err := book.OpenRepository(ctx, cfg.Store)
	if err != nil {
		log.Fatalf("cannot open %s store: %v", cfg.Store.Driver, err)
	}
	defer closeRepo()

	books, err := repo.Load(ctx)
	if err != nil {
		log.Fatalf("Failed to load books: %v", err)
	}

	var fresh []book.Book
	switch *source {
	case sourceGenerated:
		log.Printf("Generating %d books...", *count)
		fresh = generateBooks(*count, len(books), rand.New(rand.NewSource(time.Now().UnixNano())))
	case sourceOpenLibrary:
		fresh, err = fetchBooks(ctx, *subject, *count)
		if err != nil {
			log.Fatalf("Failed to fetch books from Open Library: %v", err)
		}
	default:
		log.Fatalf("Unknown source: %s. Use: %s, %s", *source, sourceGenerated, sourceOpenLibrary)
	}

	merged, added := mergeBooks(books, fresh)

	// One save for the whole batch keeps the store at a single write.
	if err := repo.Save(ctx, merged); err != nil {
		log.Fatalf("Failed to save books: %v", err)
	}

	log.Printf("Successfully added %d books!", added)
	log.Printf("Total books in %s store: %d", cfg.Store.Driver, len(merged))
}

func fetchBooks(ctx context.Context, subject string, count int) ([]book.Book, error) {
	client := openlibrary.NewClient("bookshelf-seed/1.0", 1, 3)

	log.Printf("Searching Open Library for subject %q...", subject)
	res, err := client.SearchBooks(ctx, subject, count)
	if err != nil {
		return nil, err
	}

	books := make([]book.Book, 0, len(res.Docs))
	for _, doc := range res.Docs {
		if b, ok := bookFromDoc(doc); ok {
			books = append(books, b)
		}
	}
	log.Printf("Open Library returned %d docs, %d usable", len(res.Docs), len(books))
	return books, nil
}

// bookFromDoc converts a search result. Docs without a title, author or ISBN
// cannot become records.
func bookFromDoc(doc openlibrary.Doc) (book.Book, bool) {
	if doc.Title == "" || len(doc.AuthorNames) == 0 || len(doc.ISBN) == 0 {
		return book.Book{}, false
	}

	b := book.Book{
		Title:         doc.Title,
		Author:        doc.AuthorNames[0],
		Publisher:     "Unknown",
		PublishedDate: "Unknown",
		ISBN:          doc.ISBN[0],
	}
	if len(doc.Publishers) > 0 && doc.Publishers[0] != "" {
		b.Publisher = doc.Publishers[0]
	}
	if doc.FirstPublishYear > 0 {
		b.PublishedDate = strconv.Itoa(doc.FirstPublishYear)
	}
	return b, true
}

// mergeBooks appends the books whose ISBN is not already in the collection.
func mergeBooks(existing, fresh []book.Book) ([]book.Book, int) {
	seen := make(map[string]bool, len(existing)+len(fresh))
	for _, b := range existing {
		seen[b.ISBN] = true
	}

	merged := existing
	added := 0
	for _, b := range fresh {
		if seen[b.ISBN] {
			continue
		}
		seen[b.ISBN] = true
		merged = append(merged, b)
		added++
	}
	return merged, added
}

func generateBooks(count, offset int, rng *rand.Rand) []book.Book {
	publishers := []string{"Penguin", "HarperCollins", "Oxford", "Cambridge", "MIT Press", "Springer", "Wiley", "Elsevier"}
	authors := []string{"A. Rivera", "B. Okafor", "C. Lindqvist", "D. Tanaka", "E. Moreau", "F. Haddad"}

	books := make([]book.Book, 0, count)
	for i := 0; i < count; i++ {
		n := offset + i + 1
		year := 1950 + rng.Intn(75)
		books = append(books, book.Book{
			Title:         fmt.Sprintf("Book Title %d - %s", n, randomWord(rng)),
			Author:        authors[rng.Intn(len(authors))],
			Publisher:     publishers[rng.Intn(len(publishers))],
			PublishedDate: fmt.Sprintf("%d-%02d-%02d", year, 1+rng.Intn(12), 1+rng.Intn(28)),
			ISBN:          fmt.Sprintf("978-%08d", n),
		})
	}
	return books
}

func randomWord(rng *rand.Rand) string {
	words := []string{
		"Adventure", "Mystery", "Journey", "Discovery", "Secrets", "Dreams", "Hope",
		"Love", "War", "Peace", "Science", "Nature", "Technology", "History", "Future",
		"Past", "Present", "Reality", "Imagination", "Wisdom", "Life", "Death",
		"Light", "Darkness", "World", "Universe", "Time", "Space", "Mind", "Soul",
	}
	return words[rng.Intn(len(words))]
}
