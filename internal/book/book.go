package book

import (
	"encoding/json"
	"errors"
)

var (
	// ErrNotFound is returned when no book carries the requested ISBN.
	ErrNotFound = errors.New("book not found")
	// ErrValidation is returned for request bodies that cannot become a book.
	ErrValidation = errors.New("invalid book request")
	// ErrPersistence wraps failures reading or writing the backing store.
	ErrPersistence = errors.New("book store unavailable")
)

// Book is the only entity of the service. ISBN is an opaque key: it is not
// format-checked and duplicates are allowed.
type Book struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	Publisher     string `json:"publisher"`
	PublishedDate string `json:"publishedDate"`
	ISBN          string `json:"isbn"`
}

// Text is a request field decoded with loose truthiness: null, "", 0 and
// false all decode to the empty value, meaning "not supplied". Any other
// non-string JSON value is rejected.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch x := v.(type) {
	case nil:
		*t = ""
	case string:
		*t = Text(x)
	case float64:
		if x != 0 {
			return errNotAString
		}
		*t = ""
	case bool:
		if x {
			return errNotAString
		}
		*t = ""
	default:
		return errNotAString
	}
	return nil
}

var errNotAString = errors.New("value must be a string")

// CreateRequest is the body of POST /books. All five fields are required.
type CreateRequest struct {
	Title         Text `json:"title" validate:"required"`
	Author        Text `json:"author" validate:"required"`
	Publisher     Text `json:"publisher" validate:"required"`
	PublishedDate Text `json:"publishedDate" validate:"required"`
	ISBN          Text `json:"isbn" validate:"required"`
}

// Book converts the request into the record to store.
func (c CreateRequest) Book() Book {
	return Book{
		Title:         string(c.Title),
		Author:        string(c.Author),
		Publisher:     string(c.Publisher),
		PublishedDate: string(c.PublishedDate),
		ISBN:          string(c.ISBN),
	}
}

// UpdateRequest is the body of PUT /books/{isbn}. The ISBN itself cannot be
// changed; an "isbn" key in the body is ignored.
type UpdateRequest struct {
	Title         Text `json:"title"`
	Author        Text `json:"author"`
	Publisher     Text `json:"publisher"`
	PublishedDate Text `json:"publishedDate"`
}

// Apply overwrites the fields of b that the request supplies.
func (u UpdateRequest) Apply(b *Book) {
	if u.Title != "" {
		b.Title = string(u.Title)
	}
	if u.Author != "" {
		b.Author = string(u.Author)
	}
	if u.Publisher != "" {
		b.Publisher = string(u.Publisher)
	}
	if u.PublishedDate != "" {
		b.PublishedDate = string(u.PublishedDate)
	}
}
