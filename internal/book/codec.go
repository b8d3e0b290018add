package book

import "encoding/json"

// marshalCollection renders the collection the way it lives on disk:
// a two-space indented JSON array, "[]" when empty.
func marshalCollection(books []Book) ([]byte, error) {
	if books == nil {
		books = []Book{}
	}
	return json.MarshalIndent(books, "", "  ")
}

func unmarshalCollection(data []byte) ([]Book, error) {
	var books []Book
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, err
	}
	if books == nil {
		books = []Book{}
	}
	return books, nil
}
