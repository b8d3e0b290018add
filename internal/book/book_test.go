package book

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Text
		wantErr bool
	}{
		{name: "string", input: `"Dune"`, want: "Dune"},
		{name: "empty string", input: `""`, want: ""},
		{name: "null", input: `null`, want: ""},
		{name: "zero", input: `0`, want: ""},
		{name: "false", input: `false`, want: ""},
		{name: "non-zero number", input: `42`, wantErr: true},
		{name: "true", input: `true`, wantErr: true},
		{name: "object", input: `{"a":1}`, wantErr: true},
		{name: "array", input: `["a"]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Text
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUpdateRequest_Apply(t *testing.T) {
	original := Book{Title: "A", Author: "B", Publisher: "C", PublishedDate: "2020", ISBN: "111"}

	t.Run("only supplied fields overwrite", func(t *testing.T) {
		b := original
		UpdateRequest{Title: "New Title"}.Apply(&b)
		assert.Equal(t, Book{Title: "New Title", Author: "B", Publisher: "C", PublishedDate: "2020", ISBN: "111"}, b)
	})

	t.Run("falsy body leaves record intact", func(t *testing.T) {
		var req UpdateRequest
		require.NoError(t, json.Unmarshal([]byte(`{"title":"","author":null,"publisher":0,"publishedDate":false,"isbn":"999"}`), &req))

		b := original
		req.Apply(&b)
		assert.Equal(t, original, b)
	})
}

func TestMissingFields(t *testing.T) {
	t.Run("complete", func(t *testing.T) {
		req := CreateRequest{Title: "A", Author: "B", Publisher: "C", PublishedDate: "2020", ISBN: "111"}
		assert.Empty(t, missingFields(req))
	})

	t.Run("reports json names", func(t *testing.T) {
		req := CreateRequest{Title: "A", Publisher: "C", ISBN: "111"}
		assert.Equal(t, []string{"author", "publishedDate"}, missingFields(req))
	})
}

func TestCollectionCodec(t *testing.T) {
	t.Run("empty collection is an array", func(t *testing.T) {
		data, err := marshalCollection(nil)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))
	})

	t.Run("pretty printed with original key order", func(t *testing.T) {
		data, err := marshalCollection([]Book{{Title: "A", Author: "B", Publisher: "C", PublishedDate: "2020", ISBN: "111"}})
		require.NoError(t, err)
		want := "[\n  {\n    \"title\": \"A\",\n    \"author\": \"B\",\n    \"publisher\": \"C\",\n    \"publishedDate\": \"2020\",\n    \"isbn\": \"111\"\n  }\n]"
		assert.Equal(t, want, string(data))
	})

	t.Run("null document decodes empty", func(t *testing.T) {
		books, err := unmarshalCollection([]byte("null"))
		require.NoError(t, err)
		assert.NotNil(t, books)
		assert.Empty(t, books)
	})

	t.Run("object document is rejected", func(t *testing.T) {
		_, err := unmarshalCollection([]byte(`{"title":"A"}`))
		assert.Error(t, err)
	})
}
