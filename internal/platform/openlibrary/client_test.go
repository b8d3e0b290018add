package openlibrary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchBooks(t *testing.T) {
	var gotQuery, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search.json", r.URL.Path)
		gotQuery = r.URL.Query().Get("q")
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"numFound":1,"docs":[{"key":"/works/OL1W","title":"Dune","author_name":["Frank Herbert"],"publisher":["Chilton Books"],"isbn":["9780441013593"],"first_publish_year":1965}]}`))
	}))
	defer srv.Close()

	c := NewClient("bookshelf-test", 100, 0, WithBaseURL(srv.URL))
	res, err := c.SearchBooks(context.Background(), "science fiction", 5)
	require.NoError(t, err)

	assert.Equal(t, "subject:science fiction", gotQuery)
	assert.Equal(t, "bookshelf-test", gotAgent)
	require.Len(t, res.Docs, 1)
	assert.Equal(t, "Dune", res.Docs[0].Title)
	assert.Equal(t, []string{"Chilton Books"}, res.Docs[0].Publishers)
	assert.Equal(t, 1965, res.Docs[0].FirstPublishYear)
}

func TestSearchBooks_ClientErrorIsNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient("bookshelf-test", 100, 3, WithBaseURL(srv.URL))
	_, err := c.SearchBooks(context.Background(), "history", 5)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestSearchBooks_RetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"numFound":0,"docs":[]}`))
	}))
	defer srv.Close()

	c := NewClient("bookshelf-test", 100, 1, WithBaseURL(srv.URL))
	res, err := c.SearchBooks(context.Background(), "art", 5)

	require.NoError(t, err)
	assert.Empty(t, res.Docs)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}
