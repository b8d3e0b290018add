package book

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"bookshelf/internal/httpx"
)

const (
	messageFieldsRequired = "All fields are required"
	messageBodyShape      = "Request body must be a JSON object with string fields"
)

// MessageResponse is the body of mutation and not-found responses.
type MessageResponse struct {
	Message string `json:"message"`
	Book    *Book  `json:"book,omitempty"`
	ISBN    string `json:"isbn,omitempty"`
}

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// RegisterRoutes mounts the books endpoints on mux.
func (h *HTTPHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /books", h.List)
	mux.HandleFunc("POST /books", h.Create)
	mux.HandleFunc("GET /books/{isbn}", h.GetByISBN)
	mux.HandleFunc("PUT /books/{isbn}", h.Update)
	mux.HandleFunc("DELETE /books/{isbn}", h.Delete)
}

// List handles GET /books
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.List(r.Context())
	if err != nil {
		httpx.WriteInternalError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, books)
}

// GetByISBN handles GET /books/{isbn}
func (h *HTTPHandler) GetByISBN(w http.ResponseWriter, r *http.Request) {
	isbn := r.PathValue("isbn")

	book, err := h.service.GetByISBN(r.Context(), isbn)
	if err != nil {
		h.writeError(w, r, isbn, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, book)
}

// Create handles POST /books
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, "", err)
		return
	}
	if missing := missingFields(req); len(missing) > 0 {
		httpx.WriteText(w, http.StatusBadRequest, fmt.Sprintf("%s (missing: %s)", messageFieldsRequired, strings.Join(missing, ", ")))
		return
	}

	book, err := h.service.Create(r.Context(), req.Book())
	if err != nil {
		h.writeError(w, r, "", err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, MessageResponse{
		Message: fmt.Sprintf("Book \"%s\" has been successfully added", book.Title),
		Book:    &book,
	})
}

// Update handles PUT /books/{isbn}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	isbn := r.PathValue("isbn")

	var req UpdateRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, isbn, err)
		return
	}

	before, after, err := h.service.Update(r.Context(), isbn, req)
	if err != nil {
		h.writeError(w, r, isbn, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Book \"%s\" has been successfully updated", before.Title),
		Book:    &after,
	})
}

// Delete handles DELETE /books/{isbn}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	isbn := r.PathValue("isbn")

	deleted, err := h.service.Delete(r.Context(), isbn)
	if err != nil {
		h.writeError(w, r, isbn, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Book \"%s\" has been successfully deleted", deleted.Title),
		ISBN:    deleted.ISBN,
	})
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, isbn string, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.WriteJSON(w, http.StatusNotFound, MessageResponse{
			Message: fmt.Sprintf("Book with ISBN %s was not found", isbn),
		})
	case errors.Is(err, errInvalidJSON):
		httpx.WriteText(w, http.StatusBadRequest, httpx.MessageInvalidJSON)
	case errors.Is(err, ErrValidation):
		httpx.WriteText(w, http.StatusBadRequest, messageBodyShape)
	default:
		httpx.WriteInternalError(w, r, err)
	}
}

var errInvalidJSON = fmt.Errorf("%w: malformed JSON", ErrValidation)

// decodeBody fills dst from the body checked by httpx.JSONContentMiddleware,
// or from r.Body when the handler is mounted without it.
func decodeBody(r *http.Request, dst any) error {
	body, ok := httpx.JSONBodyFrom(r)
	if !ok {
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			return fmt.Errorf("%w: read body: %w", ErrValidation, err)
		}
		body = bytes.TrimSpace(raw)
		if len(body) == 0 {
			body = []byte("{}")
		}
	}

	if !json.Valid(body) {
		return errInvalidJSON
	}
	if body[0] != '{' {
		return fmt.Errorf("%w: body is not an object", ErrValidation)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}
