package httpx

import (
	"encoding/json"
	"log"
	"net/http"
)

const internalErrorMessage = "Internal server error"

// WriteJSON encodes data as the response body with the given status.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("encode response failed: %v", err)
	}
}

// WriteText writes a plain-text response body.
func WriteText(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(statusCode)
	_, _ = w.Write([]byte(message))
}

// WriteInternalError logs err with the request ID and answers 500 without
// exposing the cause.
func WriteInternalError(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("request failed: method=%s path=%s request_id=%s error=%v", r.Method, r.URL.Path, RequestIDFrom(r), err)
	WriteText(w, http.StatusInternalServerError, internalErrorMessage)
}
