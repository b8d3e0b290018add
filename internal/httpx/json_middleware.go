package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
)

const (
	MessageContentType = "Content-Type must be application/json"
	MessageInvalidJSON = "Request body must be valid JSON"
)

// JSONContentMiddleware guards POST and PUT requests: the Content-Type must
// be application/json and the body must parse as JSON. An empty body counts
// as {}. The checked body is available to handlers through JSONBodyFrom and
// is also left readable on r.Body.
func JSONContentMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost && r.Method != http.MethodPut {
			next.ServeHTTP(w, r)
			return
		}

		if !IsJSONContentType(r.Header.Get("Content-Type")) {
			WriteText(w, http.StatusBadRequest, MessageContentType)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				WriteText(w, http.StatusRequestEntityTooLarge, "Request body too large")
				return
			}
			WriteText(w, http.StatusBadRequest, "Could not read request body")
			return
		}

		body = bytes.TrimSpace(body)
		if len(body) == 0 {
			body = []byte("{}")
		}
		if !json.Valid(body) {
			WriteText(w, http.StatusBadRequest, MessageInvalidJSON)
			return
		}

		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r.WithContext(contextWithJSONBody(r.Context(), body)))
	})
}

// IsJSONContentType reports whether a Content-Type header value names
// application/json. Parameters such as charset are allowed.
func IsJSONContentType(value string) bool {
	if value == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(value)
	if err != nil {
		return false
	}
	return mediaType == "application/json"
}
