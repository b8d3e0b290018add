package main

import (
	"context"
	"net/http"
	"time"

	"bookshelf/internal/book"
	"bookshelf/internal/config"
	"bookshelf/internal/httpx"
)

// newRouter mounts the probes and book routes behind the middleware chain.
// The returned stop function releases background work started for it.
func newRouter(bookService *book.Service, cfg config.HTTPConfig) (http.Handler, func()) {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if _, err := bookService.List(ctx); err != nil {
			http.Error(w, "store not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	book.NewHTTPHandler(bookService).RegisterRoutes(router)

	// Content-Type and body checks run ahead of routing so they cover every
	// POST and PUT, matched route or not.
	var handler http.Handler = router
	handler = httpx.JSONContentMiddleware(handler)
	handler = httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes)(handler)

	stop := func() {}
	if cfg.RateLimitRPS > 0 {
		rl := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)
		handler = rl.Middleware(handler)
		stop = rl.Stop
	}

	handler = httpx.CORSMiddleware(cfg.AllowedOrigins)(handler)
	handler = httpx.SecurityHeadersMiddleware(cfg.EnableHSTS)(handler)
	handler = httpx.RecoveryMiddleware(handler)
	handler = httpx.AccessLogMiddleware(handler)
	handler = httpx.RequestIDMiddleware(handler)
	return handler, stop
}
