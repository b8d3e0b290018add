package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"bookshelf/internal/book"
	"bookshelf/internal/config"
)

func main() {
	config.LoadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	repo, closeRepo, err := book.OpenRepository(context.Background(), cfg.Store)
	if err != nil {
		log.Fatalf("cannot open %s store: %v", cfg.Store.Driver, err)
	}
	defer closeRepo()

	var opts []book.Option
	if cfg.Store.SerializeMutations {
		opts = append(opts, book.WithSerializedMutations())
	}
	bookService := book.NewService(repo, opts...)

	// The collection must load (or be created) before we accept connections.
	loadCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	books, err := bookService.List(loadCtx)
	cancel()
	if err != nil {
		closeRepo()
		log.Fatalf("cannot load books from %s store: %v", cfg.Store.Driver, err)
	}
	log.Printf("loaded %d books from %s store", len(books), cfg.Store.Driver)

	router, stop := newRouter(bookService, cfg.HTTP)
	defer stop()

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Starting server on %s", cfg.Addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
