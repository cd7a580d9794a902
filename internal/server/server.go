// Package server assembles all HTTP handlers and starts the server.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nordicdata/snowgen/internal/generate"
	"github.com/nordicdata/snowgen/internal/history"
	"github.com/nordicdata/snowgen/internal/workbench"
)

// maxSchemaBytes caps the request body. M3 entity schemas are a few
// kilobytes; anything near this limit is not a schema.
const maxSchemaBytes = 1 << 20

// Config holds server configuration.
type Config struct {
	Port    int
	History history.Store
	Options generate.Options
}

// Run starts the HTTP server with all routes registered and shuts it down
// when ctx is canceled.
func Run(ctx context.Context, cfg Config) error {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(limitBodySize(maxSchemaBytes))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	ch := NewConvertHandler(cfg.History, cfg.Options)
	r.Post("/v1/convert/ddl", ch.GenerateDDL)
	r.Post("/v1/convert/silver", ch.GenerateSilver)

	hh := NewHistoryHandler(cfg.History)
	r.Get("/v1/conversions", hh.List)
	r.Get("/v1/conversions/{id}", hh.Get)
	r.Get("/v1/conversions/{id}/download", hh.Download)

	wb := workbench.NewHandler(cfg.History, cfg.Options)
	r.Get("/v1/workbench", wb.ServeHTTP)

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("starting server on %s", addr)

	server := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		<-ctx.Done()
		server.Shutdown(context.Background())
	}()

	return server.ListenAndServe()
}

// limitBodySize rejects request bodies larger than maxBytes.
func limitBodySize(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
