// cmd/server runs the snowgen conversion service: HTTP endpoints and a
// WebSocket workbench for turning Infor M3 JSON Schemas into Snowflake
// Bronze DDL and Silver dynamic-table queries.
package main

import (
	"context"
	"database/sql"
	"log"
	"os/signal"
	"syscall"

	"github.com/nordicdata/snowgen/internal/config"
	"github.com/nordicdata/snowgen/internal/generate"
	"github.com/nordicdata/snowgen/internal/history"
	"github.com/nordicdata/snowgen/internal/server"

	_ "modernc.org/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	var store history.Store
	if cfg.HistoryDB == "" {
		store = history.NewMemoryStore()
		log.Println("history: in-memory store (set HISTORY_DB to persist)")
	} else {
		db, err := sql.Open("sqlite", cfg.HistoryDB)
		if err != nil {
			log.Fatalf("opening history database: %v", err)
		}
		db.SetMaxOpenConns(1)

		s := history.NewSQLiteStore(db)
		if err := s.CreateTable(ctx); err != nil {
			log.Fatalf("migrating history database: %v", err)
		}
		store = s
		log.Printf("history: sqlite store at %s", cfg.HistoryDB)
	}

	err = server.Run(ctx, server.Config{
		Port:    cfg.Port,
		History: store,
		Options: generate.Options{
			Warehouse:      cfg.Warehouse,
			SourceDatabase: cfg.SourceDatabase,
		},
	})
	if err != nil {
		log.Fatalf("server error: %v", err)
	}
}
