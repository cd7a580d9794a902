package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SQLiteStore implements Store on a single SQLite table.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLiteStore over an opened database.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// CreateTable creates the conversions table. Run once at startup before
// handling requests.
func (s *SQLiteStore) CreateTable(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS conversions (
			id           TEXT PRIMARY KEY,
			created_at   TIMESTAMP NOT NULL,
			table_name   TEXT NOT NULL,
			artifact     TEXT NOT NULL,
			schema_title TEXT NOT NULL DEFAULT '',
			sql_text     TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_conversions_created
			ON conversions (created_at DESC);
	`)
	return err
}

func (s *SQLiteStore) Record(ctx context.Context, c *Conversion) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO conversions (id, created_at, table_name, artifact, schema_title, sql_text)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.CreatedAt, c.TableName, c.Artifact, c.SchemaTitle, c.SQL,
	)
	if err != nil {
		return fmt.Errorf("recording conversion: %w", err)
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context, limit int) ([]Conversion, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, table_name, artifact, schema_title, sql_text
		FROM conversions
		ORDER BY created_at DESC, id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing conversions: %w", err)
	}
	defer rows.Close()

	var out []Conversion
	for rows.Next() {
		var c Conversion
		if err := rows.Scan(&c.ID, &c.CreatedAt, &c.TableName, &c.Artifact, &c.SchemaTitle, &c.SQL); err != nil {
			return nil, fmt.Errorf("scanning conversion: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*Conversion, error) {
	var c Conversion
	err := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, table_name, artifact, schema_title, sql_text
		FROM conversions
		WHERE id = ?`, id).
		Scan(&c.ID, &c.CreatedAt, &c.TableName, &c.Artifact, &c.SchemaTitle, &c.SQL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading conversion: %w", err)
	}
	return &c, nil
}
