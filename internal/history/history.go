// Package history records the SQL artifacts the service has generated, so
// operators can re-download a statement without re-uploading the schema.
package history

import (
	"context"
	"errors"
	"time"
)

// Artifact kinds stored per conversion.
const (
	ArtifactDDL    = "ddl"
	ArtifactSilver = "silver"
)

// ErrNotFound is returned by Get for unknown conversion IDs.
var ErrNotFound = errors.New("conversion not found")

// Conversion is one generated artifact.
type Conversion struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	TableName   string    `json:"table_name"`
	Artifact    string    `json:"artifact"` // ArtifactDDL or ArtifactSilver
	SchemaTitle string    `json:"schema_title,omitempty"`
	SQL         string    `json:"sql"`
}

// Store is the interface for recording and reading conversions.
type Store interface {
	// Record appends one conversion. ID and CreatedAt are assigned by the
	// store when empty.
	Record(ctx context.Context, c *Conversion) error

	// List returns the most recent conversions, newest first.
	List(ctx context.Context, limit int) ([]Conversion, error)

	// Get returns one conversion by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Conversion, error)
}

const defaultListLimit = 50
