// Package generate renders the two Snowflake SQL artifacts — the Bronze
// CREATE OR ALTER TABLE statement and the Silver dynamic-table query —
// from a parsed schema document. Both artifacts are projections of the
// same derived column sequence, rendered through separate templates.
package generate

import (
	"sort"
	"strings"

	"github.com/nordicdata/snowgen/internal/mapper"
	"github.com/nordicdata/snowgen/internal/schema"
)

// ColumnSpec is the per-column metadata both artifacts render from.
// Values are transient: recomputed on every generation call, never cached.
type ColumnSpec struct {
	Name    string // original property name, as written in the schema
	SQLName string // upper-cased identifier used in rendered SQL
	SQLType string
	NotNull bool
	Comment string
}

// Columns derives the ordered column sequence for doc: a stable sort by
// x-position ascending, ties broken by the property insertion order the
// parser recorded. Properties without a position sort last (position 999).
func Columns(doc *schema.Document) []ColumnSpec {
	specs := make([]ColumnSpec, 0, len(doc.PropertyOrder))
	for _, name := range doc.PropertyOrder {
		p := doc.Properties[name]
		specs = append(specs, ColumnSpec{
			Name:    name,
			SQLName: strings.ToUpper(name),
			SQLType: mapper.Map(p),
			NotNull: doc.IsRequired(name),
			Comment: p.Description,
		})
	}
	sort.SliceStable(specs, func(i, j int) bool {
		return doc.Properties[specs[i].Name].XPosition < doc.Properties[specs[j].Name].XPosition
	})
	return specs
}

// keyColumnNames are exact property names treated as natural-key members
// when required. They are the M3 housekeeping columns every entity carries.
var keyColumnNames = map[string]bool{
	"CONO":            true,
	"SUNO":            true,
	"variationNumber": true,
	"timestamp":       true,
	"deleted":         true,
}

// PrimaryKeyCandidates returns the advisory primary-key column set: every
// member of the required array whose exact name is a known key column or
// whose lower-cased name contains "id". Order follows the required array,
// not column order, and names keep their original case.
func PrimaryKeyCandidates(doc *schema.Document) []string {
	var keys []string
	for _, name := range doc.Required {
		if keyColumnNames[name] || strings.Contains(strings.ToLower(name), "id") {
			keys = append(keys, name)
		}
	}
	return keys
}
