// Package schema models the subset of JSON Schema that describes an Infor
// M3 data entity, plus the M3 vendor extensions the SQL generators read
// (x-position, x-dateTimeFormat). It deliberately does not validate input
// against the JSON Schema meta-schema; partial schemas are accepted and
// missing sections default to empty.
package schema

import (
	"encoding/json"
)

// DefaultPosition is the x-position assigned to properties that carry no
// explicit ordering hint. They sort after every positioned property.
const DefaultPosition = 999

// Document is a parsed schema. It is immutable after Parse: generators
// derive transient column metadata from it on every call instead of
// mutating or caching.
type Document struct {
	Title       string
	Description string

	// Properties maps column name to its descriptor.
	Properties map[string]Property

	// PropertyOrder is the insertion order of the properties object in the
	// source text. Go maps do not preserve it, and generated column order
	// uses it to break x-position ties, so Parse records it separately.
	PropertyOrder []string

	// Required is the schema's required array, in source order. The order
	// matters: the primary-key suggestion lists candidates in it.
	Required []string
}

// IsRequired reports whether name is a member of the required array.
func (d *Document) IsRequired(name string) bool {
	for _, r := range d.Required {
		if r == name {
			return true
		}
	}
	return false
}

// Property is one column's descriptor.
type Property struct {
	Type            string // "integer", "number", "string", "boolean", "object" or empty
	Format          string // e.g. "date-time"
	Maximum         Number
	MultipleOf      Number
	XPosition       int    // DefaultPosition when absent
	XDateTimeFormat string // recognized value: "epoch-millis"
	Description     string // becomes a column COMMENT
}

// Number holds a numeric schema facet as its decimal text. M3 schema
// exports encode maximum and multipleOf sometimes as JSON numbers and
// sometimes as quoted numeric strings; both forms decode to the literal
// text so the type mapper can count digits without losing precision.
type Number string

// UnmarshalJSON accepts either a JSON number or a quoted numeric string.
func (n *Number) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Number(s)
		return nil
	}
	*n = Number(data)
	return nil
}

// IsZero reports whether the facet was absent from the source.
func (n Number) IsZero() bool { return n == "" }

func (n Number) String() string { return string(n) }
