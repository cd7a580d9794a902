package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const supplierSchema = `{
	"title": "Supplier",
	"description": "Supplier master data",
	"properties": {
		"CONO": {"type": "integer", "x-position": 1},
		"SUNO": {"type": "string", "x-position": 2},
		"SUNM": {"type": "string", "x-position": 3, "description": "Supplier name"},
		"variationNumber": {"type": "integer", "x-position": 4},
		"timestamp": {"type": "string", "format": "date-time", "x-position": 5},
		"deleted": {"type": "boolean", "x-position": 6}
	},
	"required": ["CONO", "SUNO", "variationNumber", "timestamp", "deleted"]
}`

func TestParse(t *testing.T) {
	doc, err := Parse(supplierSchema)
	require.NoError(t, err)

	assert.Equal(t, "Supplier", doc.Title)
	assert.Equal(t, "Supplier master data", doc.Description)
	assert.Equal(t, []string{"CONO", "SUNO", "SUNM", "variationNumber", "timestamp", "deleted"}, doc.PropertyOrder)
	assert.Equal(t, []string{"CONO", "SUNO", "variationNumber", "timestamp", "deleted"}, doc.Required)

	assert.True(t, doc.IsRequired("CONO"))
	assert.False(t, doc.IsRequired("SUNM"))

	ts := doc.Properties["timestamp"]
	assert.Equal(t, "string", ts.Type)
	assert.Equal(t, "date-time", ts.Format)
	assert.Equal(t, 5, ts.XPosition)

	assert.Equal(t, "Supplier name", doc.Properties["SUNM"].Description)
}

func TestParse_PropertyOrderFollowsSource(t *testing.T) {
	// Keys deliberately not alphabetical; the recorded order must be the
	// source order, not whatever the map iteration yields.
	doc, err := Parse(`{"properties": {"zeta": {}, "alpha": {}, "mid": {}}}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, doc.PropertyOrder)
}

func TestParse_Defaults(t *testing.T) {
	doc, err := Parse(`{"properties": {"plain": {"type": "string"}}}`)
	require.NoError(t, err)

	p := doc.Properties["plain"]
	assert.Equal(t, DefaultPosition, p.XPosition)
	assert.Empty(t, p.Format)
	assert.True(t, p.Maximum.IsZero())
}

func TestParse_PartialSchemasTolerated(t *testing.T) {
	doc, err := Parse(`{}`)
	require.NoError(t, err)
	assert.Empty(t, doc.Properties)
	assert.Empty(t, doc.PropertyOrder)
	assert.Empty(t, doc.Required)
	assert.False(t, doc.IsRequired("anything"))
}

func TestParse_InvalidJSON(t *testing.T) {
	doc, err := Parse(`{"title": "broken"`)
	require.Error(t, err)
	assert.Nil(t, doc)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Contains(t, pe.Error(), "invalid JSON")
}

func TestNumber_UnmarshalJSON(t *testing.T) {
	doc, err := Parse(`{"properties": {
		"native": {"type": "number", "maximum": 999.99, "multipleOf": 0.01},
		"quoted": {"type": "number", "maximum": "999.99", "multipleOf": "0.01"}
	}}`)
	require.NoError(t, err)

	native := doc.Properties["native"]
	quoted := doc.Properties["quoted"]
	assert.Equal(t, Number("999.99"), native.Maximum)
	assert.Equal(t, Number("0.01"), native.MultipleOf)
	assert.Equal(t, native.Maximum, quoted.Maximum)
	assert.Equal(t, native.MultipleOf, quoted.MultipleOf)
}
