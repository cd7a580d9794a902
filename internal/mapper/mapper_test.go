package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nordicdata/snowgen/internal/schema"
)

func TestMap(t *testing.T) {
	tests := []struct {
		name string
		prop schema.Property
		want string
	}{
		{
			name: "integer",
			prop: schema.Property{Type: "integer"},
			want: "INTEGER",
		},
		{
			name: "integer ignores maximum magnitude",
			prop: schema.Property{Type: "integer", Maximum: "999999999999999999999"},
			want: "INTEGER",
		},
		{
			name: "date-time wins over type",
			prop: schema.Property{Type: "integer", Format: "date-time"},
			want: "DATETIME",
		},
		{
			name: "date-time on string",
			prop: schema.Property{Type: "string", Format: "date-time"},
			want: "DATETIME",
		},
		{
			name: "epoch-millis wins over integer",
			prop: schema.Property{Type: "integer", XDateTimeFormat: "epoch-millis"},
			want: "NUMBER",
		},
		{
			name: "epoch-millis wins over decimal resolution",
			prop: schema.Property{Type: "number", XDateTimeFormat: "epoch-millis", MultipleOf: "0.01"},
			want: "NUMBER",
		},
		{
			name: "boolean",
			prop: schema.Property{Type: "boolean"},
			want: "BOOLEAN",
		},
		{
			name: "number with fractional multipleOf and maximum",
			prop: schema.Property{Type: "number", MultipleOf: "0.01", Maximum: "999.99"},
			want: "NUMBER(5,2)",
		},
		{
			name: "number without fractional part",
			prop: schema.Property{Type: "number", Maximum: "500"},
			want: "NUMBER",
		},
		{
			name: "number scale falls back to maximum",
			prop: schema.Property{Type: "number", MultipleOf: "5", Maximum: "10.5"},
			want: "NUMBER(3,1)",
		},
		{
			name: "number with fraction but no maximum defaults precision",
			prop: schema.Property{Type: "number", MultipleOf: "0.001"},
			want: "NUMBER(38,3)",
		},
		{
			name: "number with scientific-notation maximum",
			prop: schema.Property{Type: "number", MultipleOf: "0.001", Maximum: "1e5"},
			want: "NUMBER(6,3)",
		},
		{
			name: "number precision clamps at 38",
			prop: schema.Property{Type: "number", MultipleOf: "0.01", Maximum: "9999999999999999999999999999999999999999.99"},
			want: "NUMBER(38,2)",
		},
		{
			name: "numeric facets given as strings",
			prop: schema.Property{Type: "number", MultipleOf: "0.25", Maximum: "100.00"},
			want: "NUMBER(5,2)",
		},
		{
			name: "uppercase exponent tolerated",
			prop: schema.Property{Type: "number", MultipleOf: "0.1", Maximum: "2.5E3"},
			want: "NUMBER(5,1)",
		},
		{
			name: "string",
			prop: schema.Property{Type: "string"},
			want: "STRING",
		},
		{
			name: "object serializes to string",
			prop: schema.Property{Type: "object"},
			want: "STRING",
		},
		{
			name: "missing type defaults to string",
			prop: schema.Property{},
			want: "STRING",
		},
		{
			name: "unknown type defaults to string",
			prop: schema.Property{Type: "array"},
			want: "STRING",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Map(tt.prop))
		})
	}
}

func TestFractionDigits(t *testing.T) {
	tests := []struct {
		in     schema.Number
		digits int
		ok     bool
	}{
		{"", 0, false},
		{"500", 0, false},
		{"0.01", 2, true},
		{"10.5", 1, true},
		{"1.", 0, false},
		{"1.5e3", 1, true},
		{"1e-2", 0, false},
	}
	for _, tt := range tests {
		digits, ok := fractionDigits(tt.in)
		assert.Equal(t, tt.ok, ok, "ok for %q", tt.in)
		assert.Equal(t, tt.digits, digits, "digits for %q", tt.in)
	}
}

func TestDigitCount(t *testing.T) {
	tests := []struct {
		in   schema.Number
		want int
	}{
		{"999.99", 5},
		{"500", 3},
		{"-12.34", 4},
		{"1e5", 6},
		{"2.5E3", 5},
		{"1.5e-3", 5},
		{"", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, digitCount(tt.in), "digit count for %q", tt.in)
	}
}
