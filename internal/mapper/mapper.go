// Package mapper decides the Snowflake column type for a schema property.
//
// Type mapping:
//
//	Property                       Snowflake type
//	format: date-time              DATETIME
//	x-dateTimeFormat: epoch-millis NUMBER (millisecond count, not a calendar value)
//	type: boolean                  BOOLEAN
//	type: integer                  INTEGER (regardless of maximum magnitude)
//	type: number                   NUMBER or NUMBER(precision,scale)
//	type: string                   STRING
//	type: object                   STRING (serialized, not modeled relationally)
//	anything else                  STRING
package mapper

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nordicdata/snowgen/internal/schema"
)

// maxPrecision is Snowflake's NUMBER precision ceiling.
const maxPrecision = 38

// rule is one predicate→type entry. Rules are evaluated in order and the
// first match wins; the order is significant because conditions overlap —
// an integer carrying a date-time format must resolve to DATETIME before
// the generic integer rule sees it.
type rule struct {
	name  string
	match func(schema.Property) bool
	apply func(schema.Property) string
}

func constant(sqlType string) func(schema.Property) string {
	return func(schema.Property) string { return sqlType }
}

var rules = []rule{
	{"date-time", func(p schema.Property) bool { return p.Format == "date-time" }, constant("DATETIME")},
	{"epoch-millis", func(p schema.Property) bool { return p.XDateTimeFormat == "epoch-millis" }, constant("NUMBER")},
	{"boolean", func(p schema.Property) bool { return p.Type == "boolean" }, constant("BOOLEAN")},
	{"integer", func(p schema.Property) bool { return p.Type == "integer" }, constant("INTEGER")},
	{"number", func(p schema.Property) bool { return p.Type == "number" }, decimalType},
	{"string", func(p schema.Property) bool { return p.Type == "string" }, constant("STRING")},
	{"object", func(p schema.Property) bool { return p.Type == "object" }, constant("STRING")},
}

// Map returns the Snowflake column type for p. It is total: a property
// with a missing or unrecognized type falls through to STRING.
func Map(p schema.Property) string {
	for _, r := range rules {
		if r.match(p) {
			return r.apply(p)
		}
	}
	return "STRING"
}

// decimalType resolves type:"number" properties. Scale comes from the
// fractional digits of multipleOf, falling back to maximum; without a
// fractional part anywhere the column is a plain NUMBER. Precision is the
// decimal digit count of maximum (default and ceiling 38).
func decimalType(p schema.Property) string {
	scale, ok := fractionDigits(p.MultipleOf)
	if !ok {
		scale, ok = fractionDigits(p.Maximum)
	}
	if !ok {
		return "NUMBER"
	}

	precision := maxPrecision
	if !p.Maximum.IsZero() {
		if d := digitCount(p.Maximum); d > 0 {
			precision = d
		}
		if precision > maxPrecision {
			precision = maxPrecision
		}
	}
	return fmt.Sprintf("NUMBER(%d,%d)", precision, scale)
}

// fractionDigits counts the digits after the decimal point in n's text,
// reporting ok=false when n is absent or has no fractional part. An
// exponent suffix is not part of the fraction.
func fractionDigits(n schema.Number) (int, bool) {
	s := strings.ToLower(strings.TrimSpace(n.String()))
	dot := strings.Index(s, ".")
	if dot < 0 {
		return 0, false
	}
	frac := s[dot+1:]
	if e := strings.Index(frac, "e"); e >= 0 {
		frac = frac[:e]
	}
	if frac == "" {
		return 0, false
	}
	return len(frac), true
}

// digitCount counts the significant decimal digits of n's canonical
// representation. Scientific notation expands as mantissa * 10^exponent:
// the digit count is |exponent| plus the mantissa's digits with sign and
// decimal point stripped.
func digitCount(n schema.Number) int {
	s := strings.ToLower(strings.TrimSpace(n.String()))
	if s == "" {
		return 0
	}

	mantissa := s
	exponent := 0
	if e := strings.Index(s, "e"); e >= 0 {
		mantissa = s[:e]
		if v, err := strconv.Atoi(strings.TrimPrefix(s[e+1:], "+")); err == nil {
			exponent = v
		}
	}

	digits := 0
	for _, r := range mantissa {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if exponent < 0 {
		exponent = -exponent
	}
	return digits + exponent
}
