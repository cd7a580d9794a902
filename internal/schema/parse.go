package schema

import (
	"bytes"
	"encoding/json"
)

// ParseError reports that the input text is not valid JSON. The wrapped
// decoder error is surfaced to callers as a displayable message.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return "invalid JSON: " + e.Err.Error() }

func (e *ParseError) Unwrap() error { return e.Err }

// rawDocument is the decode target for the top-level schema object.
// Properties stays raw so its key order can be recovered afterwards.
type rawDocument struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Properties  json.RawMessage `json:"properties"`
	Required    []string        `json:"required"`
}

// rawProperty is the decode target for one property descriptor.
// XPosition is a pointer so absence can default to DefaultPosition.
type rawProperty struct {
	Type            string `json:"type"`
	Format          string `json:"format"`
	Maximum         Number `json:"maximum"`
	MultipleOf      Number `json:"multipleOf"`
	XPosition       *int   `json:"x-position"`
	XDateTimeFormat string `json:"x-dateTimeFormat"`
	Description     string `json:"description"`
}

// Parse decodes schema text into a Document. Invalid JSON yields a
// *ParseError; a missing properties or required section is tolerated and
// defaults to empty so the tool stays usable on partial schemas.
func Parse(text string) (*Document, error) {
	var raw rawDocument
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, &ParseError{Err: err}
	}

	doc := &Document{
		Title:       raw.Title,
		Description: raw.Description,
		Properties:  map[string]Property{},
		Required:    raw.Required,
	}

	if len(raw.Properties) == 0 || bytes.Equal(bytes.TrimSpace(raw.Properties), []byte("null")) {
		return doc, nil
	}

	var props map[string]rawProperty
	if err := json.Unmarshal(raw.Properties, &props); err != nil {
		return nil, &ParseError{Err: err}
	}

	order, err := objectKeyOrder(raw.Properties)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	doc.PropertyOrder = order
	for name, rp := range props {
		p := Property{
			Type:            rp.Type,
			Format:          rp.Format,
			Maximum:         rp.Maximum,
			MultipleOf:      rp.MultipleOf,
			XPosition:       DefaultPosition,
			XDateTimeFormat: rp.XDateTimeFormat,
			Description:     rp.Description,
		}
		if rp.XPosition != nil {
			p.XPosition = *rp.XPosition
		}
		doc.Properties[name] = p
	}
	return doc, nil
}

// objectKeyOrder walks the token stream of a JSON object and returns its
// top-level keys in source order.
func objectKeyOrder(raw json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	// Opening delimiter. Anything else means properties is not an object;
	// treat it as having no ordered keys.
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			break
		}
		keys = append(keys, key)
		if err := skipValue(dec); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

// skipValue consumes one complete JSON value from the decoder.
func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	d, ok := tok.(json.Delim)
	if !ok || (d != '{' && d != '[') {
		return nil
	}
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}
