package server

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/nordicdata/snowgen/internal/generate"
	"github.com/nordicdata/snowgen/internal/history"
	"github.com/nordicdata/snowgen/internal/schema"
)

// ConvertRequest is the payload for both convert endpoints. Schema is the
// raw JSON Schema text exactly as uploaded; TableName is an optional
// override, upper-cased by the client by convention.
type ConvertRequest struct {
	Schema    string `json:"schema"`
	TableName string `json:"table_name"`
}

// ConvertResponse carries one generated artifact.
type ConvertResponse struct {
	ID        string `json:"id,omitempty"`
	TableName string `json:"table_name"`
	SQL       string `json:"sql"`
}

// ConvertHandler serves the on-demand schema-to-SQL conversions.
type ConvertHandler struct {
	history history.Store
	opts    generate.Options
}

// NewConvertHandler creates a ConvertHandler.
func NewConvertHandler(store history.Store, opts generate.Options) *ConvertHandler {
	return &ConvertHandler{history: store, opts: opts}
}

// GenerateDDL handles POST /v1/convert/ddl. A schema that is not valid
// JSON yields a 422 with the parser's message and no SQL, so clients clear
// any previously shown statement.
func (h *ConvertHandler) GenerateDDL(w http.ResponseWriter, r *http.Request) {
	var req ConvertRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}

	doc, err := schema.Parse(req.Schema)
	if err != nil {
		var pe *schema.ParseError
		if errors.As(err, &pe) {
			writeError(w, http.StatusUnprocessableEntity, "INVALID_SCHEMA", pe.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		return
	}

	tableName := generate.TableName(doc, req.TableName)
	sql := generate.DDL(doc, req.TableName)
	id := h.record(r.Context(), history.ArtifactDDL, tableName, doc.Title, sql)

	writeJSON(w, http.StatusOK, ConvertResponse{ID: id, TableName: tableName, SQL: sql})
}

// GenerateSilver handles POST /v1/convert/silver. Mirroring the core
// contract, it never fails on bad schema text: the response carries an
// explanatory placeholder instead.
func (h *ConvertHandler) GenerateSilver(w http.ResponseWriter, r *http.Request) {
	var req ConvertRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}

	tableName := generate.TableName(nil, req.TableName)
	title := ""
	if doc, err := schema.Parse(req.Schema); err == nil {
		tableName = generate.TableName(doc, req.TableName)
		title = doc.Title
	}

	sql := generate.GenerateSilver(req.Schema, req.TableName, h.opts)
	id := h.record(r.Context(), history.ArtifactSilver, tableName, title, sql)

	writeJSON(w, http.StatusOK, ConvertResponse{ID: id, TableName: tableName, SQL: sql})
}

// record appends a conversion to the history. Best-effort: failures are
// logged and do not fail the request.
func (h *ConvertHandler) record(ctx context.Context, artifact, tableName, title, sql string) string {
	if h.history == nil {
		return ""
	}
	c := &history.Conversion{
		TableName:   tableName,
		Artifact:    artifact,
		SchemaTitle: title,
		SQL:         sql,
	}
	if err := h.history.Record(ctx, c); err != nil {
		log.Printf("history record failed: %v", err)
		return ""
	}
	return c.ID
}
