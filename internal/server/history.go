package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nordicdata/snowgen/internal/history"
)

// HistoryHandler serves the recorded conversions.
type HistoryHandler struct {
	history history.Store
}

// NewHistoryHandler creates a HistoryHandler.
func NewHistoryHandler(store history.Store) *HistoryHandler {
	return &HistoryHandler{history: store}
}

// List handles GET /v1/conversions.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	conversions, err := h.history.List(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		return
	}
	if conversions == nil {
		conversions = []history.Conversion{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"conversions": conversions})
}

// Get handles GET /v1/conversions/{id}.
func (h *HistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// Download handles GET /v1/conversions/{id}/download, serving the stored
// SQL as a file attachment named after the table ("schema.sql" when the
// table name never resolved).
func (h *HistoryHandler) Download(w http.ResponseWriter, r *http.Request) {
	c, ok := h.load(w, r)
	if !ok {
		return
	}

	name := c.TableName
	if name == "" {
		name = "schema"
	}
	w.Header().Set("Content-Type", "application/sql")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`.sql"`)
	w.Write([]byte(c.SQL))
}

func (h *HistoryHandler) load(w http.ResponseWriter, r *http.Request) (*history.Conversion, bool) {
	id := chi.URLParam(r, "id")
	c, err := h.history.Get(r.Context(), id)
	if errors.Is(err, history.ErrNotFound) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "conversion not found: "+id)
		return nil, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		return nil, false
	}
	return c, true
}
