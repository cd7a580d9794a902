// Package workbench defines the WebSocket protocol for the interactive
// conversion workbench: a client holds schema text client-side and asks
// for each SQL artifact on demand, mirroring the two-button flow of the
// original tool.
package workbench

import "encoding/json"

// ── Client → Server messages ────────────────────────────────────────────────

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string          `json:"type"` // "generate_ddl", "generate_silver", "ping"
	ID   string          `json:"id"`   // Client-assigned request ID
	Data json.RawMessage `json:"data,omitempty"`
}

// GenerateData is the payload for both generate message types.
type GenerateData struct {
	Schema    string `json:"schema"`
	TableName string `json:"table_name,omitempty"`
}

// ── Server → Client messages ────────────────────────────────────────────────

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type      string `json:"type"`                 // "sql", "error", "pong"
	RequestID string `json:"request_id,omitempty"` // Echoes client ID
	Data      any    `json:"data,omitempty"`
}

// SQLData carries one generated artifact.
type SQLData struct {
	Artifact  string `json:"artifact"` // "ddl" or "silver"
	TableName string `json:"table_name"`
	SQL       string `json:"sql"`
}

// ErrorData carries an error message.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
