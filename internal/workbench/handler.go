package workbench

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/nordicdata/snowgen/internal/generate"
	"github.com/nordicdata/snowgen/internal/history"
	"github.com/nordicdata/snowgen/internal/schema"
)

// Handler manages WebSocket connections for the workbench.
type Handler struct {
	history history.Store
	opts    generate.Options
}

// NewHandler creates a workbench handler. The history store may be nil;
// recording is best-effort either way.
func NewHandler(store history.Store, opts generate.Options) *Handler {
	return &Handler{history: store, opts: opts}
}

// ServeHTTP upgrades to WebSocket and runs the message loop. Generation
// errors go back as messages; only read failures end the connection.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		log.Printf("workbench: websocket accept: %v", err)
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()
	for {
		var msg ClientMessage
		err := wsjson.Read(ctx, conn, &msg)
		if err != nil {
			if websocket.CloseStatus(err) != -1 {
				log.Printf("workbench: connection closed: %v", websocket.CloseStatus(err))
			}
			return
		}

		switch msg.Type {
		case "generate_ddl":
			h.handleDDL(ctx, conn, msg)
		case "generate_silver":
			h.handleSilver(ctx, conn, msg)
		case "ping":
			h.send(ctx, conn, ServerMessage{Type: "pong", RequestID: msg.ID})
		default:
			h.sendError(ctx, conn, msg.ID, "unknown_type", fmt.Sprintf("unknown message type: %s", msg.Type))
		}
	}
}

func (h *Handler) handleDDL(ctx context.Context, conn *websocket.Conn, msg ClientMessage) {
	var data GenerateData
	if err := json.Unmarshal(msg.Data, &data); err != nil {
		h.sendError(ctx, conn, msg.ID, "invalid_data", "invalid generate data")
		return
	}

	doc, err := schema.Parse(data.Schema)
	if err != nil {
		h.sendError(ctx, conn, msg.ID, "invalid_schema", err.Error())
		return
	}

	tableName := generate.TableName(doc, data.TableName)
	sql := generate.DDL(doc, data.TableName)
	h.record(ctx, history.ArtifactDDL, tableName, doc.Title, sql)

	h.send(ctx, conn, ServerMessage{
		Type:      "sql",
		RequestID: msg.ID,
		Data: SQLData{
			Artifact:  history.ArtifactDDL,
			TableName: tableName,
			SQL:       sql,
		},
	})
}

func (h *Handler) handleSilver(ctx context.Context, conn *websocket.Conn, msg ClientMessage) {
	var data GenerateData
	if err := json.Unmarshal(msg.Data, &data); err != nil {
		h.sendError(ctx, conn, msg.ID, "invalid_data", "invalid generate data")
		return
	}

	// The Silver step never errors: bad input yields a placeholder comment.
	tableName := generate.TableName(nil, data.TableName)
	title := ""
	if doc, err := schema.Parse(data.Schema); err == nil {
		tableName = generate.TableName(doc, data.TableName)
		title = doc.Title
	}

	sql := generate.GenerateSilver(data.Schema, data.TableName, h.opts)
	h.record(ctx, history.ArtifactSilver, tableName, title, sql)

	h.send(ctx, conn, ServerMessage{
		Type:      "sql",
		RequestID: msg.ID,
		Data: SQLData{
			Artifact:  history.ArtifactSilver,
			TableName: tableName,
			SQL:       sql,
		},
	})
}

func (h *Handler) record(ctx context.Context, artifact, tableName, title, sql string) {
	if h.history == nil {
		return
	}
	c := &history.Conversion{
		TableName:   tableName,
		Artifact:    artifact,
		SchemaTitle: title,
		SQL:         sql,
	}
	if err := h.history.Record(ctx, c); err != nil {
		log.Printf("workbench: history record failed: %v", err)
	}
}

func (h *Handler) send(ctx context.Context, conn *websocket.Conn, msg ServerMessage) {
	if err := wsjson.Write(ctx, conn, msg); err != nil {
		log.Printf("workbench: write error: %v", err)
	}
}

func (h *Handler) sendError(ctx context.Context, conn *websocket.Conn, requestID, code, message string) {
	h.send(ctx, conn, ServerMessage{
		Type:      "error",
		RequestID: requestID,
		Data: ErrorData{
			Code:    code,
			Message: message,
		},
	})
}
