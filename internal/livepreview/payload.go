package livepreview

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/google/uuid"
	"github.com/specialistvlad/skeletongen/internal/app"
	"github.com/specialistvlad/skeletongen/internal/ctxlog"
	"github.com/specialistvlad/skeletongen/internal/graph"
	"github.com/specialistvlad/skeletongen/internal/project"
)

// Event names exchanged with the editor.
const (
	EventGraphSnapshot   = "graph:snapshot"
	EventNodePreview     = "node:preview"
	EventSourceGenerated = "source:generated"
	EventNodeSnippet     = "node:snippet"
)

// Reply is emitted back to the editor for every request.
type Reply struct {
	RequestID   string            `json:"requestId"`
	SourceText  string            `json:"sourceText"`
	Diagnostics graph.Diagnostics `json:"diagnostics"`
	FileName    string            `json:"fileName,omitempty"`
	Error       string            `json:"error,omitempty"`
}

// envelope is the request shape. The payload sits under Document or Node;
// when neither is present the whole message is the payload.
type envelope struct {
	RequestID string          `json:"requestId"`
	Document  json.RawMessage `json:"document"`
	Node      json.RawMessage `json:"node"`
}

var errNoPayload = errors.New("empty payload")

// Handler answers editor requests using an App.
type Handler struct {
	app *app.App
}

// NewHandler creates a Handler.
func NewHandler(a *app.App) *Handler {
	return &Handler{app: a}
}

// Snapshot renders a whole project snapshot.
func (h *Handler) Snapshot(ctx context.Context, args ...any) (reply Reply) {
	defer recoverReply(ctx, &reply, args)
	return h.snapshot(ctx, args)
}

func (h *Handler) snapshot(ctx context.Context, args []any) Reply {
	raw, env, err := unpack(args)
	if err != nil {
		return Reply{RequestID: requestID(env), Error: err.Error()}
	}
	if len(env.Document) > 0 {
		raw = env.Document
	}
	reply := Reply{RequestID: requestID(env)}

	doc, err := project.ParseBytes(raw, project.FormatJSON)
	if err != nil {
		reply.Error = err.Error()
		return reply
	}
	res := h.app.GenerateDocument(ctx, doc)
	reply.SourceText = res.SourceText
	reply.Diagnostics = res.Diagnostics
	reply.FileName = res.FileName
	return reply
}

// Preview renders a single node.
func (h *Handler) Preview(ctx context.Context, args ...any) (reply Reply) {
	defer recoverReply(ctx, &reply, args)
	return h.preview(ctx, args)
}

func (h *Handler) preview(ctx context.Context, args []any) Reply {
	raw, env, err := unpack(args)
	if err != nil {
		return Reply{RequestID: requestID(env), Error: err.Error()}
	}
	if len(env.Node) > 0 {
		raw = env.Node
	}
	reply := Reply{RequestID: requestID(env)}

	var nd project.NodeDoc
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&nd); err != nil {
		reply.Error = fmt.Sprintf("invalid node payload: %v", err)
		return reply
	}
	res := h.app.Preview(ctx, nd.ToNode())
	reply.SourceText = res.SourceText
	reply.Diagnostics = res.Diagnostics
	return reply
}

// recoverReply turns a panic while answering a request into an error reply,
// so one bad payload cannot end the session.
func recoverReply(ctx context.Context, reply *Reply, args []any) {
	r := recover()
	if r == nil {
		return
	}
	ctxlog.FromContext(ctx).Error("Live preview request panicked.", "panic", r, "stack", string(debug.Stack()))
	_, env, _ := unpack(args)
	*reply = Reply{RequestID: requestID(env), Error: fmt.Sprintf("internal error: %v", r)}
}

// unpack normalizes the first event argument to JSON. socket.io delivers
// decoded JSON as maps; some editors send the document as a string.
func unpack(args []any) (json.RawMessage, envelope, error) {
	var env envelope
	if len(args) == 0 || args[0] == nil {
		return nil, env, errNoPayload
	}

	var raw []byte
	switch v := args[0].(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	case json.RawMessage:
		raw = v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, env, fmt.Errorf("failed to encode payload: %w", err)
		}
		raw = b
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, env, errNoPayload
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, env, fmt.Errorf("invalid payload: %w", err)
	}
	return raw, env, nil
}

func requestID(env envelope) string {
	if env.RequestID != "" {
		return env.RequestID
	}
	return uuid.NewString()
}
