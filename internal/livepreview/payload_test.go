package livepreview

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/specialistvlad/skeletongen/internal/app"
	"github.com/specialistvlad/skeletongen/internal/graph"
	"github.com/specialistvlad/skeletongen/internal/hcl"
	"github.com/specialistvlad/skeletongen/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	cfg, err := app.NewConfig(app.Config{LogLevel: "debug"})
	require.NoError(t, err)

	buf := &testutil.SafeBuffer{}
	a, err := app.NewApp(buf, cfg, hcl.NewLoaderWithEnv(nil))
	require.NoError(t, err)
	t.Cleanup(func() { testutil.DumpLogs(t, buf) })
	return NewHandler(a)
}

func TestSnapshot_MatchesGolden(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	h := newTestHandler(t)
	raw, err := os.ReadFile(filepath.Join("..", "project", "testdata", "account_guard.json"))
	require.NoError(t, err)
	want, err := os.ReadFile(filepath.Join("..", "program", "testdata", "account_guard.cls"))
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))

	testCases := []struct {
		name    string
		payload any
		wantID  string
	}{
		{"decoded envelope", map[string]any{"requestId": "r-1", "document": doc}, "r-1"},
		{"bare decoded document", doc, ""},
		{"document as string", string(raw), ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Act ---
			reply := h.Snapshot(context.Background(), tc.payload)

			// --- Assert ---
			require.Empty(t, reply.Error)
			if diff := cmp.Diff(string(want), reply.SourceText); diff != "" {
				t.Errorf("generated source mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, "SolutionSkeleton.cls", reply.FileName)
			assert.Empty(t, reply.Diagnostics)
			if tc.wantID != "" {
				assert.Equal(t, tc.wantID, reply.RequestID)
			} else {
				_, err := uuid.Parse(reply.RequestID)
				assert.NoError(t, err, "a request id is generated when missing")
			}
		})
	}
}

func TestSnapshot_Rejections(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		args    []any
		wantErr string
	}{
		{"no arguments", nil, "empty payload"},
		{"nil payload", []any{nil}, "empty payload"},
		{"blank string", []any{"   "}, "empty payload"},
		{"malformed json", []any{`{"nodes": [`}, "invalid payload"},
		{"missing edges", []any{map[string]any{"requestId": "r-2", "nodes": []any{}}}, "edges"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			h := newTestHandler(t)

			reply := h.Snapshot(context.Background(), tc.args...)

			assert.Contains(t, reply.Error, tc.wantErr)
			assert.Empty(t, reply.SourceText)
			assert.NotEmpty(t, reply.RequestID)
		})
	}
}

func TestPreview(t *testing.T) {
	t.Parallel()

	node := map[string]any{
		"id":   "n1",
		"data": map[string]any{"subtype": "LOGIC_IF", "properties": map[string]any{"condition": "isVip"}},
	}

	testCases := []struct {
		name    string
		payload any
		wantID  string
	}{
		{"envelope", map[string]any{"requestId": "p-1", "node": node}, "p-1"},
		{"bare node", node, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			h := newTestHandler(t)

			// --- Act ---
			reply := h.Preview(context.Background(), tc.payload)

			// --- Assert ---
			require.Empty(t, reply.Error)
			assert.Contains(t, reply.SourceText, "if (isVip) {")
			assert.Empty(t, reply.Diagnostics)
			assert.Empty(t, reply.FileName)
			if tc.wantID != "" {
				assert.Equal(t, tc.wantID, reply.RequestID)
			}
		})
	}
}

func TestPreview_ReportsPlaceholders(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t)

	reply := h.Preview(context.Background(), `{"requestId": "p-2", "node": {"id": "n2", "subtype": "LOGIC_SOQL"}}`)

	require.Empty(t, reply.Error)
	assert.Equal(t, "p-2", reply.RequestID)
	assert.Contains(t, reply.SourceText, "TODO: ")
	testutil.RequireDiagnostic(t, reply.Diagnostics, graph.SeverityWarning, graph.CodePlaceholder, "n2", "")
}

func TestPreview_InvalidNode(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t)

	reply := h.Preview(context.Background(), `{"node": {"id": 7}}`)

	assert.Contains(t, reply.Error, "invalid node payload")
}

func TestSnapshot_RecoversFromPanics(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	h := &Handler{}
	payload := `{"requestId": "s-9", "document": {"name": "Broken", "nodes": [], "edges": []}}`

	// --- Act ---
	var reply Reply
	require.NotPanics(t, func() { reply = h.Snapshot(context.Background(), payload) })

	// --- Assert ---
	assert.Equal(t, "s-9", reply.RequestID)
	assert.Contains(t, reply.Error, "internal error")
	assert.Empty(t, reply.SourceText)
}

func TestPreview_UnusableTypeName(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t)

	reply := h.Preview(context.Background(), `{"node": {"id": "l1", "subtype": "LOGIC_LOOP", "properties": {"objectType": "???"}}}`)

	require.Empty(t, reply.Error)
	assert.Contains(t, reply.SourceText, "for (Object /* TODO: objectType */ item : ")
	testutil.RequireDiagnostic(t, reply.Diagnostics, graph.SeverityWarning, graph.CodePlaceholder, "l1", "")
}

func TestDial_RejectsBadURLs(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		url     string
		wantErr string
	}{
		{"no scheme", "localhost:3000", "must include a scheme and host"},
		{"empty", "", "must include a scheme and host"},
		{"unparsable", "http://[::1", "failed to parse URL"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := Dial(context.Background(), Options{URL: tc.url})

			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestNotify_KeepsFirstOutcome(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ch := make(chan error, 1)
	refused := errors.New("refused")

	// --- Act ---
	notify(ch, nil)
	notify(ch, refused)

	// --- Assert ---
	require.Len(t, ch, 1)
	assert.NoError(t, <-ch)
}
