package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/skeletongen/internal/graph"
	"github.com/specialistvlad/skeletongen/internal/hcl"
	"github.com/specialistvlad/skeletongen/internal/project"
	"github.com/specialistvlad/skeletongen/internal/store"
	"github.com/specialistvlad/skeletongen/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, cfg Config) (*App, *testutil.SafeBuffer) {
	t.Helper()
	cfg.LogLevel = "debug"
	c, err := NewConfig(cfg)
	require.NoError(t, err)

	buf := &testutil.SafeBuffer{}
	a, err := NewApp(buf, c, hcl.NewLoaderWithEnv(nil))
	require.NoError(t, err)
	t.Cleanup(func() { testutil.DumpLogs(t, buf) })
	return a, buf
}

func TestNewConfig(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		in      Config
		want    *Config
		wantErr string
	}{
		{
			name: "defaults",
			in:   Config{},
			want: &Config{LogFormat: "text", LogLevel: "info"},
		},
		{
			name: "normalizes case and blank paths",
			in:   Config{LogFormat: "JSON", LogLevel: " Debug ", ConfigPaths: []string{"", "a.hcl", "  "}},
			want: &Config{LogFormat: "json", LogLevel: "debug", ConfigPaths: []string{"a.hcl"}},
		},
		{name: "bad format", in: Config{LogFormat: "xml"}, wantErr: "invalid log-format"},
		{name: "bad level", in: Config{LogLevel: "trace"}, wantErr: "invalid log-level"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := NewConfig(tc.in)

			if tc.wantErr != "" {
				assert.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNewApp_LoadsConfiguration(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := testutil.WriteFiles(t, map[string]string{
		"skeletongen.hcl": "class {\n  name = \"FromFile\"\n  indent = 2\n}\n",
	})

	// --- Act ---
	a, buf := newTestApp(t, Config{ConfigPaths: []string{root}, ClassName: "FromFlag"})

	// --- Assert ---
	assert.Equal(t, "FromFlag", a.Model().Class.Name)
	assert.Equal(t, 2, a.Model().Class.Indent)
	assert.Contains(t, buf.String(), "Configuration loaded.")
}

func TestNewApp_ConfigurationErrors(t *testing.T) {
	t.Parallel()

	root := testutil.WriteFiles(t, map[string]string{"bad.hcl": "class {"})
	c, err := NewConfig(Config{ConfigPaths: []string{root}})
	require.NoError(t, err)

	_, err = NewApp(&testutil.SafeBuffer{}, c, hcl.NewLoaderWithEnv(nil))

	assert.ErrorContains(t, err, "failed to load configuration")
}

func TestGenerateProjects_MatchesGolden(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	a, buf := newTestApp(t, Config{})
	want, err := os.ReadFile(filepath.Join("..", "program", "testdata", "account_guard.cls"))
	require.NoError(t, err)
	ctx := a.Context(context.Background())

	// --- Act ---
	results, err := a.GenerateProjects(ctx, []string{filepath.Join("..", "project", "testdata", "account_guard.json")})

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, results, 1)
	if diff := cmp.Diff(string(want), results[0].Result.SourceText); diff != "" {
		t.Errorf("generated source mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "SolutionSkeleton.cls", results[0].Result.FileName)
	assert.Contains(t, buf.String(), "Generated class.")
}

func TestGenerateProjects_NamesClassesAfterProjects(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	a, _ := newTestApp(t, Config{})
	method := `{"name": %q, "nodes": [{"id": "m", "data": {"subtype": "LOGIC_METHOD", "properties": {"methodName": "run"}}}], "edges": []}`
	root := testutil.WriteFiles(t, map[string]string{
		"a.json":     fmt.Sprintf(method, "Order Sync"),
		"b.yaml":     "name: Case Flow\nnodes: []\nedges: []\n",
		"readme.txt": "ignored",
	})

	// --- Act ---
	results, err := a.GenerateProjects(context.Background(), []string{root})

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "OrderSync.cls", results[0].Result.FileName)
	assert.Equal(t, "CaseFlow.cls", results[1].Result.FileName)
	testutil.RequireDiagnostic(t, results[1].Result.Diagnostics, graph.SeverityInfo, graph.CodeNoEntry, "", "")
}

func TestGenerateProjects_NoFiles(t *testing.T) {
	t.Parallel()
	a, _ := newTestApp(t, Config{})

	_, err := a.GenerateProjects(context.Background(), []string{t.TempDir()})

	assert.ErrorContains(t, err, "no project files found")
}

func TestPreviewAndValidate(t *testing.T) {
	t.Parallel()
	a, _ := newTestApp(t, Config{})
	ctx := context.Background()

	res := a.Preview(ctx, testutil.NewNode("r", graph.IntREST, graph.PropAPIName, "erp"))
	assert.Contains(t, res.SourceText, "erpRequest.setEndpoint('' /* TODO: endpoint */);")

	g := testutil.NewGraph().Node("a", graph.LogicAssignment, graph.PropCondition, "1").Node("a", graph.LogicIf).Build()
	diags := a.Validate(ctx, g)
	testutil.RequireDiagnostic(t, diags, graph.SeverityError, graph.CodeDuplicateID, "a", "")
}

func TestProjectLifecycle(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	a, buf := newTestApp(t, Config{})
	ctx := a.Context(context.Background())
	doc := project.FromGraph("Notify", testutil.NewGraph().
		Node("m", graph.LogicMethod, graph.PropMethodName, "notifyOwners").
		Node("p", graph.IntPlatformEvent, graph.PropAPIName, "Owner_Notice__e").
		Edge("m", "p").
		Build())

	// --- Act ---
	saved, err := a.SaveProject(ctx, doc)
	require.NoError(t, err)
	res, err := a.GenerateStored(ctx, saved.ID)
	require.NoError(t, err)
	list, err := a.ListProjects(ctx)
	require.NoError(t, err)

	// --- Assert ---
	assert.Contains(t, res.SourceText, "        EventBus.publish(new Owner_Notice__e());\n")
	require.Len(t, list, 1)
	assert.Equal(t, "Notify", list[0].Name)
	assert.Contains(t, buf.String(), "Project saved.")

	require.NoError(t, a.DeleteProject(ctx, saved.ID))
	_, err = a.GetProject(ctx, saved.ID)
	assert.ErrorIs(t, err, store.ErrProjectNotFound)
	_, err = a.GenerateStored(ctx, saved.ID)
	assert.ErrorIs(t, err, store.ErrProjectNotFound)
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		level     string
		format    string
		wantDebug bool
		wantJSON  bool
	}{
		{"text at info", "info", "text", false, false},
		{"json at debug", "debug", "json", true, true},
		{"unknown level falls back to info", "chatty", "text", false, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			buf := &testutil.SafeBuffer{}
			logger := NewLogger(tc.level, tc.format, buf)

			// --- Act ---
			logger.Debug("debug line")
			logger.Info("info line")

			// --- Assert ---
			out := buf.String()
			assert.Contains(t, out, "info line")
			assert.Equal(t, tc.wantDebug, strings.Contains(out, "debug line"))
			assert.Equal(t, tc.wantJSON, strings.HasPrefix(out, "{"))
		})
	}
}
