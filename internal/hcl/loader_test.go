package hcl

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/skeletongen/internal/config"
	"github.com/specialistvlad/skeletongen/internal/ctxlog"
	"github.com/specialistvlad/skeletongen/internal/labels"
	"github.com/specialistvlad/skeletongen/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Load_Testdata(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	logger, buf := testutil.NewLogger()
	ctx := ctxlog.WithLogger(context.Background(), logger)
	path := filepath.Join("testdata", "skeletongen.hcl")

	// --- Act ---
	model, err := NewLoaderWithEnv(nil).Load(ctx, path)
	testutil.DumpLogs(t, buf)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, config.Class{
		Name:    "Order Sync",
		Sharing: "without sharing",
		Indent:  2,
		Header:  "Owned by the integration team.",
	}, model.Class)
	assert.Equal(t, []string{"approved", "yes"}, model.Labels.IfTrue)
	assert.Equal(t, []string{"finished", "done"}, model.Labels.LoopExit)
	assert.Equal(t, labels.Default().IfFalse, model.Labels.IfFalse)
	assert.Equal(t, []string{path}, model.Sources)
	assert.Contains(t, buf.String(), "HCL loading complete.")
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		files   map[string]string
		env     map[string]string
		check   func(t *testing.T, m *config.Model)
		wantErr string
	}{
		{
			name:  "empty file keeps defaults",
			files: map[string]string{"a.hcl": ""},
			check: func(t *testing.T, m *config.Model) {
				assert.Equal(t, config.Default().Class, m.Class)
			},
		},
		{
			name: "env object",
			files: map[string]string{"a.hcl": `class {
  name = env.CLASS_NAME
  no_header = true
}`},
			env: map[string]string{"CLASS_NAME": "FromEnv", "1BAD": "x"},
			check: func(t *testing.T, m *config.Model) {
				assert.Equal(t, "FromEnv", m.Class.Name)
				assert.True(t, m.Class.NoHeader)
			},
		},
		{
			name: "later files override earlier ones",
			files: map[string]string{
				"conf/01-base.hcl":  "class {\n  name = \"Base\"\n  indent = 8\n}\n",
				"conf/02-local.hcl": "class {\n  name = \"Local\"\n}\n",
				"conf/readme.md":    "not configuration",
			},
			check: func(t *testing.T, m *config.Model) {
				assert.Equal(t, "Local", m.Class.Name)
				assert.Equal(t, 8, m.Class.Indent)
				assert.Len(t, m.Sources, 2)
			},
		},
		{
			name:    "syntax error",
			files:   map[string]string{"a.hcl": "class {"},
			wantErr: "failed to parse HCL file",
		},
		{
			name:    "unknown block",
			files:   map[string]string{"a.hcl": "runner \"x\" {}\n"},
			wantErr: "failed to decode HCL file",
		},
		{
			name:    "unknown labels attribute",
			files:   map[string]string{"a.hcl": "labels {\n  maybe = [\"x\"]\n}\n"},
			wantErr: `unsupported attribute "maybe" in labels block`,
		},
		{
			name:    "empty token list",
			files:   map[string]string{"a.hcl": "labels {\n  if_true = []\n}\n"},
			wantErr: "at least one token is required",
		},
		{
			name:    "tokens must be strings",
			files:   map[string]string{"a.hcl": "labels {\n  if_true = [[\"x\"]]\n}\n"},
			wantErr: "cannot convert",
		},
		{
			name:    "indent out of range",
			files:   map[string]string{"a.hcl": "class {\n  indent = 40\n}\n"},
			wantErr: "invalid configuration: class indent must be between 0 and 16",
		},
		{
			name:    "missing env variable",
			files:   map[string]string{"a.hcl": "class {\n  name = env.NOPE\n}\n"},
			wantErr: "failed to decode HCL file",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			root := testutil.WriteFiles(t, tc.files)

			// --- Act ---
			model, err := NewLoaderWithEnv(tc.env).Load(context.Background(), root)

			// --- Assert ---
			if tc.wantErr != "" {
				assert.ErrorContains(t, err, tc.wantErr)
				assert.Nil(t, model)
				return
			}
			require.NoError(t, err)
			tc.check(t, model)
		})
	}
}

func TestLoader_Load_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope.hcl"))

	assert.ErrorContains(t, err, "error accessing path")
}
