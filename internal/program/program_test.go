package program_test

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/skeletongen/internal/graph"
	"github.com/specialistvlad/skeletongen/internal/program"
	"github.com/specialistvlad/skeletongen/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func accountGuardGraph() *graph.Graph {
	return testutil.NewGraph().
		Node("v1", graph.VarPrimitive, graph.PropLabel, "Retry Limit", graph.PropDataType, "Integer", graph.PropDefaultValue, "3").
		Node("t1", graph.LogicTrigger,
			graph.PropLabel, "Account Guard",
			graph.PropObjectType, "Account",
			graph.PropTriggerEvents, "before update",
			graph.PropDescription, "Validates account changes").
		Node("q1", graph.LogicSOQL,
			graph.PropAPIName, "accounts",
			graph.PropObjectType, "Account",
			graph.PropQuery, "SELECT Id, Name FROM Account WHERE Id IN :newRecords").
		Node("l1", graph.LogicLoop, graph.PropObjectType, "Account", graph.PropAPIName, "accounts").
		Node("i1", graph.LogicIf, graph.PropCondition, "accountItem.Name == null").
		Node("a1", graph.LogicAssignment, graph.PropAPIName, "accountItem.Name", graph.PropCondition, "'Unnamed'").
		Node("d1", graph.LogicDML, graph.PropObjectType, "Account", graph.PropOperation, "update", graph.PropAPIName, "accounts").
		Node("e1", graph.LogicAssignment, graph.PropAPIName, "retryLimit", graph.PropCondition, "retryLimit - 1").
		Node("m1", graph.LogicMethod, graph.PropMethodName, "notifyOwners", graph.PropParameters, "Set<Id> ownerIds").
		Node("p1", graph.IntPlatformEvent, graph.PropAPIName, "Owner_Notice__e").
		Edge("t1", "q1").
		Edge("q1", "l1").
		Labeled("l1", "i1", "each").
		Labeled("i1", "a1", "true").
		Edge("a1", "l1").
		Labeled("l1", "d1", "done").
		Labeled("d1", "e1", "error").
		Edge("m1", "p1").
		Build()
}

func TestGenerate_Golden(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	want, err := os.ReadFile(filepath.Join("testdata", "account_guard.cls"))
	require.NoError(t, err)

	// --- Act ---
	res := program.Generate(accountGuardGraph(), program.Options{})

	// --- Assert ---
	if diff := cmp.Diff(string(want), res.SourceText); diff != "" {
		t.Errorf("generated source mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, res.Diagnostics)
	assert.Equal(t, "SolutionSkeleton.cls", res.FileName)
	assert.Equal(t, 1, res.Fields)
	assert.Equal(t, 2, res.Units)
}

func TestGenerate_IsDeterministicAndConcurrencySafe(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	g := accountGuardGraph()
	first := program.Generate(g, program.Options{})

	// --- Act ---
	var wg sync.WaitGroup
	results := make([]program.Result, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = program.Generate(g, program.Options{})
		}(i)
	}
	wg.Wait()

	// --- Assert ---
	for _, r := range results {
		assert.Equal(t, first, r)
	}
}

func TestGenerate_EmptyGraphYieldsShell(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		graph *graph.Graph
	}{
		{"nil graph", nil},
		{"no nodes", &graph.Graph{}},
		{"no entries", testutil.NewGraph().Node("a", graph.LogicAssignment, graph.PropCondition, "1").Build()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			res := program.Generate(tc.graph, program.Options{})

			want := "// Generated by skeletongen. Do not edit by hand.\n" +
				"public with sharing class SolutionSkeleton {\n" +
				"}\n"
			assert.Equal(t, want, res.SourceText)
			testutil.RequireDiagnostic(t, res.Diagnostics, graph.SeverityInfo, graph.CodeNoEntry, "", "")
			assert.False(t, res.Diagnostics.HasErrors())
		})
	}
}

func TestGenerate_HoistedVariablesKeepInputOrder(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	g := testutil.NewGraph().
		Node("m", graph.LogicMethod, graph.PropMethodName, "run").
		Node("z", graph.VarPrimitive, graph.PropAPIName, "zeta", graph.PropDataType, "String").
		Node("local", graph.VarPrimitive, graph.PropAPIName, "tmp", graph.PropDataType, "Integer").
		Node("a", graph.VarCollection, graph.PropAPIName, "alpha", graph.PropDataType, "Id").
		Edge("m", "local").
		Build()

	// --- Act ---
	res := program.Generate(g, program.Options{NoHeader: true, Indent: 2})

	// --- Assert ---
	want := "public with sharing class SolutionSkeleton {\n" +
		"  String zeta = '';\n" +
		"  List<Id> alpha = new List<Id>();\n" +
		"\n" +
		"  public static void run() {\n" +
		"    Integer tmp = 0;\n" +
		"  }\n" +
		"}\n"
	assert.Equal(t, want, res.SourceText)
	assert.Empty(t, res.Diagnostics)
}

func TestGenerate_Options(t *testing.T) {
	t.Parallel()

	g := testutil.NewGraph().Node("m", graph.LogicMethod, graph.PropMethodName, "run").Build()

	testCases := []struct {
		name     string
		opts     program.Options
		wantHead string
		wantFile string
	}{
		{"defaults", program.Options{}, "public with sharing class SolutionSkeleton {", "SolutionSkeleton.cls"},
		{"class name is normalized", program.Options{ClassName: "order sync"}, "public with sharing class OrderSync {", "OrderSync.cls"},
		{"without sharing", program.Options{Sharing: "without"}, "public without sharing class SolutionSkeleton {", "SolutionSkeleton.cls"},
		{"inherited sharing", program.Options{Sharing: "Inherited  Sharing"}, "public inherited sharing class SolutionSkeleton {", "SolutionSkeleton.cls"},
		{"no sharing keyword", program.Options{Sharing: "none"}, "public class SolutionSkeleton {", "SolutionSkeleton.cls"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			res := program.Generate(g, tc.opts)

			lines := strings.Split(res.SourceText, "\n")
			require.GreaterOrEqual(t, len(lines), 2)
			assert.Equal(t, tc.wantHead, lines[1])
			assert.Equal(t, tc.wantFile, res.FileName)
			assert.Equal(t, tc.wantFile, tc.opts.FileName())
		})
	}
}

func TestGenerate_StructuralErrorsBecomePlaceholders(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	g := testutil.NewGraph().
		Node("m", graph.LogicMethod, graph.PropMethodName, "run").
		Node("a", graph.LogicAssignment, graph.PropAPIName, "x", graph.PropCondition, "1").
		Node("b", graph.LogicAssignment, graph.PropAPIName, "y", graph.PropCondition, "2").
		Edge("m", "a").
		Edge("a", "b").
		EdgeWithID("b-a", "b", "a", "").
		Build()

	// --- Act ---
	res := program.Generate(g, program.Options{NoHeader: true})

	// --- Assert ---
	want := "public with sharing class SolutionSkeleton {\n" +
		"    public static void run() {\n" +
		"        x = 1;\n" +
		"        y = 2;\n" +
		"        // TODO: cycle through edge b-a back to LOGIC_ASSIGNMENT a removed\n" +
		"    }\n" +
		"}\n"
	assert.Equal(t, want, res.SourceText)

	// Validate and the assembler both find the same closing edge; it is
	// reported once.
	cycles := res.Diagnostics.WithCode(graph.CodeCycle)
	require.Len(t, cycles, 1)
	assert.Equal(t, "b-a", cycles[0].EdgeID)
}

func TestGenerate_PlaceholderSafety(t *testing.T) {
	t.Parallel()

	for _, s := range graph.Subtypes() {
		spec, _ := graph.Lookup(s)
		if len(spec.Required) == 0 {
			continue
		}
		t.Run(string(s), func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			b := testutil.NewGraph()
			if spec.Entry {
				b.Node("n", s)
			} else {
				b.Node("m", graph.LogicMethod).Node("n", s).Edge("m", "n")
			}

			// --- Act ---
			res := program.Generate(b.Build(), program.Options{})

			// --- Assert ---
			assert.Contains(t, res.SourceText, "TODO: ")
			testutil.RequireDiagnostic(t, res.Diagnostics, graph.SeverityWarning, graph.CodeMissingProperty, "n", "")
		})
	}
}

func TestGenerate_TryCatchAndGuardedRendering(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	g := testutil.NewGraph().
		Node("m", graph.LogicMethod, graph.PropMethodName, "sync").
		Node("t", graph.LogicTryCatch).
		Node("r", graph.IntREST, graph.PropAPIName, "crm", graph.PropEndpoint, "callout:CRM/accounts").
		Node("ok", graph.LogicAssignment, graph.PropAPIName, "done", graph.PropCondition, "true").
		Edge("m", "t").
		Labeled("t", "r", "try").
		Labeled("r", "ok", "success").
		Build()

	// --- Act ---
	res := program.Generate(g, program.Options{NoHeader: true})

	// --- Assert ---
	want := "public with sharing class SolutionSkeleton {\n" +
		"    public static void sync() {\n" +
		"        try {\n" +
		"            HttpRequest crmRequest = new HttpRequest();\n" +
		"            crmRequest.setEndpoint('callout:CRM/accounts');\n" +
		"            crmRequest.setMethod('GET');\n" +
		"            HttpResponse crmResponse = new Http().send(crmRequest);\n" +
		"            done = true;\n" +
		"        } catch (Exception e) {\n" +
		"            // TODO: handle exception\n" +
		"        }\n" +
		"    }\n" +
		"}\n"
	assert.Equal(t, want, res.SourceText)
	assert.Empty(t, res.Diagnostics)
}
