package testutil

import (
	"testing"

	"github.com/specialistvlad/skeletongen/internal/graph"
	"github.com/stretchr/testify/require"
)

// RequireDiagnostic asserts that a diagnostic with the given code and
// severity exists for the node (or edge, when nodeID is empty) and returns it.
func RequireDiagnostic(t *testing.T, diags graph.Diagnostics, sev graph.Severity, code, nodeID, edgeID string) graph.Diagnostic {
	t.Helper()

	for _, d := range diags {
		if d.Severity != sev || d.Code != code {
			continue
		}
		if nodeID != "" && d.NodeID != nodeID {
			continue
		}
		if edgeID != "" && d.EdgeID != edgeID {
			continue
		}
		return d
	}
	require.Failf(t, "diagnostic not found",
		"expected %s %s (node=%q edge=%q) in:\n%v", sev, code, nodeID, edgeID, diags)
	return graph.Diagnostic{}
}

// RequireNoErrors fails the test when any diagnostic has error severity.
func RequireNoErrors(t *testing.T, diags graph.Diagnostics) {
	t.Helper()
	require.False(t, diags.HasErrors(), "unexpected error diagnostics:\n%v", diags)
}
