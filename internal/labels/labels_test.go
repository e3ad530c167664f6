package labels

import (
	"testing"

	"github.com/specialistvlad/skeletongen/internal/graph"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	v := Default()
	testCases := []struct {
		name  string
		kind  graph.Kind
		label string
		want  Role
	}{
		{"if exact true", graph.KindConditional, "true", RolePrimary},
		{"if mixed case and spaces", graph.KindConditional, "  Yes ", RolePrimary},
		{"if word inside sentence", graph.KindConditional, "amount is ok", RolePrimary},
		{"if false word", graph.KindConditional, "otherwise", RoleAlternative},
		{"if punctuation split", graph.KindConditional, "no-match", RoleAlternative},
		{"if unlabeled", graph.KindConditional, "", RoleNone},
		{"if unknown", graph.KindConditional, "maybe", RoleNone},
		{"if both roles", graph.KindConditional, "yes or no", RoleNone},
		{"loop body", graph.KindLoop, "for each", RolePrimary},
		{"loop exit", graph.KindLoop, "Done", RoleAlternative},
		{"try body", graph.KindGuarded, "attempt", RolePrimary},
		{"try catch", graph.KindGuarded, "on exception", RoleAlternative},
		{"guarded op success", graph.KindStatement, "success", RolePrimary},
		{"guarded op error", graph.KindStatement, "error", RoleAlternative},
		{"substring is not a word", graph.KindConditional, "notrue", RoleNone},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, v.Classify(tc.kind, tc.label))
		})
	}
}

func TestMerge_OverridesOnlyNonEmptyLists(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	base := Default()

	// --- Act ---
	merged := base.Merge(Vocabulary{IfTrue: []string{" Sí ", ""}})

	// --- Assert ---
	assert.Equal(t, []string{"sí"}, merged.IfTrue)
	assert.Equal(t, base.IfFalse, merged.IfFalse)
	assert.Equal(t, RolePrimary, merged.Classify(graph.KindConditional, "SÍ"))
	assert.Equal(t, RoleNone, merged.Classify(graph.KindConditional, "yes"))
}

func TestVocabulary_IsZero(t *testing.T) {
	t.Parallel()

	assert.True(t, Vocabulary{}.IsZero())
	assert.False(t, Default().IsZero())
}
