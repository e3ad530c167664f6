package config

import (
	"testing"

	"github.com/specialistvlad/skeletongen/internal/labels"
	"github.com/specialistvlad/skeletongen/internal/program"
	"github.com/stretchr/testify/assert"
)

func TestDefault_MatchesGeneratorDefaults(t *testing.T) {
	t.Parallel()

	m := Default()

	assert.NoError(t, m.Validate())
	assert.Equal(t, program.DefaultOptions(), m.Options())
}

func TestModel_Validate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		mutate  func(m *Model)
		wantErr string
	}{
		{"defaults", func(*Model) {}, ""},
		{"negative indent", func(m *Model) { m.Class.Indent = -1 }, "class indent must be between 0 and 16"},
		{"huge indent", func(m *Model) { m.Class.Indent = 17 }, "class indent must be between 0 and 16"},
		{"short sharing", func(m *Model) { m.Class.Sharing = "without" }, ""},
		{"bad sharing", func(m *Model) { m.Class.Sharing = "public" }, `unsupported class sharing "public"`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			m := Default()
			tc.mutate(m)

			err := m.Validate()

			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestModel_OptionsMergesPartialVocabulary(t *testing.T) {
	t.Parallel()

	m := &Model{Labels: labels.Vocabulary{IfTrue: []string{"Approved"}}}

	opts := m.Options()

	assert.Equal(t, []string{"approved"}, opts.Vocabulary.IfTrue)
	assert.Equal(t, labels.Default().IfFalse, opts.Vocabulary.IfFalse)
}
