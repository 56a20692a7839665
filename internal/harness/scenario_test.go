package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario(t *testing.T) {
	s, err := LoadScenario(filepath.Join("testdata", "scenarios", "exact-arithmetic.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "exact-arithmetic", s.Name)
	assert.Equal(t, 10, s.Digits)
	assert.Equal(t, 10, s.radix())
	require.Len(t, s.Steps, 7)
	assert.Equal(t, "2 sqrt dup *", s.Steps[0].Eval)
	require.NotNil(t, s.Steps[0].Expect.Exact)
	assert.True(t, *s.Steps[0].Expect.Exact)
	assert.Equal(t, []string{"pi", "22/7"}, s.Steps[5].Compare)
	assert.Len(t, s.Assertions, 3)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_UnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typo.yaml")
	content := `
name: typo
description: misspelled field
steps:
  - eval: "1"
assertion:
  - type: history_count
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestParseScenario_Defaults(t *testing.T) {
	s, err := ParseScenario([]byte("name: d\ndescription: d\nsteps:\n  - eval: \"1\"\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultDigits, s.digits())
	assert.Equal(t, DefaultRadix, s.radix())
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		errSubstr string
	}{
		{
			name:      "missing name",
			yaml:      "description: d\nsteps:\n  - eval: \"1\"\n",
			errSubstr: "name is required",
		},
		{
			name:      "missing description",
			yaml:      "name: n\nsteps:\n  - eval: \"1\"\n",
			errSubstr: "description is required",
		},
		{
			name:      "no steps",
			yaml:      "name: n\ndescription: d\n",
			errSubstr: "steps list is required",
		},
		{
			name:      "bad radix",
			yaml:      "name: n\ndescription: d\nradix: 20\nsteps:\n  - eval: \"1\"\n",
			errSubstr: "radix must be between 2 and 16",
		},
		{
			name:      "empty step",
			yaml:      "name: n\ndescription: d\nsteps:\n  - expect:\n      result: \"1\"\n",
			errSubstr: "one of eval or compare is required",
		},
		{
			name:      "eval and compare",
			yaml:      "name: n\ndescription: d\nsteps:\n  - eval: \"1\"\n    compare: [\"1\", \"2\"]\n",
			errSubstr: "mutually exclusive",
		},
		{
			name:      "compare arity",
			yaml:      "name: n\ndescription: d\nsteps:\n  - compare: [\"1\"]\n",
			errSubstr: "exactly two expressions",
		},
		{
			name:      "order on eval",
			yaml:      "name: n\ndescription: d\nsteps:\n  - eval: \"1\"\n    expect:\n      order: \"<\"\n",
			errSubstr: "order only applies to compare",
		},
		{
			name:      "unknown order",
			yaml:      "name: n\ndescription: d\nsteps:\n  - compare: [\"1\", \"2\"]\n    expect:\n      order: \"<=\"\n",
			errSubstr: "unknown order",
		},
		{
			name:      "error with result",
			yaml:      "name: n\ndescription: d\nsteps:\n  - eval: \"1\"\n    expect:\n      error: DOMAIN\n      result: \"1\"\n",
			errSubstr: "error excludes other expectations",
		},
		{
			name:      "unknown assertion",
			yaml:      "name: n\ndescription: d\nsteps:\n  - eval: \"1\"\nassertions:\n  - type: final_state\n",
			errSubstr: "unknown assertion type",
		},
		{
			name:      "history_contains without expression",
			yaml:      "name: n\ndescription: d\nsteps:\n  - eval: \"1\"\nassertions:\n  - type: history_contains\n",
			errSubstr: "expression is required",
		},
		{
			name:      "trace_order without expressions",
			yaml:      "name: n\ndescription: d\nsteps:\n  - eval: \"1\"\nassertions:\n  - type: trace_order\n",
			errSubstr: "expressions list is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}
