package doc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	input := []byte(`
metadata:
  title: Backend service
  version: 1.2.0
targets: [claude, cursor]
instructions:
  general:
    - Use {{{ FRAMEWORK }}} conventions
  testing:
    - Write table-driven tests
context:
  language: Go
  services:
    - api
    - worker
examples:
  handler: "func Handle() {}"
variables:
  FRAMEWORK: Django
imports:
  - path: shared/style.yaml
    prefix: shared
conditions:
  - if: 'EDITOR == "claude"'
    then:
      instructions:
        general:
          - Claude-only rule
`)
	d, err := Parse(input, "test.yaml")
	require.NoError(t, err)

	assert.Equal(t, "Backend service", d.Metadata.Title)
	assert.Equal(t, []string{"claude", "cursor"}, d.Targets)
	assert.Equal(t, []string{"Use {{{ FRAMEWORK }}} conventions"}, d.Instructions["general"])
	assert.Equal(t, "Django", d.Variables["FRAMEWORK"])
	require.Len(t, d.Imports, 1)
	assert.Equal(t, "shared/style.yaml", d.Imports[0].Path)
	assert.Equal(t, "shared", d.Imports[0].Prefix)
	require.Len(t, d.Conditions, 1)
	require.NotNil(t, d.Conditions[0].Then)
	assert.Equal(t, []string{"Claude-only rule"}, d.Conditions[0].Then.Instructions["general"])
	assert.False(t, d.Resolved())
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte("instructions: [not: a: mapping"), "bad.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.yaml")
}

func TestCloneIsDeep(t *testing.T) {
	original := &Document{
		Instructions: map[string][]string{"general": {"a"}},
		Context:      map[string]any{"nested": map[string]any{"k": "v"}},
		Examples:     map[string]string{"e": "snippet"},
		Variables:    map[string]string{"X": "1"},
		Conditions: []ConditionRule{
			{If: "X", Then: &Patch{Instructions: map[string][]string{"general": {"b"}}}},
		},
	}

	clone := original.Clone()
	clone.Instructions["general"][0] = "changed"
	clone.Instructions["new"] = []string{"c"}
	clone.Context["nested"].(map[string]any)["k"] = "changed"
	clone.Examples["e"] = "changed"
	clone.Variables["X"] = "2"
	clone.Conditions[0].Then.Instructions["general"][0] = "changed"

	assert.Equal(t, "a", original.Instructions["general"][0])
	assert.NotContains(t, original.Instructions, "new")
	assert.Equal(t, "v", original.Context["nested"].(map[string]any)["k"])
	assert.Equal(t, "snippet", original.Examples["e"])
	assert.Equal(t, "1", original.Variables["X"])
	assert.Equal(t, "b", original.Conditions[0].Then.Instructions["general"][0])
}

func TestMergePatchAppends(t *testing.T) {
	d := &Document{
		Instructions: map[string][]string{"general": {"base rule"}},
		Examples:     map[string]string{"existing": "old"},
	}

	d.MergePatch(&Patch{
		Instructions: map[string][]string{
			"general": {"patched rule"},
			"testing": {"new category rule"},
		},
		Examples: map[string]string{"existing": "new", "added": "added snippet"},
	})

	assert.Equal(t, []string{"base rule", "patched rule"}, d.Instructions["general"])
	assert.Equal(t, []string{"new category rule"}, d.Instructions["testing"])
	// Later merge wins on example name collision
	assert.Equal(t, "new", d.Examples["existing"])
	assert.Equal(t, "added snippet", d.Examples["added"])
}

func TestMergePatchNil(t *testing.T) {
	d := &Document{Instructions: map[string][]string{"general": {"rule"}}}
	d.MergePatch(nil)
	assert.Equal(t, []string{"rule"}, d.Instructions["general"])
}

func TestMergePatchIntoEmptyDocument(t *testing.T) {
	d := &Document{}
	d.MergePatch(&Patch{Instructions: map[string][]string{"general": {"rule"}}})
	assert.Equal(t, []string{"rule"}, d.Instructions["general"])
}
