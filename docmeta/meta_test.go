package docmeta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBlock(t *testing.T) {
	t.Run("single field", func(t *testing.T) {
		meta := ParseBlock(":casecomponent: storage")
		assert.Equal(t, map[string]string{"casecomponent": "storage"}, meta)
	})

	t.Run("multiple fields", func(t *testing.T) {
		meta := ParseBlock(":requirement: REQ-1\n:caselevel: integration")
		assert.Equal(t, map[string]string{
			"requirement": "REQ-1",
			"caselevel":   "integration",
		}, meta)
	})

	t.Run("value continues until blank line", func(t *testing.T) {
		meta := ParseBlock(":steps:\n  1. start the service\n  2. poke it\n\ntrailing prose")
		require.Contains(t, meta, "steps")
		assert.Equal(t, "1. start the service\n2. poke it", meta["steps"])
	})

	t.Run("value continues until next marker", func(t *testing.T) {
		meta := ParseBlock(":description: first line\n second line\n:status: approved")
		assert.Equal(t, "first line\nsecond line", meta["description"])
		assert.Equal(t, "approved", meta["status"])
	})

	t.Run("empty value is present", func(t *testing.T) {
		meta := ParseBlock("some docs\n:automated:\nmore docs")
		value, ok := meta["automated"]
		require.True(t, ok)
		assert.Equal(t, "", value)
	})

	t.Run("no markers", func(t *testing.T) {
		assert.Empty(t, ParseBlock("just a docstring\nwith two lines"))
	})

	t.Run("double colon is not a marker", func(t *testing.T) {
		assert.Empty(t, ParseBlock("see pkg::func for details"))
	})
}

func TestMerge(t *testing.T) {
	meta := Merge([]string{
		":component: outer\n:owner: alice",
		":component: middle",
		":component: inner\n:extra: yes",
	})

	assert.Equal(t, map[string]string{
		"component": "inner",
		"owner":     "alice",
		"extra":     "yes",
	}, meta)
}

func TestDocChain(t *testing.T) {
	chain := DocChain{
		Packages: []string{":component: pkg\npackage docs", "", "  module docs  "},
		Classes:  []string{":component: base", ":component: leaf"},
		Own:      "own docs\n:priority: high",
	}

	t.Run("flatten skips absent docs and normalizes", func(t *testing.T) {
		docs := chain.Flatten()
		require.Len(t, docs, 5)
		assert.Equal(t, "module docs", docs[1])
		assert.Equal(t, "own docs\n:priority: high", docs[4])
	})

	t.Run("innermost scope wins", func(t *testing.T) {
		meta := chain.Meta()
		assert.Equal(t, "leaf", meta["component"])
		assert.Equal(t, "high", meta["priority"])
	})

	t.Run("empty chain", func(t *testing.T) {
		empty := DocChain{}
		assert.Empty(t, empty.Flatten())
		assert.Empty(t, empty.Meta())
	})
}
