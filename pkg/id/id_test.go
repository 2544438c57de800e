package id

import (
	"sort"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorMonotonic(t *testing.T) {
	t.Parallel()

	g := NewSeeded(42)

	ids := make([]string, 0, 500)
	for i := 0; i < 500; i++ {
		ids = append(ids, g.New())
	}

	assert.True(t, sort.StringsAreSorted(ids), "ids must sort in generation order")

	seen := map[string]bool{}
	for _, s := range ids {
		_, err := ulid.Parse(s)
		require.NoError(t, err)
		assert.False(t, seen[s], "duplicate id %s", s)
		seen[s] = true
	}
}

func TestNewGenerator(t *testing.T) {
	t.Parallel()

	g := NewGenerator()
	a, b := g.New(), g.New()
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 26)
}
