package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExhaustingServesEveryItemBeforeRepeating(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e", "f", "g"}
	p := NewShuffled(NewRand("pool-test"), items)

	require.Equal(t, StateHasItems, p.State())

	seen := make(map[string]bool)
	for i := 0; i < len(items); i++ {
		item, ok := p.Next()
		require.True(t, ok)
		assert.False(t, seen[item], "item %q repeated within one pass", item)
		seen[item] = true
	}
	assert.Len(t, seen, len(items))
	assert.Equal(t, StateExhausted, p.State())
	assert.Equal(t, 0, p.Remaining())
	assert.Equal(t, 1, p.Passes())

	// query N+1 starts a new pass
	item, ok := p.Next()
	require.True(t, ok)
	assert.Contains(t, items, item)
	assert.Equal(t, 2, p.Passes())
	assert.Equal(t, len(items)-1, p.Remaining())
}

func TestExhaustingSecondPassAlsoCoversAll(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	p := NewExhausting(NewRand("passes"), items)

	for pass := 0; pass < 3; pass++ {
		seen := make(map[int]bool)
		for i := 0; i < len(items); i++ {
			v, ok := p.Next()
			require.True(t, ok)
			seen[v] = true
		}
		assert.Len(t, seen, len(items), "pass %d", pass+1)
	}
}

func TestExhaustingKeepsGivenOrderOnFirstPass(t *testing.T) {
	p := NewExhausting(NewRand("order"), []string{"x", "y", "z"})
	for _, want := range []string{"x", "y", "z"} {
		got, ok := p.Next()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestExhaustingEmptyIsTerminal(t *testing.T) {
	p := NewExhausting[string](NewRand("empty"), nil)
	for i := 0; i < 3; i++ {
		v, ok := p.Next()
		assert.False(t, ok)
		assert.Empty(t, v)
	}
	assert.Equal(t, StateEmpty, p.State())
	assert.Equal(t, "empty", p.State().String())
	assert.Equal(t, 1, p.Passes())
}

func TestExhaustingDoesNotAliasInput(t *testing.T) {
	items := []string{"a", "b", "c"}
	p := NewShuffled(NewRand("alias"), items)
	for i := 0; i < 10; i++ {
		p.Next()
	}
	assert.Equal(t, []string{"a", "b", "c"}, items)
}

func TestNewRandIsDeterministic(t *testing.T) {
	phrase := SeedPhrase("x", "2026-02-11", 1, 1)
	assert.Equal(t, "x:2026-02-11:1:1", phrase)

	r1, r2 := NewRand(phrase), NewRand(phrase)
	for i := 0; i < 20; i++ {
		assert.Equal(t, r1.Uint64(), r2.Uint64())
	}

	other := NewRand(SeedPhrase("x", "2026-02-12", 1, 1))
	assert.NotEqual(t, NewRand(phrase).Uint64(), other.Uint64())
}
