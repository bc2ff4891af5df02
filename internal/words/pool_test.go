package words

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolAddDedupesPreservingOrder(t *testing.T) {
	p := NewPool()
	added := make([]bool, 0, 5)
	for _, w := range []string{"llama", "canon", "llama", "perro", "canon"} {
		added = append(added, p.Add(w))
	}
	assert.Equal(t, []bool{true, true, false, true, false}, added)
	assert.Equal(t, 3, p.Len())
	assert.Equal(t, []string{"llama", "canon", "perro"}, p.Words())
	assert.Equal(t, "canon", p.At(1))
	assert.True(t, p.Contains("perro"))
	assert.False(t, p.Contains("gatos"))
}

func TestFromList(t *testing.T) {
	p := FromList([]string{"gatos", "gatos", "perro"})
	assert.Equal(t, []string{"gatos", "perro"}, p.Words())
}

func TestPoolWordsReturnsCopy(t *testing.T) {
	p := FromList([]string{"llama", "canon"})
	out := p.Words()
	out[0] = "mutated"
	assert.Equal(t, "llama", p.At(0))
}

func TestPickEmptyPool(t *testing.T) {
	p := NewPool()
	_, err := p.Pick()
	assert.ErrorIs(t, err, ErrEmptyPool)
}

func TestPickSingleWordIsDeterministic(t *testing.T) {
	p := FromList([]string{"llama"})
	for i := 0; i < 10; i++ {
		w, err := p.Pick()
		require.NoError(t, err)
		assert.Equal(t, "llama", w)
	}
}

func TestPickReturnsPoolMember(t *testing.T) {
	p := FromList([]string{"llama", "canon", "perro", "gatos"})
	for i := 0; i < 20; i++ {
		w, err := p.Pick()
		require.NoError(t, err)
		assert.True(t, p.Contains(w), "picked %q which is not in the pool", w)
	}
}
