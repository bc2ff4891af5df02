// internal/words/pool.go
//
// Candidate word pools.
//
// Responsibilities:
//   - Accumulate canonical words in fetch order, dropping duplicates.
//   - Pick a uniformly random secret via crypto/rand.
//   - Expose positional access for deterministic (daily) selection.
//
// Constraints:
//   • Callers add canonical words only (see Normalize / IsAlphabetic).
//   • Insertion order is preserved so position i means the same word on
//     every run against the same upstream list.

package words

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// ErrEmptyPool is returned by Pick when no candidates survived acquisition.
var ErrEmptyPool = errors.New("words: empty pool")

// Pool is an ordered, duplicate-free collection of canonical words.
type Pool struct {
	words []string
	seen  map[string]struct{}
}

// NewPool returns an empty pool.
func NewPool() *Pool {
	return &Pool{seen: make(map[string]struct{})}
}

// FromList builds a pool from an existing word list, preserving order and
// dropping duplicates. Used when rehydrating cached pools.
func FromList(list []string) *Pool {
	p := NewPool()
	for _, w := range list {
		p.Add(w)
	}
	return p
}

// Add appends word unless it was seen before, reporting whether it was new.
func (p *Pool) Add(word string) bool {
	if _, dup := p.seen[word]; dup {
		return false
	}
	p.seen[word] = struct{}{}
	p.words = append(p.words, word)
	return true
}

// Contains reports whether word is already pooled.
func (p *Pool) Contains(word string) bool {
	_, ok := p.seen[word]
	return ok
}

// Len reports the number of distinct words in the pool.
func (p *Pool) Len() int { return len(p.words) }

// At returns the word at position i in insertion order.
func (p *Pool) At(i int) string { return p.words[i] }

// Words returns a copy of the pooled words in insertion order.
func (p *Pool) Words() []string {
	out := make([]string, len(p.words))
	copy(out, p.words)
	return out
}

// Pick returns a uniformly random word from the pool.
func (p *Pool) Pick() (string, error) {
	if len(p.words) == 0 {
		return "", ErrEmptyPool
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(p.words))))
	if err != nil {
		return "", err
	}
	return p.words[n.Int64()], nil
}
