package words

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"accented uppercase", "CAÑÓN", "canon"},
		{"all vowel accents", "áéíóú", "aeiou"},
		{"diaeresis", "pingüino", "pinguino"},
		{"mixed case no accents", "LLaMa", "llama"},
		{"already canonical", "canon", "canon"},
		{"empty", "", ""},
		{"digits pass through", "año2", "ano2"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, w := range []string{"CAÑÓN", "pingüino", "llama", "ÁRBOL"} {
		once := Normalize(w)
		assert.Equal(t, once, Normalize(once), "normalizing twice must not change %q", w)
	}
}

func TestIsAlphabetic(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want bool
	}{
		{"plain word", "canon", true},
		{"single letter", "a", true},
		{"empty", "", false},
		{"uppercase is not canonical", "CANON", false},
		{"digit", "can0n", false},
		{"hyphen", "re-do", false},
		{"accent survives when not normalized", "año", false},
		{"space", "two words", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsAlphabetic(tc.in))
		})
	}
}

func TestNormalizeThenIsAlphabetic(t *testing.T) {
	// The full guess pipeline: canonical form of an accented word is accepted.
	assert.True(t, IsAlphabetic(Normalize("CAÑÓN")))
	assert.False(t, IsAlphabetic(Normalize("c4ñón")))
}
