// internal/words/normalize.go
//
// Canonicalization of raw word text.
//
// Responsibilities:
//   - Normalize provider entries and player guesses into one canonical form
//     so comparisons are exact string equality.
//   - Reject words that fall outside the unaccented a–z alphabet.
//
// Canonical form:
//   1. Unicode compatibility decomposition (NFKD).
//   2. Removal of combining marks (ñ → n, á → a, ü → u).
//   3. Recomposition (NFC) and lowercasing.
//
// "CAÑÓN" and "canon" are therefore the same word everywhere downstream.

package words

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes, drops combining marks, recomposes.
var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize returns the canonical form of word: accents stripped, lowercase.
// Surrounding whitespace is not touched; trim before calling if needed.
func Normalize(word string) string {
	clean, _, err := transform.String(stripMarks, word)
	if err != nil {
		// Malformed input passes through; the alphabet check rejects it later.
		clean = word
	}
	return strings.ToLower(clean)
}

// IsAlphabetic reports whether word is non-empty and built solely from
// unaccented lowercase letters a–z. Call on canonical (Normalized) words.
func IsAlphabetic(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		if word[i] < 'a' || word[i] > 'z' {
			return false
		}
	}
	return true
}
