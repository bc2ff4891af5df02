// internal/game/evaluate.go
//
// Letter-by-letter guess evaluation.

package game

// Evaluate compares guess against secret and returns one mark per letter.
// Both strings must be canonical (lowercase a–z) and the same length; the
// session validates before calling.
//
// Standard two-pass scoring:
//
// Pass 1:
//   - Mark exact position matches as correct.
//   - Count every unmatched secret letter.
//
// Pass 2:
//   - For each non-correct tile, left to right: if unmatched occurrences of
//     that letter remain, mark present and consume one; otherwise absent.
//
// Consuming occurrences keeps duplicate letters honest: a guess letter is
// present only while the secret still holds an unaccounted copy of it.
func Evaluate(guess, secret string) GuessResult {
	n := len(secret)
	marks := make(GuessResult, n)

	// Unmatched secret letter frequencies (canonical a–z, byte keys).
	remaining := make(map[byte]int, n)

	// First pass: exact matches, and counts for what is left of the secret.
	for i := 0; i < n; i++ {
		if guess[i] == secret[i] {
			marks[i] = LetterMark{Letter: string(guess[i]), Status: StatusCorrect}
		} else {
			remaining[secret[i]]++
		}
	}

	// Second pass: resolve present/absent for the remaining tiles.
	for i := 0; i < n; i++ {
		if marks[i].Status == StatusCorrect {
			continue
		}
		c := guess[i]
		if remaining[c] > 0 {
			marks[i] = LetterMark{Letter: string(c), Status: StatusPresent}
			remaining[c]--
		} else {
			marks[i] = LetterMark{Letter: string(c), Status: StatusAbsent}
		}
	}
	return marks
}
