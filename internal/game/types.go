// internal/game/types.go
//
// Core type definitions for the guessing engine.
// Defines:
//   - Status: per-letter result of a guess (correct/present/absent).
//   - LetterMark, GuessResult: the letter-by-letter evaluation of one guess.
//   - State: lifecycle of a session (in_progress/won/lost/aborted).

package game

import "strings"

// Status represents the evaluation result for a single letter in a guess.
// Possible values:
//   - "correct": letter sits in the secret at this exact position.
//   - "present": letter occurs elsewhere in the secret and an occurrence
//     was still unconsumed when this position was scored.
//   - "absent":  no unconsumed occurrence of the letter remains.
type Status string

const (
	StatusCorrect Status = "correct"
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
)

// LetterMark pairs one guessed letter with its evaluation.
type LetterMark struct {
	Letter string `json:"letter"`
	Status Status `json:"status"`
}

// GuessResult is the full evaluation of one guess, one mark per letter,
// in guess order.
type GuessResult []LetterMark

// Word reassembles the canonical guessed word from its marks.
func (r GuessResult) Word() string {
	var b strings.Builder
	for _, m := range r {
		b.WriteString(m.Letter)
	}
	return b.String()
}

// AllCorrect reports whether every letter hit its exact position.
func (r GuessResult) AllCorrect() bool {
	if len(r) == 0 {
		return false
	}
	for _, m := range r {
		if m.Status != StatusCorrect {
			return false
		}
	}
	return true
}

// State is the lifecycle state of a session.
type State string

const (
	StateInProgress State = "in_progress"
	StateWon        State = "won"
	StateLost       State = "lost"
	StateAborted    State = "aborted"
)

// Terminal reports whether the session accepts no further guesses.
func (s State) Terminal() bool { return s != StateInProgress }
