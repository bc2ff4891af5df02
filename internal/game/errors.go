// internal/game/errors.go
//
// Sentinel errors for guess validation and session lifecycle.
// ErrWrongLength and ErrNotAlphabetic wrap ErrInvalidGuess so callers can
// match the family with errors.Is and still branch on the exact reason.

package game

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGuess is the family head for rejected guesses. A rejected
	// guess consumes no attempt and leaves the session untouched.
	ErrInvalidGuess = errors.New("invalid guess")

	// ErrWrongLength rejects guesses whose canonical form does not have
	// exactly the session's word length.
	ErrWrongLength = fmt.Errorf("%w: wrong length", ErrInvalidGuess)

	// ErrNotAlphabetic rejects guesses with characters outside a-z after
	// normalization.
	ErrNotAlphabetic = fmt.Errorf("%w: not alphabetic", ErrInvalidGuess)

	// ErrSessionOver rejects guesses once the session reached a terminal
	// state.
	ErrSessionOver = errors.New("session already over")

	// ErrNoCandidates means acquisition worked but yielded zero usable
	// words for the requested length.
	ErrNoCandidates = errors.New("no candidate words for requested length")
)
