// internal/game/session.go
//
// Single-round session state machine.
//
// Responsibilities:
//   - Acquire a candidate pool exactly once at start and pick the secret.
//   - Validate and score guesses against the attempt budget.
//   - Track transitions: in_progress → won/lost, or aborted via Abort.
//
// Notes:
//   - Rejected guesses consume no attempt and append nothing to history.
//   - The win check runs before the budget check, so a correct guess on the
//     final attempt wins.
//   - The secret is readable only once the session is terminal.

package game

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/palabreo/palabreo/internal/words"
)

// Classic dimensions, used when a caller leaves them unspecified.
const (
	DefaultLength   = 5
	DefaultAttempts = 6
)

// Source supplies candidate pools for a word length. The Datamuse client
// and its cache decorator implement it; tests inject stubs.
type Source interface {
	Candidates(ctx context.Context, length int) (*words.Pool, error)
}

// StartConfig carries the dimensions of a new session. Values are assumed
// pre-validated by the config layer.
type StartConfig struct {
	Length      int    // letters per word
	MaxAttempts int    // guess budget
	Daily       bool   // pick today's word instead of a random one
	DailySalt   string // deployment salt for the daily sequence
}

// Session holds the state of one round. Not safe for concurrent use;
// callers that share sessions serialize access (see the store package).
type Session struct {
	secret      string
	maxAttempts int
	daily       bool
	history     []GuessResult
	state       State
}

// Start acquires candidates from src and begins a session.
//
// Failure modes:
//   - src error: returned wrapped, no session exists.
//   - empty pool: ErrNoCandidates.
//
// The pool is discarded once the secret is chosen.
func Start(ctx context.Context, src Source, cfg StartConfig) (*Session, error) {
	pool, err := src.Candidates(ctx, cfg.Length)
	if err != nil {
		return nil, fmt.Errorf("acquiring candidates: %w", err)
	}
	if pool == nil || pool.Len() == 0 {
		return nil, ErrNoCandidates
	}

	var secret string
	if cfg.Daily {
		secret = pool.At(words.DailyIndex(time.Now(), cfg.DailySalt, pool.Len()))
	} else {
		secret, err = pool.Pick()
		if err != nil {
			return nil, fmt.Errorf("picking secret: %w", err)
		}
	}

	return &Session{
		secret:      secret,
		maxAttempts: cfg.MaxAttempts,
		daily:       cfg.Daily,
		state:       StateInProgress,
	}, nil
}

// NewSession begins a session around an already-chosen canonical secret.
// Used when acquisition happened elsewhere, and by tests.
func NewSession(secret string, maxAttempts int) *Session {
	return &Session{secret: secret, maxAttempts: maxAttempts, state: StateInProgress}
}

// Guess validates, scores, and records one attempt.
//
// Validation order:
//  1. Session must be in progress (ErrSessionOver).
//  2. Canonical form must have the session's letter count (ErrWrongLength).
//  3. Canonical form must be a–z only (ErrNotAlphabetic).
//
// The returned error is nil exactly when the guess was scored and recorded.
func (s *Session) Guess(raw string) (GuessResult, error) {
	if s.state != StateInProgress {
		return nil, ErrSessionOver
	}

	guess := words.Normalize(strings.TrimSpace(raw))
	if utf8.RuneCountInString(guess) != len(s.secret) {
		return nil, ErrWrongLength
	}
	if !words.IsAlphabetic(guess) {
		return nil, ErrNotAlphabetic
	}

	res := Evaluate(guess, s.secret)
	s.history = append(s.history, res)

	switch {
	case res.AllCorrect():
		s.state = StateWon
	case len(s.history) >= s.maxAttempts:
		s.state = StateLost
	}
	return res, nil
}

// Abort ends an in-progress session. Terminal sessions are left unchanged.
func (s *Session) Abort() {
	if s.state == StateInProgress {
		s.state = StateAborted
	}
}

// State reports the current lifecycle state.
func (s *Session) State() State { return s.state }

// WordLength is the number of letters in the secret.
func (s *Session) WordLength() int { return len(s.secret) }

// MaxAttempts is the guess budget.
func (s *Session) MaxAttempts() int { return s.maxAttempts }

// Attempts counts scored guesses. Rejected guesses do not count.
func (s *Session) Attempts() int { return len(s.history) }

// Remaining is the unused part of the budget.
func (s *Session) Remaining() int { return s.maxAttempts - len(s.history) }

// Daily reports whether the secret is the deterministic word of the day.
func (s *Session) Daily() bool { return s.daily }

// History returns a copy of the scored guesses in play order.
func (s *Session) History() []GuessResult {
	out := make([]GuessResult, len(s.history))
	copy(out, s.history)
	return out
}

// Secret reveals the answer for the post-mortem once the session is
// terminal. While the round is in progress it returns ("", false).
func (s *Session) Secret() (string, bool) {
	if !s.state.Terminal() {
		return "", false
	}
	return s.secret, true
}
