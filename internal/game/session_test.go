package game

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palabreo/palabreo/internal/words"
)

// stubSource returns a fixed pool or error and counts calls.
type stubSource struct {
	pool  *words.Pool
	err   error
	calls int
}

func (s *stubSource) Candidates(ctx context.Context, length int) (*words.Pool, error) {
	s.calls++
	return s.pool, s.err
}

func startWith(t *testing.T, list []string, cfg StartConfig) *Session {
	t.Helper()
	sess, err := Start(context.Background(), &stubSource{pool: words.FromList(list)}, cfg)
	require.NoError(t, err)
	return sess
}

func TestStartAcquiresOnce(t *testing.T) {
	src := &stubSource{pool: words.FromList([]string{"llama"})}
	sess, err := Start(context.Background(), src, StartConfig{Length: 5, MaxAttempts: 6})
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls)
	assert.Equal(t, StateInProgress, sess.State())
	assert.Equal(t, 5, sess.WordLength())
	assert.Equal(t, 6, sess.MaxAttempts())
	assert.Equal(t, 0, sess.Attempts())
}

func TestStartEmptyPool(t *testing.T) {
	src := &stubSource{pool: words.NewPool()}
	sess, err := Start(context.Background(), src, StartConfig{Length: 5, MaxAttempts: 6})
	assert.Nil(t, sess)
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestStartAcquisitionError(t *testing.T) {
	provider := errors.New("provider unreachable")
	src := &stubSource{err: provider}
	sess, err := Start(context.Background(), src, StartConfig{Length: 5, MaxAttempts: 6})
	assert.Nil(t, sess)
	assert.ErrorIs(t, err, provider)
	assert.NotErrorIs(t, err, ErrNoCandidates)
}

func TestGuessSecretWins(t *testing.T) {
	sess := startWith(t, []string{"llama"}, StartConfig{Length: 5, MaxAttempts: 6})

	res, err := sess.Guess("llama")
	require.NoError(t, err)
	assert.True(t, res.AllCorrect())
	assert.Equal(t, StateWon, sess.State())
	assert.Equal(t, 1, sess.Attempts())

	secret, ok := sess.Secret()
	assert.True(t, ok)
	assert.Equal(t, "llama", secret)
}

func TestSecretHiddenWhileInProgress(t *testing.T) {
	sess := startWith(t, []string{"llama"}, StartConfig{Length: 5, MaxAttempts: 6})
	secret, ok := sess.Secret()
	assert.False(t, ok)
	assert.Empty(t, secret)
}

func TestGuessNormalizesInput(t *testing.T) {
	sess := startWith(t, []string{"canon"}, StartConfig{Length: 5, MaxAttempts: 6})
	res, err := sess.Guess("  CAÑÓN ")
	require.NoError(t, err)
	assert.True(t, res.AllCorrect())
	assert.Equal(t, StateWon, sess.State())
}

func TestInvalidGuessConsumesNoAttempt(t *testing.T) {
	sess := startWith(t, []string{"llama"}, StartConfig{Length: 5, MaxAttempts: 6})

	cases := []struct {
		name  string
		guess string
		want  error
	}{
		{"too short", "gato", ErrWrongLength},
		{"too long", "gatitos", ErrWrongLength},
		{"digit", "gat0s", ErrNotAlphabetic},
		{"punctuation", "gat-o", ErrNotAlphabetic},
		{"empty", "", ErrWrongLength},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := sess.Guess(tc.guess)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tc.want)
			assert.ErrorIs(t, err, ErrInvalidGuess)
		})
	}

	assert.Equal(t, 0, sess.Attempts())
	assert.Empty(t, sess.History())
	assert.Equal(t, StateInProgress, sess.State())
}

func TestWinOnFinalAttempt(t *testing.T) {
	sess := startWith(t, []string{"llama"}, StartConfig{Length: 5, MaxAttempts: 2})

	_, err := sess.Guess("canon")
	require.NoError(t, err)
	assert.Equal(t, StateInProgress, sess.State())

	res, err := sess.Guess("llama")
	require.NoError(t, err)
	assert.True(t, res.AllCorrect())
	assert.Equal(t, StateWon, sess.State(), "win on the last attempt must beat the budget check")
}

func TestBudgetExhaustionLoses(t *testing.T) {
	sess := startWith(t, []string{"llama"}, StartConfig{Length: 5, MaxAttempts: 1})

	_, err := sess.Guess("canon")
	require.NoError(t, err)
	assert.Equal(t, StateLost, sess.State())
	assert.Equal(t, 0, sess.Remaining())

	secret, ok := sess.Secret()
	assert.True(t, ok)
	assert.Equal(t, "llama", secret)
}

func TestGuessAfterTerminalState(t *testing.T) {
	sess := startWith(t, []string{"llama"}, StartConfig{Length: 5, MaxAttempts: 1})
	_, err := sess.Guess("canon")
	require.NoError(t, err)

	res, err := sess.Guess("llama")
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrSessionOver)
	assert.Equal(t, 1, sess.Attempts())
}

func TestAbort(t *testing.T) {
	sess := startWith(t, []string{"llama"}, StartConfig{Length: 5, MaxAttempts: 6})
	sess.Abort()
	assert.Equal(t, StateAborted, sess.State())

	secret, ok := sess.Secret()
	assert.True(t, ok)
	assert.Equal(t, "llama", secret)

	_, err := sess.Guess("llama")
	assert.ErrorIs(t, err, ErrSessionOver)
}

func TestAbortDoesNotOverrideWin(t *testing.T) {
	sess := startWith(t, []string{"llama"}, StartConfig{Length: 5, MaxAttempts: 6})
	_, err := sess.Guess("llama")
	require.NoError(t, err)
	sess.Abort()
	assert.Equal(t, StateWon, sess.State())
}

func TestDailySecretIsDeterministic(t *testing.T) {
	list := []string{"llama", "canon", "perro", "gatos", "mundo"}
	cfg := StartConfig{Length: 5, MaxAttempts: 6, Daily: true, DailySalt: "salt"}

	reveal := func() string {
		sess := startWith(t, list, cfg)
		sess.Abort()
		secret, ok := sess.Secret()
		require.True(t, ok)
		return secret
	}
	assert.Equal(t, reveal(), reveal())
}

func TestHistoryIsACopy(t *testing.T) {
	sess := startWith(t, []string{"llama"}, StartConfig{Length: 5, MaxAttempts: 6})
	_, err := sess.Guess("canon")
	require.NoError(t, err)

	hist := sess.History()
	require.Len(t, hist, 1)
	hist[0] = nil
	assert.NotNil(t, sess.History()[0])
}

func TestNewSession(t *testing.T) {
	sess := NewSession("perro", 3)
	assert.Equal(t, StateInProgress, sess.State())
	assert.Equal(t, 5, sess.WordLength())
	assert.Equal(t, 3, sess.MaxAttempts())
	assert.False(t, sess.Daily())
}
