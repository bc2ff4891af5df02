// internal/cli/play.go
//
// Interactive terminal round.
//
// Responsibilities:
//   - Prompt for word length and attempt budget when the flags omit them.
//   - Drive a session guess-by-guess, re-prompting on rejected input
//     without spending attempts.
//   - Render scored rows as colored tiles and reveal the word when the
//     round ends without a win.

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/palabreo/palabreo/internal/config"
	"github.com/palabreo/palabreo/internal/game"
	"github.com/palabreo/palabreo/internal/words"
)

// PlayCmd returns the interactive game command.
func PlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a round in the terminal",
		RunE:  runPlay,
	}
	cmd.Flags().Int("length", 0, "word length (prompted when omitted)")
	cmd.Flags().Int("attempts", 0, "maximum attempts (prompted when omitted)")
	cmd.Flags().Bool("daily", false, "play today's shared word instead of a random one")
	cmd.Flags().String("lang", "", "vocabulary language code (overrides PALABREO_LANGUAGE)")
	return cmd
}

func runPlay(cmd *cobra.Command, _ []string) error {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := applyLogLevel(cmd, cfg.Log.Level); err != nil {
		return err
	}
	if lang, _ := cmd.Flags().GetString("lang"); lang != "" {
		lang = words.Normalize(lang)
		if !words.IsAlphabetic(lang) {
			return fmt.Errorf("invalid language %q: lowercase letters only", lang)
		}
		cfg.Language = lang
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	length, attempts, err := roundDims(ctx, cmd, cfg)
	if err != nil {
		if interrupted(ctx, err) {
			fmt.Println("Interrupted.")
			return nil
		}
		return err
	}
	daily, _ := cmd.Flags().GetBool("daily")

	src, closeSrc, err := buildSource(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeSrc(); err != nil {
			log.Warn().Err(err).Msg("closing word cache")
		}
	}()

	sess, err := game.Start(ctx, src, game.StartConfig{
		Length:      length,
		MaxAttempts: attempts,
		Daily:       daily,
		DailySalt:   cfg.Daily.Salt,
	})
	if err != nil {
		if ctx.Err() != nil {
			fmt.Println("Interrupted.")
			return nil
		}
		if errors.Is(err, game.ErrNoCandidates) {
			return fmt.Errorf("no %d-letter words available for language %q", length, cfg.Language)
		}
		return err
	}

	fmt.Printf("Guess the %d-letter word. You have %d attempts.\n", sess.WordLength(), sess.MaxAttempts())
	for sess.State() == game.StateInProgress {
		raw, err := promptGuess(ctx, sess.Attempts()+1, sess.MaxAttempts())
		if err != nil {
			if interrupted(ctx, err) {
				sess.Abort()
				break
			}
			return err
		}
		marks, err := sess.Guess(raw)
		if err != nil {
			switch {
			case errors.Is(err, game.ErrWrongLength):
				fmt.Println(warnStyle.Render(fmt.Sprintf("The word has exactly %d letters.", sess.WordLength())))
			case errors.Is(err, game.ErrNotAlphabetic):
				fmt.Println(warnStyle.Render("Letters only, no digits or punctuation."))
			default:
				return err
			}
			continue
		}
		fmt.Println(renderRow(marks))
	}

	secret, _ := sess.Secret()
	switch sess.State() {
	case game.StateWon:
		fmt.Println(winStyle.Render(fmt.Sprintf("You got it in %d/%d.", sess.Attempts(), sess.MaxAttempts())))
	case game.StateLost:
		fmt.Println(loseStyle.Render(fmt.Sprintf("Out of attempts. The word was %q.", secret)))
	case game.StateAborted:
		fmt.Printf("Round aborted. The word was %q.\n", secret)
	}
	return nil
}

// roundDims resolves word length and attempt budget from flags, prompting
// for whichever the player left unset.
func roundDims(ctx context.Context, cmd *cobra.Command, cfg *config.Config) (int, int, error) {
	length, _ := cmd.Flags().GetInt("length")
	attempts, _ := cmd.Flags().GetInt("attempts")

	if length == 0 {
		hint := fmt.Sprintf("%d to %d", cfg.Words.MinLength, cfg.Words.MaxLength)
		if err := promptInt(ctx, "Word length", hint, strconv.Itoa(game.DefaultLength), &length, cfg.CheckLength); err != nil {
			return 0, 0, err
		}
	} else if err := cfg.CheckLength(length); err != nil {
		return 0, 0, err
	}

	if attempts == 0 {
		hint := fmt.Sprintf("%d to %d", cfg.Attempts.Min, cfg.Attempts.Max)
		if err := promptInt(ctx, "Attempts", hint, strconv.Itoa(game.DefaultAttempts), &attempts, cfg.CheckAttempts); err != nil {
			return 0, 0, err
		}
	} else if err := cfg.CheckAttempts(attempts); err != nil {
		return 0, 0, err
	}

	return length, attempts, nil
}

func promptInt(ctx context.Context, title, hint, initial string, out *int, check func(int) error) error {
	raw := initial
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(title).
			Description(hint).
			Value(&raw).
			Validate(func(s string) error {
				n, err := strconv.Atoi(strings.TrimSpace(s))
				if err != nil {
					return errors.New("enter a whole number")
				}
				return check(n)
			}),
	))
	if err := form.RunWithContext(ctx); err != nil {
		return err
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return err
	}
	*out = n
	return nil
}

func promptGuess(ctx context.Context, attempt, max int) (string, error) {
	var raw string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(fmt.Sprintf("Attempt %d of %d", attempt, max)).
			Value(&raw),
	))
	if err := form.RunWithContext(ctx); err != nil {
		return "", err
	}
	return raw, nil
}

// interrupted reports whether err means the player backed out, either by
// canceling the form or through an OS signal.
func interrupted(ctx context.Context, err error) bool {
	return errors.Is(err, huh.ErrUserAborted) || ctx.Err() != nil
}
