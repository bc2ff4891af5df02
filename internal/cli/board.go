// internal/cli/board.go
//
// Colored tiles for scored guesses.

package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/palabreo/palabreo/internal/game"
)

var (
	correctStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("2")).Padding(0, 1)
	presentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("3")).Padding(0, 1)
	absentStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("1")).Padding(0, 1)

	winStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	loseStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// renderRow paints one scored guess as a row of tiles, green for placed
// letters, yellow for misplaced ones, red for misses.
func renderRow(marks game.GuessResult) string {
	tiles := lo.Map(marks, func(m game.LetterMark, _ int) string {
		return styleFor(m.Status).Render(strings.ToUpper(m.Letter))
	})
	return strings.Join(tiles, " ")
}

func styleFor(s game.Status) lipgloss.Style {
	switch s {
	case game.StatusCorrect:
		return correctStyle
	case game.StatusPresent:
		return presentStyle
	default:
		return absentStyle
	}
}
