package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/goaltrack/internal/constants"
)

var (
	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Bold(true)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 1)

	titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)

	faintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	docStyle = lipgloss.NewStyle().Padding(1, 2)
)

// rateStyle colors a percentage by the same bands the CLI uses.
func rateStyle(pct int) lipgloss.Style {
	color := "240"
	switch {
	case pct >= constants.RateGreen:
		color = "42"
	case pct >= constants.RateYellow:
		color = "220"
	case pct >= constants.RateOrange:
		color = "208"
	case pct > 0:
		color = "196"
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

func bar(pct, width int) string {
	pct = min(max(pct, 0), 100)
	filled := pct * width / 100
	return rateStyle(pct).Render(strings.Repeat("█", filled)) + faintStyle.Render(strings.Repeat("░", width-filled))
}
