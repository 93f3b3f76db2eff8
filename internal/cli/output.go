package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/truncate"

	"github.com/julianstephens/goaltrack/internal/constants"
)

var (
	Bold  = color.New(color.Bold)
	Faint = color.New(color.Faint)
	Head  = color.New(color.Bold, color.Underline)
	Alert = color.New(color.FgRed)
)

// NewTable returns a two-space separated table.
func NewTable() *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	return tbl
}

// RateColor picks the color band for a completion percentage.
func RateColor(pct int) *color.Color {
	switch {
	case pct >= constants.RateGreen:
		return color.New(color.FgGreen)
	case pct >= constants.RateYellow:
		return color.New(color.FgYellow)
	case pct >= constants.RateOrange:
		return color.New(color.FgHiRed)
	case pct > 0:
		return color.New(color.FgRed)
	}
	return color.New(color.FgHiBlack)
}

// Bar draws a width-cell progress bar colored by pct.
func Bar(pct, width int) string {
	pct = min(max(pct, 0), 100)
	filled := pct * width / 100
	return RateColor(pct).Sprint(strings.Repeat("█", filled)) + Faint.Sprint(strings.Repeat("░", width-filled))
}

// Pct renders a colored percentage.
func Pct(pct int) string {
	return RateColor(pct).Sprintf("%3d%%", pct)
}

// Check renders a done marker.
func Check(done bool) string {
	if done {
		return color.New(color.FgGreen).Sprint("[x]")
	}
	return "[ ]"
}

// Truncate shortens s to width cells, ANSI-aware.
func Truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	return truncate.StringWithTail(s, uint(width), "…")
}

// Plural renders "1 habit", "3 habits", "2 categories".
func Plural(n int, word string) string {
	switch {
	case n == 1:
		return fmt.Sprintf("%d %s", n, word)
	case len(word) > 1 && word[len(word)-1] == 'y' && !strings.ContainsRune("aeiou", rune(word[len(word)-2])):
		return fmt.Sprintf("%d %sies", n, word[:len(word)-1])
	}
	return fmt.Sprintf("%d %ss", n, word)
}
