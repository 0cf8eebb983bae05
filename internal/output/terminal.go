package output

import (
	"io"
	"os"

	"golang.org/x/term"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorCyan   = "\033[36m"
	ColorGray   = "\033[90m"
)

// Terminal provides terminal-aware output utilities
type Terminal struct {
	IsTerminal bool
	UseColor   bool
}

// NewTerminal inspects w; colour is only used when w is an interactive
// terminal and NO_COLOR is unset
func NewTerminal(w io.Writer) *Terminal {
	f, ok := w.(*os.File)
	isTerminal := ok && term.IsTerminal(int(f.Fd()))
	return &Terminal{
		IsTerminal: isTerminal,
		UseColor:   isTerminal && os.Getenv("NO_COLOR") == "",
	}
}

// Color wraps text in ANSI color codes (terminal only)
func (t *Terminal) Color(color, text string) string {
	if t == nil || !t.UseColor {
		return text
	}
	return color + text + ColorReset
}

// Width returns the terminal width, or fallback when unknown
func (t *Terminal) Width(fallback int) int {
	if t == nil || !t.IsTerminal {
		return fallback
	}
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}

// ScoreColor picks a colour for a score relative to the threshold
func ScoreColor(score, threshold float64) string {
	switch {
	case score >= threshold:
		return ColorGreen
	case score >= threshold-0.15:
		return ColorYellow
	default:
		return ColorGray
	}
}
