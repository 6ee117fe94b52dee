package util

import (
	"os"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Terminal color sequences
const (
	ColorReset   = "\033[0m"
	ColorBlue    = "\033[34m"
	ColorCyan    = "\033[36m"
	ColorGreen   = "\033[32m"
	ColorYellow  = "\033[33m"
	ColorMagenta = "\033[35m"
	ColorBold    = "\033[1m"
)

const defaultTerminalWidth = 80

// GetDisplayWidth calculates the actual display width of a string, accounting for emojis
func GetDisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// TerminalWidth returns the current terminal width, falling back to 80
// columns when stdout is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultTerminalWidth
	}
	return width
}

// PadRight pads text with spaces to the given display width, truncating
// with an ellipsis when it does not fit.
func PadRight(text string, width int) string {
	w := runewidth.StringWidth(text)
	if w > width {
		return runewidth.Truncate(text, width, "…")
	}
	return text + spaces(width-w)
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = ' '
	}
	return string(buf)
}
