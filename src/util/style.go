package util

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))
)

// IsTerminal returns true if w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// StyleError highlights the ERROR prefix of the diagnostic s when w is a terminal.
func StyleError(w io.Writer, s string) string {
	if !strings.HasPrefix(s, "ERROR") || !IsTerminal(w) {
		return s
	}
	return errorStyle.Render("ERROR") + strings.TrimPrefix(s, "ERROR")
}

// StyleHeading renders the heading s in bold when w is a terminal.
func StyleHeading(w io.Writer, s string) string {
	if !IsTerminal(w) {
		return s
	}
	return headingStyle.Render(s)
}
