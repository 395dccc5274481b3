package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Styles for terminal output. Plain text is used when stdout is not a
// terminal so command output stays pipeable and testable.
var (
	styleEligible = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	styleMuted    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleWarning  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// stdoutIsTerminal reports whether styled output should be used.
func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// styled applies a lipgloss style only when writing to a terminal.
func styled(style lipgloss.Style, s string) string {
	if !stdoutIsTerminal() {
		return s
	}
	return style.Render(s)
}

// formatScore renders a score with two decimals.
func formatScore(score float64) string {
	return fmt.Sprintf("%.2f", score)
}
