package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	// errorStyle for error messages
	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")) // Red

	// warnStyle for advisory safety warnings
	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")) // Orange

	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))
)

// PrintError displays an error message on stderr.
func PrintError(msg string) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+msg))
}

// PrintWarning displays an advisory warning on stderr. Stdout stays reserved
// for the payload contract with the shell widget.
func PrintWarning(msg string) {
	fmt.Fprintln(os.Stderr, warnStyle.Render("Warning: "+msg))
}
