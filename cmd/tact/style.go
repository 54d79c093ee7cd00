package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/lyndonlyu/tact/internal/apperr"
	"github.com/lyndonlyu/tact/internal/session"
)

var (
	styleBanner  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	styleInfo    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// renderNotice styles a session notice for terminal output.
func renderNotice(n session.Notice) string {
	switch n.Level {
	case session.LevelWarning:
		return styleWarning.Render(n.Title + ": " + n.Message)
	case session.LevelError:
		return styleError.Render(n.Title + ": " + n.Message)
	default:
		return styleSuccess.Render(n.Title + ": " + n.Message)
	}
}

// printError reports a command failure. Expected failures print their own
// message; anything else is prefixed as unexpected.
func printError(w io.Writer, err error) {
	if apperr.Recoverable(err) {
		fmt.Fprintln(w, styleError.Render("Error: "+apperr.Message(err)))
		return
	}
	fmt.Fprintln(w, styleError.Render("Error: "+err.Error()))
}
