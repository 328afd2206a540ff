package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/andy/invoicegen/internal/service"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	// Colors
	primaryColor = lipgloss.Color("39")  // Blue
	mutedColor   = lipgloss.Color("241") // Gray
	successColor = lipgloss.Color("76")  // Green
	errorColor   = lipgloss.Color("196") // Red

	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	mutedStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(successColor)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(errorColor)
	infoStyle    = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
)

// printNotifier writes action feedback as one styled line
type printNotifier struct {
	out    io.Writer
	errOut io.Writer
}

func (n printNotifier) Notify(title, description string, severity service.Severity) {
	w, style := n.out, infoStyle
	switch severity {
	case service.SeveritySuccess:
		style = successStyle
	case service.SeverityError:
		w, style = n.errOut, errorStyle
	}
	fmt.Fprintf(w, "%s %s\n", style.Render(title), description)
}

// terminalWidth returns the stdout width, or 80 when stdout is not a terminal
func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}
