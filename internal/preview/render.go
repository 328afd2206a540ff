package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the terminal styles for one color scheme
type Theme struct {
	Title       lipgloss.Style
	Heading     lipgloss.Style
	Text        lipgloss.Style
	Muted       lipgloss.Style
	Placeholder lipgloss.Style
	Total       lipgloss.Style
	Link        lipgloss.Style
	Rule        lipgloss.Style
	Frame       lipgloss.Style
}

// LightTheme and DarkTheme follow the stored display preference
func LightTheme() Theme {
	return newTheme(lipgloss.Color("235"), lipgloss.Color("243"), lipgloss.Color("25"), lipgloss.Color("250"))
}

func DarkTheme() Theme {
	return newTheme(lipgloss.Color("252"), lipgloss.Color("245"), lipgloss.Color("39"), lipgloss.Color("238"))
}

// ThemeFor picks the theme matching the dark mode preference
func ThemeFor(dark bool) Theme {
	if dark {
		return DarkTheme()
	}
	return LightTheme()
}

func newTheme(text, muted, primary, border lipgloss.Color) Theme {
	return Theme{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(text),
		Heading:     lipgloss.NewStyle().Bold(true).Foreground(text),
		Text:        lipgloss.NewStyle().Foreground(text),
		Muted:       lipgloss.NewStyle().Foreground(muted),
		Placeholder: lipgloss.NewStyle().Foreground(muted).Italic(true),
		Total:       lipgloss.NewStyle().Bold(true).Foreground(primary),
		Link:        lipgloss.NewStyle().Underline(true).Foreground(primary),
		Rule:        lipgloss.NewStyle().Foreground(border),
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(1, 2),
	}
}

// Render draws the document for a terminal of the given inner width
func Render(doc Document, theme Theme, width int) string {
	if width < 40 {
		width = 40
	}
	half := width / 2

	var b strings.Builder

	// Header: title and number on the left, freelancer on the right
	left := lipgloss.JoinVertical(lipgloss.Left,
		theme.Title.Render(Title),
		theme.Muted.Render(doc.Number),
	)
	right := renderParty(doc.From, theme, lipgloss.Right)
	b.WriteString(spread(left, right, width))
	b.WriteString("\n")
	b.WriteString(theme.Rule.Render(strings.Repeat("─", width)))
	b.WriteString("\n\n")

	// Bill to and dates
	billTo := lipgloss.JoinVertical(lipgloss.Left,
		theme.Heading.Render("Bill To:"),
		renderParty(doc.BillTo, theme, lipgloss.Left),
	)
	dates := lipgloss.NewStyle().Width(half).Render(lipgloss.JoinVertical(lipgloss.Left,
		labelled(theme, "Invoice Date:", doc.Date, half),
		labelled(theme, "Due Date:", doc.DueDate, half),
	))
	b.WriteString(spread(billTo, dates, width))
	b.WriteString("\n\n")

	b.WriteString(renderRows(doc.Rows, theme, width))
	b.WriteString("\n\n")

	total := theme.Heading.Render("Total: ") + theme.Total.Render(doc.Total)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Right, total))

	if doc.PaymentLink != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Heading.Render("Payment"))
		b.WriteString("\n")
		b.WriteString(theme.Muted.Render(PaymentPrompt))
		b.WriteString("\n")
		b.WriteString(theme.Link.Render(doc.PaymentLink))
	}

	if len(doc.Notes) > 0 {
		b.WriteString("\n\n")
		b.WriteString(theme.Heading.Render("Notes"))
		for _, line := range doc.Notes {
			b.WriteString("\n")
			b.WriteString(theme.Muted.Render(line))
		}
	}

	return theme.Frame.Render(b.String())
}

func renderParty(p Party, theme Theme, align lipgloss.Position) string {
	name := theme.Heading.Render(p.Name)
	if p.Placeholder {
		name = theme.Placeholder.Render(p.Name)
	}
	parts := []string{name}
	for _, line := range p.Lines {
		parts = append(parts, theme.Muted.Render(line))
	}
	return lipgloss.JoinVertical(align, parts...)
}

func labelled(theme Theme, label, value string, width int) string {
	return spread(theme.Muted.Render(label), theme.Text.Render(value), width)
}

// spread puts left and right at the edges of width
func spread(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", gap), right)
}

func renderRows(rows []Row, theme Theme, width int) string {
	numW := 12
	qtyW := 6
	descW := width - qtyW - 2*numW
	if descW < 10 {
		descW = 10
	}

	header := fmt.Sprintf("%-*s%*s%*s%*s", descW, "Description", qtyW, "Qty", numW, "Rate", numW, "Amount")
	lines := []string{
		theme.Heading.Render(header),
		theme.Rule.Render(strings.Repeat("─", width)),
	}

	for _, row := range rows {
		desc := truncate(row.Description, descW-1)
		descCell := fmt.Sprintf("%-*s", descW, desc)
		if row.Placeholder {
			descCell = theme.Placeholder.Render(descCell)
		} else {
			descCell = theme.Text.Render(descCell)
		}
		rest := fmt.Sprintf("%*s%*s%*s", qtyW, row.Quantity, numW, row.Rate, numW, row.Amount)
		lines = append(lines, descCell+theme.Text.Render(rest))
	}

	return strings.Join(lines, "\n")
}

// truncate shortens s to maxLen runes with an ellipsis
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
