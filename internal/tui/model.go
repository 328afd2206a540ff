package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/andy/invoicegen/internal/app"
	"github.com/andy/invoicegen/internal/domain"
	"github.com/andy/invoicegen/internal/logger"
	"github.com/andy/invoicegen/internal/preview"
	"github.com/andy/invoicegen/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// mode is what the keyboard currently drives
type mode int

const (
	modeBrowse mode = iota
	modeEdit
	modeConfirmReset
)

const formWidth = 46

// Deps are the collaborators of the builder screen
type Deps struct {
	Builder   *service.Builder
	Exporter  service.Exporter
	Clipboard service.Clipboard
	Log       *logger.Logger
}

// Model is the invoice builder screen: a form on the left and the live
// preview on the right
type Model struct {
	deps Deps
	keys KeyMap
	ctx  context.Context

	rows   []formRow
	cursor int

	mode     mode
	input    textinput.Model
	original string // value before editing, restored on cancel

	exporting bool
	status    *notifyMsg

	width  int
	height int
}

// New creates the builder screen
func New(deps Deps) *Model {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	m := &Model{
		deps: deps,
		keys: DefaultKeyMap,
		ctx:  context.Background(),
	}
	m.refreshRows()
	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

// IsCapturingInput returns true when a text field has focus
func (m *Model) IsCapturingInput() bool {
	return m.mode == modeEdit
}

func (m *Model) refreshRows() {
	m.rows = buildRows(m.deps.Builder.Current())
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) actions(n service.Notifier) *service.Actions {
	return service.NewActions(m.deps.Builder, m.deps.Exporter, m.deps.Clipboard, n, m.deps.Log)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case notifyMsg:
		m.status = &msg
		return m, nil

	case exportDoneMsg:
		m.exporting = false
		m.status = &msg.note
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeEdit:
			return m.updateEdit(msg)
		case modeConfirmReset:
			return m.updateConfirmReset(msg)
		default:
			return m.updateBrowse(msg)
		}
	}

	return m, nil
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b := m.deps.Builder

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next):
		m.cursor = (m.cursor + 1) % len(m.rows)

	case key.Matches(msg, m.keys.Prev):
		m.cursor = (m.cursor - 1 + len(m.rows)) % len(m.rows)

	case key.Matches(msg, m.keys.Edit):
		m.startEdit()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Add):
		id := b.AddItem(m.ctx)
		m.refreshRows()
		if i := indexOf(m.rows, id, domain.ItemDescription); i >= 0 {
			m.cursor = i
		}
		m.status = &notifyMsg{title: "Item added", severity: service.SeverityInfo}

	case key.Matches(msg, m.keys.Delete):
		row := m.rows[m.cursor]
		if row.kind != rowItem {
			m.status = &notifyMsg{title: "Select an item to delete", severity: service.SeverityInfo}
			break
		}
		if !b.RemoveItem(m.ctx, row.itemID) {
			m.status = &notifyMsg{title: "Cannot delete", description: "An invoice needs at least one item", severity: service.SeverityInfo}
			break
		}
		m.refreshRows()
		m.status = &notifyMsg{title: "Item removed", severity: service.SeverityInfo}

	case key.Matches(msg, m.keys.Export):
		if m.exporting {
			break
		}
		m.exporting = true
		m.status = &notifyMsg{title: "Generating PDF...", severity: service.SeverityInfo}
		return m, m.exportCmd()

	case key.Matches(msg, m.keys.CopyLink):
		return m, m.copyLinkCmd()

	case key.Matches(msg, m.keys.Reset):
		m.mode = modeConfirmReset

	case key.Matches(msg, m.keys.Theme):
		b.SetDarkMode(m.ctx, !b.DarkMode())
	}

	return m, nil
}

func (m *Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	row := m.rows[m.cursor]

	switch {
	case key.Matches(msg, m.keys.Cancel):
		row.apply(m.ctx, m.deps.Builder, m.original)
		m.stopEdit()
		return m, nil

	case key.Matches(msg, m.keys.Commit):
		m.stopEdit()
		if msg.String() == "tab" {
			m.cursor = (m.cursor + 1) % len(m.rows)
		}
		return m, nil
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		// Every keystroke is saved, as the preview follows the input
		row.apply(m.ctx, m.deps.Builder, m.input.Value())
	}
	return m, cmd
}

func (m *Model) updateConfirmReset(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeBrowse
	if !key.Matches(msg, m.keys.Confirm) {
		m.status = &notifyMsg{title: "Cancelled", severity: service.SeverityInfo}
		return m, nil
	}

	n := &collector{}
	m.actions(n).Clear(m.ctx)
	m.cursor = 0
	m.refreshRows()
	m.status = &n.last
	return m, nil
}

func (m *Model) startEdit() {
	row := m.rows[m.cursor]
	m.original = row.value(m.deps.Builder.Current())

	m.input = textinput.New()
	m.input.Prompt = ""
	m.input.Placeholder = row.placeholder()
	m.input.CharLimit = 500
	m.input.Width = formWidth - 6
	m.input.SetValue(m.original)
	m.input.CursorEnd()
	m.input.Focus()
	m.mode = modeEdit
}

func (m *Model) stopEdit() {
	m.input.Blur()
	m.mode = modeBrowse
	m.refreshRows()
}

// exportCmd renders the PDF off the UI goroutine
func (m *Model) exportCmd() tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		n := &collector{}
		m.actions(n).Export(ctx)
		return exportDoneMsg{note: n.last}
	}
}

func (m *Model) copyLinkCmd() tea.Cmd {
	return func() tea.Msg {
		n := &collector{}
		m.actions(n).CopyPaymentLink()
		return n.last
	}
}

// View renders header, form, preview, status line and key help
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	b := m.deps.Builder
	snap := b.Snapshot()

	header := headerStyle.Render(fmt.Sprintf("invoicegen - %s", snap.Invoice.Details.Number)) +
		labelStyle.Render("  total "+domain.FormatMoney(snap.Total))

	bodyHeight := m.height - 4
	if bodyHeight < 10 {
		bodyHeight = 10
	}

	form := formPanelStyle.
		Width(formWidth).
		Height(bodyHeight - 2).
		Render(m.renderForm(snap.Invoice, bodyHeight-2))

	previewWidth := m.width - formWidth - 4 - 6
	right := ""
	if previewWidth >= 40 {
		doc := preview.Build(snap.Invoice, snap.Total)
		right = preview.Render(doc, preview.ThemeFor(b.DarkMode()), previewWidth)
		right = clipLines(right, bodyHeight)
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, form, " ", right)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.renderStatus(), m.renderHelp())
}

// renderForm draws the rows, scrolled so the cursor stays visible
func (m *Model) renderForm(inv domain.Invoice, height int) string {
	var lines []string
	cursorLine := 0
	section := ""

	for i, row := range m.rows {
		if row.section != section {
			section = row.section
			if len(lines) > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, titleStyle.Render(section))
		}

		label := fmt.Sprintf("%-13s", row.label)
		var value string
		switch {
		case i == m.cursor && m.mode == modeEdit:
			value = m.input.View()
		default:
			value = truncateStr(row.value(inv), formWidth-18)
		}

		line := labelStyle.Render(label) + " " + value
		if i == m.cursor && m.mode != modeEdit {
			line = selectedStyle.Render(label) + " " + value
		}
		if i == m.cursor {
			cursorLine = len(lines)
		}
		lines = append(lines, line)
	}

	if height <= 0 || len(lines) <= height {
		return strings.Join(lines, "\n")
	}

	start := cursorLine - height/2
	if start < 0 {
		start = 0
	}
	if start+height > len(lines) {
		start = len(lines) - height
	}
	return strings.Join(lines[start:start+height], "\n")
}

func (m *Model) renderStatus() string {
	if m.mode == modeConfirmReset {
		return warningStyle.Render("Clear all fields and start a new invoice? [y/N]")
	}
	if m.status == nil {
		return ""
	}

	style := infoStyle
	switch m.status.severity {
	case service.SeveritySuccess:
		style = successStyle
	case service.SeverityError:
		style = errorStyle
	}
	line := style.Render(m.status.title)
	if m.status.description != "" {
		line += " " + m.status.description
	}
	return line
}

func (m *Model) renderHelp() string {
	if m.mode == modeEdit {
		return helpStyle.Render(`enter done  tab next  esc cancel  \n new line`)
	}
	return footerStyle.Render("[a]dd  [d]elete  [p]df  [y] copy link  [X] clear  [t]heme  [q]uit")
}

// truncateStr truncates a string to the specified length with ellipsis
func truncateStr(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

func clipLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n")
}

// Run starts the TUI
func Run(a *app.App) error {
	m := New(Deps{
		Builder:   a.Builder,
		Exporter:  a.Exporter,
		Clipboard: a.Clipboard,
		Log:       a.Log,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
