package tui

import "github.com/andy/invoicegen/internal/service"

// notifyMsg carries action feedback back to the model
type notifyMsg struct {
	title       string
	description string
	severity    service.Severity
}

// exportDoneMsg ends a background export
type exportDoneMsg struct {
	note notifyMsg
}

// collector is a Notifier that keeps the last notification so a tea.Cmd can
// return it as a message
type collector struct {
	last notifyMsg
}

func (c *collector) Notify(title, description string, severity service.Severity) {
	c.last = notifyMsg{title: title, description: description, severity: severity}
}
