package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/andy/invoicegen/internal/logger"
)

// ErrNoPaymentLink is returned by CopyPaymentLink when the invoice has no link
var ErrNoPaymentLink = errors.New("no payment link set")

type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityError
)

// Exporter turns a snapshot into a document and returns where it was written
type Exporter interface {
	Export(ctx context.Context, snap Snapshot) (string, error)
}

// Clipboard receives copied text
type Clipboard interface {
	WriteText(text string) error
}

// Notifier shows short feedback to the user
type Notifier interface {
	Notify(title, description string, severity Severity)
}

// Actions are the user-facing commands around the builder that report their
// outcome through a Notifier
type Actions struct {
	builder   *Builder
	exporter  Exporter
	clipboard Clipboard
	notifier  Notifier
	log       *logger.Logger
}

// NewActions wires the builder to its collaborators; any of them may be nil
func NewActions(builder *Builder, exporter Exporter, clipboard Clipboard, notifier Notifier, log *logger.Logger) *Actions {
	if log == nil {
		log = logger.Nop()
	}
	return &Actions{
		builder:   builder,
		exporter:  exporter,
		clipboard: clipboard,
		notifier:  notifier,
		log:       log,
	}
}

func (a *Actions) notify(title, description string, severity Severity) {
	if a.notifier != nil {
		a.notifier.Notify(title, description, severity)
	}
}

// Export renders the current invoice. Failures are reported with a generic
// message and leave the invoice untouched, so the user can retry.
func (a *Actions) Export(ctx context.Context) (string, error) {
	if a.exporter == nil {
		err := errors.New("no exporter configured")
		a.notify("Error", "Failed to generate PDF. Please try again.", SeverityError)
		return "", err
	}

	snap := a.builder.Snapshot()
	path, err := a.exporter.Export(ctx, snap)
	if err != nil {
		a.log.Error("export failed", "number", snap.Invoice.Details.Number, "error", err)
		a.notify("Error", "Failed to generate PDF. Please try again.", SeverityError)
		return "", fmt.Errorf("failed to export invoice: %w", err)
	}

	a.log.Info("invoice exported", "number", snap.Invoice.Details.Number, "path", path)
	a.notify("PDF Generated", "Your invoice has been saved to "+path, SeveritySuccess)
	return path, nil
}

// CopyPaymentLink puts the payment link on the clipboard. A missing link is
// reported as guidance, not as a failure of the tool.
func (a *Actions) CopyPaymentLink() error {
	link := strings.TrimSpace(a.builder.Current().Details.PaymentLink)
	if link == "" {
		a.notify("No Payment Link", "Please add a payment link first", SeverityInfo)
		return ErrNoPaymentLink
	}

	if a.clipboard == nil {
		a.notify("Error", "Clipboard is not available", SeverityError)
		return errors.New("no clipboard configured")
	}

	if err := a.clipboard.WriteText(link); err != nil {
		a.log.Warn("clipboard write failed", "error", err)
		a.notify("Error", "Could not copy the payment link", SeverityError)
		return fmt.Errorf("failed to copy payment link: %w", err)
	}

	a.notify("Copied!", "Payment link copied to clipboard", SeveritySuccess)
	return nil
}

// Clear resets the invoice and confirms it
func (a *Actions) Clear(ctx context.Context) {
	a.builder.Reset(ctx)
	a.notify("Invoice Cleared", "All fields have been reset", SeveritySuccess)
}
