package service

import (
	"context"
	"sync"
	"time"

	"github.com/andy/invoicegen/internal/domain"
	"github.com/andy/invoicegen/internal/logger"
	"github.com/andy/invoicegen/internal/repository"
	"github.com/shopspring/decimal"
)

// Snapshot is a resolved, read-only view of the invoice handed to exporters
type Snapshot struct {
	Invoice domain.Invoice
	Total   decimal.Decimal
	TakenAt time.Time
}

// Builder owns the invoice being edited. Every mutation builds a new
// invoice value, installs it, and saves it before returning. Save failures
// are the repository's concern and never roll back the in-memory state.
type Builder struct {
	mu      sync.Mutex
	repo    repository.SnapshotRepository
	tokens  domain.TokenSource
	now     func() time.Time
	opts    domain.DefaultOptions
	log     *logger.Logger
	current domain.Invoice
	dark    bool
}

// Option configures a Builder
type Option func(*Builder)

// WithTokens sets the id/number generator
func WithTokens(tokens domain.TokenSource) Option {
	return func(b *Builder) { b.tokens = tokens }
}

// WithClock sets the time source used for default dates
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

// WithDefaults sets the number prefix and payment term of new invoices
func WithDefaults(opts domain.DefaultOptions) Option {
	return func(b *Builder) { b.opts = opts }
}

func WithLogger(log *logger.Logger) Option {
	return func(b *Builder) { b.log = log }
}

// NewBuilder starts a session from the stored snapshot, or from a fresh
// default invoice when there is none
func NewBuilder(ctx context.Context, repo repository.SnapshotRepository, opts ...Option) *Builder {
	b := &Builder{
		repo:   repo,
		tokens: domain.NewRandomTokens(),
		now:    time.Now,
		opts:   domain.DefaultInvoiceOptions(),
		log:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}

	if inv, ok := repo.LoadInvoice(ctx); ok {
		b.current = inv.Repair(b.tokens, b.opts)
		b.log.Debug("restored invoice", "number", b.current.Details.Number, "items", len(b.current.Items))
	} else {
		b.current = b.newDefault()
		b.log.Debug("started new invoice", "number", b.current.Details.Number)
	}

	if dark, ok := repo.LoadPreference(ctx); ok {
		b.dark = dark
	}

	return b
}

func (b *Builder) newDefault() domain.Invoice {
	return domain.NewDefaultInvoice(b.tokens, b.now(), b.opts)
}

// apply installs the result of fn and persists it
func (b *Builder) apply(ctx context.Context, fn func(domain.Invoice) domain.Invoice) {
	b.current = fn(b.current.Clone())
	b.repo.SaveInvoice(ctx, b.current)
}

// Current returns a copy of the invoice being edited
func (b *Builder) Current() domain.Invoice {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current.Clone()
}

// Snapshot returns the invoice and its total as of now
func (b *Builder) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Snapshot{
		Invoice: b.current.Clone(),
		Total:   domain.InvoiceTotal(b.current.Items),
		TakenAt: b.now(),
	}
}

// CurrentTotal returns the exact, unrounded invoice total
func (b *Builder) CurrentTotal() decimal.Decimal {
	b.mu.Lock()
	defer b.mu.Unlock()
	return domain.InvoiceTotal(b.current.Items)
}

func (b *Builder) UpdateFreelancerField(ctx context.Context, field domain.FreelancerField, value string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.apply(ctx, func(inv domain.Invoice) domain.Invoice {
		return inv.WithFreelancer(inv.Freelancer.With(field, value))
	})
}

func (b *Builder) UpdateClientField(ctx context.Context, field domain.ClientField, value string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.apply(ctx, func(inv domain.Invoice) domain.Invoice {
		return inv.WithClient(inv.Client.With(field, value))
	})
}

func (b *Builder) UpdateDetailField(ctx context.Context, field domain.DetailField, value string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.apply(ctx, func(inv domain.Invoice) domain.Invoice {
		return inv.WithDetails(inv.Details.With(field, value))
	})
}

// AddItem appends an empty row and returns its id
func (b *Builder) AddItem(ctx context.Context) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	var id string
	b.apply(ctx, func(inv domain.Invoice) domain.Invoice {
		id = domain.NewItemID(b.tokens, inv.Items)
		return inv.WithItems(append(inv.Items, domain.NewItem(id)))
	})
	return id
}

// RemoveItem drops the item with the given id. The last remaining item is
// never removed, and an unknown id changes nothing. Reports whether an item
// was removed.
func (b *Builder) RemoveItem(ctx context.Context, id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	removed := false
	b.apply(ctx, func(inv domain.Invoice) domain.Invoice {
		if len(inv.Items) <= 1 {
			return inv
		}
		items := make([]domain.Item, 0, len(inv.Items))
		for _, item := range inv.Items {
			if item.ID == id {
				removed = true
				continue
			}
			items = append(items, item)
		}
		return inv.WithItems(items)
	})
	return removed
}

// UpdateItem sets one field of an item, coercing numeric input. Reports
// whether the id was found.
func (b *Builder) UpdateItem(ctx context.Context, id string, field domain.ItemField, value string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	found := false
	b.apply(ctx, func(inv domain.Invoice) domain.Invoice {
		items := make([]domain.Item, len(inv.Items))
		for i, item := range inv.Items {
			if item.ID == id {
				found = true
				item = item.With(field, value)
			}
			items[i] = item
		}
		return inv.WithItems(items)
	})
	return found
}

// Reset starts over with a fresh default invoice and replaces the stored
// snapshot with it
func (b *Builder) Reset(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()

	previous := b.current.Details.Number
	next := b.newDefault()
	for i := 0; i < 8 && next.Details.Number == previous; i++ {
		next = b.newDefault()
	}

	b.current = next
	b.repo.Clear(ctx)
	b.repo.SaveInvoice(ctx, b.current)
	b.log.Info("invoice reset", "previous", previous, "number", b.current.Details.Number)
}

// DarkMode returns the display preference
func (b *Builder) DarkMode() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dark
}

// SetDarkMode stores the display preference
func (b *Builder) SetDarkMode(ctx context.Context, dark bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dark = dark
	b.repo.SavePreference(ctx, dark)
}
