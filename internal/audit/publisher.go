package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	id "vedo/pkg/domain"
)

// Sink receives entries after they are persisted, e.g. a Kafka topic for
// downstream compliance consumers. Sink failures are surfaced to operators
// through logs and never affect the triggering state transition.
type Sink interface {
	Publish(ctx context.Context, entry *Entry) error
}

// Publisher captures structured audit entries. It is append-only and uses the
// storage layer for persistence so tests can swap sinks easily.
type Publisher struct {
	store  Store
	sink   Sink
	events chan *Entry
	wg     sync.WaitGroup
	logger *slog.Logger
	async  bool
}

// PublisherOption configures the Publisher.
type PublisherOption func(*Publisher)

// WithAsyncBuffer enables async processing with the specified buffer size.
// Entries are queued and persisted in a background goroutine.
func WithAsyncBuffer(size int) PublisherOption {
	return func(p *Publisher) {
		if size > 0 {
			p.events = make(chan *Entry, size)
			p.async = true
		}
	}
}

// WithSink attaches a best-effort downstream sink.
func WithSink(sink Sink) PublisherOption {
	return func(p *Publisher) {
		p.sink = sink
	}
}

// WithLogger sets a logger for error reporting.
func WithLogger(logger *slog.Logger) PublisherOption {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func NewPublisher(store Store, opts ...PublisherOption) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		opt(p)
	}
	if p.async {
		p.wg.Add(1)
		go p.processEvents()
	}
	return p
}

// processEvents runs in a goroutine and persists entries from the channel.
func (p *Publisher) processEvents() {
	defer p.wg.Done()
	for entry := range p.events {
		p.persist(context.Background(), entry)
	}
}

func (p *Publisher) persist(ctx context.Context, entry *Entry) {
	if err := p.store.Append(ctx, entry); err != nil {
		if p.logger != nil {
			p.logger.Error("failed to persist audit entry",
				"error", err,
				"action", entry.Action,
				"creator_id", entry.CreatorID,
			)
		}
	}
	if p.sink != nil {
		if err := p.sink.Publish(ctx, entry); err != nil && p.logger != nil {
			p.logger.Error("failed to publish audit entry to sink",
				"error", err,
				"action", entry.Action,
				"creator_id", entry.CreatorID,
			)
		}
	}
}

// Emit records an entry. The triggering state transition is authoritative:
// Emit is best-effort and never returns an error to roll it back.
func (p *Publisher) Emit(ctx context.Context, entry *Entry) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if p.async {
		select {
		case p.events <- entry:
		default:
			if p.logger != nil {
				p.logger.Warn("audit buffer full, entry dropped",
					"action", entry.Action,
					"creator_id", entry.CreatorID,
				)
			}
		}
		return
	}
	p.persist(ctx, entry)
}

// Recent lists the latest entries, newest first.
func (p *Publisher) Recent(ctx context.Context, limit int) ([]*Entry, error) {
	return p.store.ListRecent(ctx, limit)
}

// ForCreator lists all entries for a creator, newest first.
func (p *Publisher) ForCreator(ctx context.Context, creatorID id.CreatorID) ([]*Entry, error) {
	return p.store.ListByCreator(ctx, creatorID)
}

// Close shuts down the async publisher and waits for pending entries to drain.
func (p *Publisher) Close() {
	if p.async && p.events != nil {
		close(p.events)
		p.wg.Wait()
	}
}
