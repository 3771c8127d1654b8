package paging

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/mmcdole/reel/internal/domain"
)

var (
	// ErrInFlight is returned by LoadMore when a request for the list is
	// already running; no new request was issued
	ErrInFlight = errors.New("paging: request already in flight")

	// ErrSuperseded is returned when a response arrived for a query or
	// page that has since been replaced; the response was discarded
	ErrSuperseded = errors.New("paging: superseded by a newer request")
)

// Skipped reports whether err only means the call was dropped by the pager
func Skipped(err error) bool {
	return errors.Is(err, ErrInFlight) || errors.Is(err, ErrSuperseded)
}

// FetchFunc loads one page of a list for query
type FetchFunc[T any] func(ctx context.Context, query string, page int) (domain.Page[T], error)

type options struct {
	rollback bool
	name     string
	logger   *slog.Logger
}

// Option configures a Pager
type Option func(*options)

// WithRollbackOnFailure decrements the cursor when a load-more fails, so the
// same page is requested again next time. Off by default: a failed page is
// skipped.
func WithRollbackOnFailure(enabled bool) Option {
	return func(o *options) { o.rollback = enabled }
}

// WithName labels the pager in log output
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Pager owns one paginated list. It is safe for concurrent use; fetches run
// outside the lock and their results are applied only if no newer request
// started in the meantime.
type Pager[T any] struct {
	mu         sync.Mutex
	fetch      FetchFunc[T]
	opts       options
	cursor     Cursor
	state      State[T]
	query      string
	generation uint64
	inFlight   bool
}

// New creates a pager around fetch
func New[T any](fetch FetchFunc[T], opts ...Option) *Pager[T] {
	o := options{name: "list"}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return &Pager[T]{fetch: fetch, opts: o}
}

// State returns the current snapshot
func (p *Pager[T]) State() State[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Query returns the query of the current epoch
func (p *Pager[T]) Query() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.query
}

// Page returns the current cursor value
func (p *Pager[T]) Page() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cursor.Value()
}

// InFlight reports whether a request is running
func (p *Pager[T]) InFlight() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inFlight
}

// Refresh starts a new epoch for query: the cursor goes back to 0, any
// request still running is superseded and the first page replaces the list.
func (p *Pager[T]) Refresh(ctx context.Context, query string) (State[T], error) {
	p.mu.Lock()
	p.generation++
	gen := p.generation
	p.query = query
	page := p.cursor.Reset()
	p.inFlight = true
	p.state = State[T]{Status: Loading}
	p.mu.Unlock()

	p.opts.logger.Debug("fetching first page", "list", p.opts.name, "query", query)
	result, err := p.fetch(ctx, query, page)
	return p.finish(gen, page, result, err, false)
}

// LoadMore requests the next page and appends it. It does nothing and
// returns ErrInFlight while another request for this list is running.
func (p *Pager[T]) LoadMore(ctx context.Context) (State[T], error) {
	p.mu.Lock()
	if p.inFlight {
		s := p.state
		p.mu.Unlock()
		return s, ErrInFlight
	}
	gen := p.generation
	query := p.query
	page := p.cursor.Next()
	p.inFlight = true
	p.state = p.state.BeginLoad()
	p.mu.Unlock()

	p.opts.logger.Debug("fetching next page", "list", p.opts.name, "query", query, "page", page)
	result, err := p.fetch(ctx, query, page)
	return p.finish(gen, page, result, err, true)
}

func (p *Pager[T]) finish(gen uint64, page int, result domain.Page[T], err error, appendMode bool) (State[T], error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.generation {
		p.opts.logger.Debug("discarding stale page", "list", p.opts.name, "page", page)
		return p.state, ErrSuperseded
	}
	p.inFlight = false

	if err != nil {
		if appendMode && p.opts.rollback {
			p.cursor.Rollback()
		}
		p.opts.logger.Error("failed to fetch page", "list", p.opts.name, "page", page, "error", err)
		p.state = p.state.Fail(err)
		return p.state, err
	}

	next := p.state.Complete(result.Content, appendMode)
	next.Last = result.Last
	p.state = next
	p.opts.logger.Debug("fetched page", "list", p.opts.name, "page", page, "count", len(result.Content), "total", len(p.state.Items))
	return p.state, nil
}

// Set replaces the state outright and supersedes any running request.
// Lists that are not paginated use it to publish their own transitions.
func (p *Pager[T]) Set(s State[T]) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.generation++
	p.inFlight = false
	p.state = s
}

// SetEmpty publishes the Empty state
func (p *Pager[T]) SetEmpty() {
	p.Set(EmptyState[T]())
}

// Reset returns the list to Idle and forgets the query
func (p *Pager[T]) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.generation++
	p.inFlight = false
	p.query = ""
	p.cursor.Reset()
	p.state = State[T]{}
}
