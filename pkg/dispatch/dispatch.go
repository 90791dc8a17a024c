// Package dispatch turns query edits into debounced, cancellable source
// searches. Every dispatch mints a generation token; results carrying a token
// that is no longer current are discarded.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/grinta-launcher/grinta/pkg/models"
)

// Category identifies a cancellable source family
type Category int

const (
	CategoryFiles Category = iota
	CategorySuggestions

	numCategories
)

// Categories lists every category in dispatch order
var Categories = []Category{CategoryFiles, CategorySuggestions}

func (c Category) String() string {
	switch c {
	case CategoryFiles:
		return "files"
	case CategorySuggestions:
		return "suggestions"
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Source searches one category for a query. Implementations must honor ctx.
type Source interface {
	Category() Category
	Search(ctx context.Context, query string) ([]models.Item, error)
}

// Token identifies the dispatch a task or batch belongs to
type Token struct {
	Category   Category
	Generation uint64
}

// Options tune the dispatcher
type Options struct {
	MinQueryLength int // in runes
	Delays         map[Category]time.Duration
	Timeouts       map[Category]time.Duration
}

// DefaultOptions returns the stock debounce delays and call timeouts
func DefaultOptions() Options {
	return Options{
		MinQueryLength: 2,
		Delays: map[Category]time.Duration{
			CategoryFiles:       300 * time.Millisecond,
			CategorySuggestions: 150 * time.Millisecond,
		},
		Timeouts: map[Category]time.Duration{
			CategoryFiles:       2 * time.Second,
			CategorySuggestions: 500 * time.Millisecond,
		},
	}
}

// OptionsFromSettings builds options from the search configuration
func OptionsFromSettings(s models.SearchSettings) Options {
	return Options{
		MinQueryLength: s.MinQueryLength,
		Delays: map[Category]time.Duration{
			CategoryFiles:       s.Files.Debounce,
			CategorySuggestions: s.Suggestions.Debounce,
		},
		Timeouts: map[Category]time.Duration{
			CategoryFiles:       s.Files.Timeout,
			CategorySuggestions: s.Suggestions.Timeout,
		},
	}
}

// Dispatcher owns one generation counter per category
type Dispatcher struct {
	opts     Options
	sources  []Source
	counters [numCategories]atomic.Uint64
	logger   *slog.Logger
}

// New creates a dispatcher for sources
func New(opts Options, logger *slog.Logger, sources ...Source) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		opts:    opts,
		sources: sources,
		logger:  logger,
	}
}

// Current reports whether token still belongs to the latest dispatch of its
// category.
func (d *Dispatcher) Current(token Token) bool {
	if token.Category < 0 || token.Category >= numCategories {
		return false
	}
	return d.counters[token.Category].Load() == token.Generation
}

// Invalidate advances the counter of category so nothing in flight for it
// will be accepted.
func (d *Dispatcher) Invalidate(category Category) Token {
	return Token{Category: category, Generation: d.counters[category].Add(1)}
}

// Plan is the outcome of a query edit
type Plan struct {
	Query string
	Clear []Category // categories whose buffers must be emptied
	Tasks []*Task
}

// Clears reports whether the plan empties category
func (p Plan) Clears(category Category) bool {
	for _, c := range p.Clear {
		if c == category {
			return true
		}
	}
	return false
}

// Edit advances the counter of every category that has a source and plans
// one task per source. Queries shorter than the minimum plan no tasks and
// clear the categories instead; their counters still advance so a late
// result for a longer query is dropped.
func (d *Dispatcher) Edit(query string) Plan {
	plan := Plan{Query: query}
	short := utf8.RuneCountInString(query) < d.opts.MinQueryLength

	for _, category := range Categories {
		var sources []Source
		for _, src := range d.sources {
			if src.Category() == category {
				sources = append(sources, src)
			}
		}
		if len(sources) == 0 {
			continue
		}

		token := d.Invalidate(category)
		if short {
			plan.Clear = append(plan.Clear, category)
			continue
		}
		for _, src := range sources {
			plan.Tasks = append(plan.Tasks, &Task{
				Token:      token,
				Query:      query,
				source:     src,
				delay:      d.opts.Delays[category],
				timeout:    d.opts.Timeouts[category],
				dispatcher: d,
			})
		}
	}

	d.logger.Debug("query dispatched", "query", query, "tasks", len(plan.Tasks), "cleared", len(plan.Clear))
	return plan
}

// Batch carries one source's results back to the session
type Batch struct {
	Token Token
	Query string
	Items []models.Item
	Err   error // non-nil when the source failed; Items is then empty
}

// Task is a single planned source search
type Task struct {
	Token Token
	Query string

	source     Source
	delay      time.Duration
	timeout    time.Duration
	dispatcher *Dispatcher
}

// Run waits out the debounce delay, calls the source and returns its batch.
// It returns nil when the task was superseded or ctx was cancelled. The token
// is checked before the call and again before publishing, because the source
// itself cannot be interrupted once started.
func (t *Task) Run(ctx context.Context) *Batch {
	if t.delay > 0 {
		timer := time.NewTimer(t.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}
	}

	if !t.dispatcher.Current(t.Token) {
		return nil
	}

	callCtx := ctx
	if t.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	items, err := t.source.Search(callCtx, t.Query)

	if !t.dispatcher.Current(t.Token) {
		return nil
	}

	if err != nil {
		t.dispatcher.logger.Debug("source failed",
			"category", t.Token.Category.String(),
			"query", t.Query,
			"error", err)
		return &Batch{Token: t.Token, Query: t.Query, Items: []models.Item{}, Err: err}
	}
	if items == nil {
		items = []models.Item{}
	}
	return &Batch{Token: t.Token, Query: t.Query, Items: items}
}

// Go runs task on its own goroutine and delivers a non-nil batch to out
func Go(ctx context.Context, task *Task, out chan<- Batch) {
	go func() {
		batch := task.Run(ctx)
		if batch == nil {
			return
		}
		select {
		case out <- *batch:
		case <-ctx.Done():
		}
	}()
}

// Drain returns every batch ready on ch without blocking
func Drain(ch <-chan Batch) []Batch {
	var batches []Batch
	for {
		select {
		case batch, ok := <-ch:
			if !ok {
				return batches
			}
			batches = append(batches, batch)
		default:
			return batches
		}
	}
}
