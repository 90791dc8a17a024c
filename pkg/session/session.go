// Package session holds the launcher state shared by the interactive loop:
// the query, per-source result buffers, the ranked view and the selection.
// A Session is not safe for concurrent use; only the loop goroutine mutates
// it.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/grinta-launcher/grinta/pkg/dispatch"
	"github.com/grinta-launcher/grinta/pkg/models"
	"github.com/grinta-launcher/grinta/pkg/search"
	"github.com/grinta-launcher/grinta/pkg/sources"
)

// ErrNoSelection is returned when an action needs a selected item
var ErrNoSelection = errors.New("nothing selected")

// HistoryStore persists executed items
type HistoryStore interface {
	Load() []models.Item
	Record(history []models.Item, item models.Item) ([]models.Item, error)
}

// Executor performs an item's platform action
type Executor interface {
	Execute(ctx context.Context, item models.Item, alternate bool) error
	OpenURL(target string) error
}

// NoteManager creates and deletes notes
type NoteManager interface {
	Create(ctx context.Context, title string) (string, error)
	Open(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// Config wires a Session to its collaborators
type Config struct {
	Store      HistoryStore
	Dispatcher *dispatch.Dispatcher
	Executor   Executor
	Notes      NoteManager
	Weights    search.Weights
	Logger     *slog.Logger
}

// Session is the state of one launcher run
type Session struct {
	query       string
	catalog     []models.Item
	files       []models.Item
	suggestions []models.Item
	history     []models.Item

	view   []search.Result
	cursor Cursor
	err    error

	store      HistoryStore
	dispatcher *dispatch.Dispatcher
	executor   Executor
	notes      NoteManager
	weights    search.Weights
	logger     *slog.Logger
}

// New creates a session and loads the history
func New(cfg Config) *Session {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Dispatcher == nil {
		cfg.Dispatcher = dispatch.New(dispatch.DefaultOptions(), cfg.Logger)
	}
	if cfg.Weights.Bonus == nil {
		cfg.Weights = search.InteractiveWeights
	}

	s := &Session{
		store:      cfg.Store,
		dispatcher: cfg.Dispatcher,
		executor:   cfg.Executor,
		notes:      cfg.Notes,
		weights:    cfg.Weights,
		logger:     cfg.Logger,
	}
	if s.store != nil {
		s.history = s.store.Load()
	}
	s.recompute()
	return s
}

// Query returns the current query text
func (s *Session) Query() string { return s.query }

// View returns the ranked view
func (s *Session) View() []search.Result { return s.view }

// History returns the history, oldest first
func (s *Session) History() []models.Item { return s.history }

// Catalog returns the static catalog
func (s *Session) Catalog() []models.Item { return s.catalog }

// Cursor returns the selection state
func (s *Session) Cursor() Cursor { return s.cursor }

// Err returns the last transient error, if any
func (s *Session) Err() error { return s.err }

// ClearErr dismisses the transient error
func (s *Session) ClearErr() { s.err = nil }

// SetQuery updates the query and returns the source tasks to run for it.
// Buffers of categories that the dispatch clears are emptied right away and
// an edited query moves the selection back to the top row.
func (s *Session) SetQuery(query string) []*dispatch.Task {
	changed := query != s.query
	s.query = query
	plan := s.dispatcher.Edit(query)
	for _, category := range plan.Clear {
		s.setBuffer(category, nil)
	}
	s.recompute()
	if changed {
		s.cursor.Reset(len(s.view))
	}
	return plan.Tasks
}

// Absorb applies a source batch. Batches from superseded dispatches are
// ignored and reported as not absorbed.
func (s *Session) Absorb(batch dispatch.Batch) bool {
	if !s.dispatcher.Current(batch.Token) {
		return false
	}
	if batch.Err != nil {
		s.err = fmt.Errorf("%s: %w", batch.Token.Category, batch.Err)
	}
	s.setBuffer(batch.Token.Category, batch.Items)
	s.recompute()
	return true
}

// SetCatalog replaces the static catalog
func (s *Session) SetCatalog(items []models.Item) {
	s.catalog = items
	s.recompute()
}

// Down moves the selection down, wrapping
func (s *Session) Down() { s.cursor.Down(len(s.view)) }

// Up moves the selection up, wrapping
func (s *Session) Up() { s.cursor.Up(len(s.view)) }

// Selected returns the selected item
func (s *Session) Selected() (models.Item, bool) {
	i, ok := s.cursor.Index()
	if !ok || i < 0 || i >= len(s.view) {
		return models.Item{}, false
	}
	return s.view[i].Item, true
}

// Execute runs the selected item. With nothing selected a non-empty query
// becomes a web search. On success the item is recorded and the query reset;
// on failure nothing changes and the error is returned.
func (s *Session) Execute(ctx context.Context, alternate bool) error {
	item, ok := s.Selected()
	if !ok {
		if s.query == "" {
			return s.fail(ErrNoSelection)
		}
		return s.SearchWeb(ctx)
	}
	if s.executor == nil {
		return s.fail(sources.ErrUnsupported)
	}

	if err := s.executor.Execute(ctx, item, alternate); err != nil {
		return s.fail(fmt.Errorf("failed to open %s: %w", item.Label, err))
	}
	return s.complete(item)
}

// SearchWeb opens a web search for the query and records it
func (s *Session) SearchWeb(ctx context.Context) error {
	if s.query == "" {
		return s.fail(ErrNoSelection)
	}
	if s.executor == nil {
		return s.fail(sources.ErrUnsupported)
	}

	item := sources.WebSearchItem(s.query)
	if err := s.executor.Execute(ctx, item, false); err != nil {
		return s.fail(fmt.Errorf("failed to search the web: %w", err))
	}
	return s.complete(item)
}

// CreateNote creates a note titled by the query, records and opens it. The
// caller should refresh the catalog afterwards.
func (s *Session) CreateNote(ctx context.Context) error {
	if s.notes == nil {
		return s.fail(sources.ErrUnsupported)
	}

	title := s.query
	if title == "" {
		title = sources.UntitledNote
	}
	id, err := s.notes.Create(ctx, title)
	if err != nil {
		return s.fail(err)
	}

	if err := s.notes.Open(ctx, id); err != nil {
		s.logger.Warn("failed to open new note", "id", id, "error", err)
	}
	return s.complete(models.NewItem(title, models.VariantNote, id))
}

// DeleteSelectedNote deletes the selected item when it is a note. It reports
// whether a note was deleted; the caller should refresh the catalog then.
func (s *Session) DeleteSelectedNote(ctx context.Context) (bool, error) {
	item, ok := s.Selected()
	if !ok || item.Handler() != models.HandlerNote {
		return false, nil
	}
	if s.notes == nil {
		return false, s.fail(sources.ErrUnsupported)
	}

	if err := s.notes.Delete(ctx, item.Value); err != nil {
		return false, s.fail(err)
	}

	kept := s.catalog[:0:0]
	for _, c := range s.catalog {
		if c.Key() != item.Key() {
			kept = append(kept, c)
		}
	}
	s.catalog = kept
	s.recompute()
	return true, nil
}

// AskAssistant opens the chat assistant with the query
func (s *Session) AskAssistant(ctx context.Context) error {
	if s.executor == nil {
		return s.fail(sources.ErrUnsupported)
	}
	if err := s.executor.OpenURL(sources.AssistantURL(s.query)); err != nil {
		return s.fail(fmt.Errorf("failed to open assistant: %w", err))
	}
	return nil
}

// complete records item and resets the query. A persistence failure keeps
// the in-memory history and is returned.
func (s *Session) complete(item models.Item) error {
	var recordErr error
	if s.store != nil {
		s.history, recordErr = s.store.Record(s.history, item)
	}

	s.err = nil
	s.SetQuery("")
	s.cursor.Reset(len(s.view))

	if recordErr != nil {
		s.logger.Error("failed to save history", "error", recordErr)
		return s.fail(fmt.Errorf("failed to save history: %w", recordErr))
	}
	return nil
}

func (s *Session) fail(err error) error {
	s.err = err
	return err
}

func (s *Session) setBuffer(category dispatch.Category, items []models.Item) {
	switch category {
	case dispatch.CategoryFiles:
		s.files = items
	case dispatch.CategorySuggestions:
		s.suggestions = items
	}
}

func (s *Session) recompute() {
	s.view = search.Rank(search.Input{
		Query:       s.query,
		History:     s.history,
		Catalog:     s.catalog,
		Files:       s.files,
		Suggestions: s.suggestions,
	}, s.weights)
	s.cursor.Sync(len(s.view))
}
