package sources

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/grinta-launcher/grinta/pkg/models"
)

// Provider produces part of the static catalog
type Provider interface {
	Name() string
	List(ctx context.Context) ([]models.Item, error)
}

// ProviderFunc adapts a function to a Provider
type ProviderFunc struct {
	ID   string
	Func func(ctx context.Context) ([]models.Item, error)
}

// Name implements Provider
func (p ProviderFunc) Name() string { return p.ID }

// List implements Provider
func (p ProviderFunc) List(ctx context.Context) ([]models.Item, error) { return p.Func(ctx) }

// Catalog gathers the static items: applications, notes, bookmarks and
// shortcuts.
type Catalog struct {
	providers []Provider
	logger    *slog.Logger
}

// NewCatalog creates a catalog over providers
func NewCatalog(logger *slog.Logger, providers ...Provider) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{providers: providers, logger: logger}
}

// CatalogOptions select the providers of the default catalog
type CatalogOptions struct {
	Home      string
	AppDirs   []string
	Bookmarks bool
	Notes     bool
	Shortcuts bool
	Icons     bool
	Runner    Runner
}

// DefaultCatalog builds a catalog from the platform adapters
func DefaultCatalog(opts CatalogOptions, logger *slog.Logger) *Catalog {
	runner := opts.Runner
	if runner == nil {
		runner = ExecRunner{}
	}

	var icons *Icons
	if opts.Icons {
		icons = NewIcons(runner)
	}

	apps := NewApplications(opts.AppDirs, icons)
	providers := []Provider{ProviderFunc{ID: "applications", Func: apps.List}}
	if opts.Notes && currentPlatform.notes {
		providers = append(providers, ProviderFunc{ID: "notes", Func: NewNotes(runner).List})
	}
	if opts.Bookmarks {
		providers = append(providers, ProviderFunc{ID: "bookmarks", Func: NewBookmarks(opts.Home).List})
	}
	if opts.Shortcuts && currentPlatform.shortcuts {
		providers = append(providers, ProviderFunc{ID: "shortcuts", Func: NewShortcuts(runner).List})
	}
	return NewCatalog(logger, providers...)
}

// Fetch queries every provider concurrently and concatenates the results in
// provider order. A failing provider contributes whatever it managed to
// list and is logged; it never fails the catalog.
func (c *Catalog) Fetch(ctx context.Context) []models.Item {
	var mu sync.Mutex
	results := make([][]models.Item, len(c.providers))

	g, ctx := errgroup.WithContext(ctx)
	for i, p := range c.providers {
		g.Go(func() error {
			items, err := p.List(ctx)
			if err != nil && !errors.Is(err, ErrUnsupported) {
				c.logger.Warn("catalog provider failed", "provider", p.Name(), "error", err)
			}

			mu.Lock()
			results[i] = items
			mu.Unlock()

			return nil // don't propagate errors to errgroup
		})
	}
	g.Wait()

	var items []models.Item
	for _, part := range results {
		items = append(items, part...)
	}
	c.logger.Debug("catalog fetched", "providers", len(c.providers), "items", len(items))
	return items
}
