package sources

import (
	"context"
	"errors"

	"github.com/MrSnakeDoc/altcat/internal/logger"
	"github.com/MrSnakeDoc/altcat/internal/models"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 4

// CatalogFetcher is satisfied by *catalog.Fetcher.
type CatalogFetcher interface {
	Fetch(ctx context.Context, uri string) (models.Catalog, error)
}

// ApplyFetchResult merges the outcome of one fetch into slot index.
// On success the slot's entries are replaced wholesale and the error cleared;
// on failure the previous entries are kept and only the error is recorded.
func (r *Registry) ApplyFetchResult(index int, cat models.Catalog, err error) {
	s := r.at(index)
	if s == nil {
		logger.Debug("ignoring fetch result for unknown slot %d", index)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := r.now()
	s.lastAttempt = now
	if err != nil {
		s.err = err
		return
	}

	entries := make([]models.AppEntry, len(cat.Apps))
	copy(entries, cat.Apps)
	s.entries = entries
	s.err = nil
	s.lastSuccess = now
}

type Aggregator struct {
	registry    *Registry
	fetcher     CatalogFetcher
	concurrency int
}

type Option func(*Aggregator)

// WithConcurrency bounds the number of sources fetched at once.
func WithConcurrency(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

func NewAggregator(r *Registry, f CatalogFetcher, opts ...Option) *Aggregator {
	a := &Aggregator{registry: r, fetcher: f, concurrency: defaultConcurrency}
	for _, o := range opts {
		o(a)
	}
	return a
}

func (a *Aggregator) Registry() *Registry { return a.registry }

// RefreshSlot fetches one source and applies the result. The returned error
// is the fetch error already recorded on the slot.
func (a *Aggregator) RefreshSlot(ctx context.Context, index int) error {
	snap, ok := a.registry.Slot(index)
	if !ok {
		logger.Debug("refresh requested for unknown slot %d", index)
		return nil
	}

	cat, err := a.fetcher.Fetch(ctx, snap.URI)
	a.registry.ApplyFetchResult(index, cat, err)
	if err != nil {
		logger.Debug("source %d (%s) failed: %v", index, snap.URI, err)
	}
	return err
}

// Refresh fetches every registered source concurrently. A failing source
// never cancels the others; all per-source errors are joined.
func (a *Aggregator) Refresh(ctx context.Context) error {
	n := a.registry.Len()
	errs := make([]error, n)

	var g errgroup.Group
	g.SetLimit(a.concurrency)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			errs[i] = a.RefreshSlot(ctx, i)
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}
