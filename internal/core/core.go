package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/MrSnakeDoc/altcat/internal/catalog"
	"github.com/MrSnakeDoc/altcat/internal/config"
	"github.com/MrSnakeDoc/altcat/internal/icons"
	"github.com/MrSnakeDoc/altcat/internal/logger"
	"github.com/MrSnakeDoc/altcat/internal/models"
	"github.com/MrSnakeDoc/altcat/internal/opener"
	"github.com/MrSnakeDoc/altcat/internal/runner"
	"github.com/MrSnakeDoc/altcat/internal/service"
	"github.com/MrSnakeDoc/altcat/internal/sources"
	"github.com/MrSnakeDoc/altcat/internal/transfer"
)

var (
	ErrNoSources     = errors.New("no catalog sources configured")
	ErrEntryNotFound = errors.New("app not found in any source")
	ErrAmbiguous     = errors.New("app is published by more than one source")
)

// Match locates one entry inside the registry.
type Match struct {
	Slot  int
	URI   string
	Entry models.AppEntry
}

// Base wires every component a command needs around a single registry.
//
// Fields:
//   - Config: loaded settings and config.yml
//   - Client: shared outbound HTTP client (documents and icons)
//   - Registry: ordered catalog sources and their last fetched entries
//   - Aggregator: concurrent refresh of every registered source
//   - Icons: deduplicating icon cache
//   - Downloader: single-slot package transfer bound to Tracker
//   - Opener: hands URIs to the host environment
type Base struct {
	Config     *config.Config
	Client     *service.Client
	Registry   *sources.Registry
	Aggregator *sources.Aggregator
	Icons      *icons.Cache
	Tracker    *transfer.Tracker
	Downloader *transfer.Downloader
	Opener     *opener.Opener

	registerOnce sync.Once
}

// NewBase instantiates the component graph from cfg.
//
// Parameters:
//   - cfg: configuration loaded by the middleware chain
//   - r: command runner used to open URIs on the host (nil for exec)
//
// Returns:
//   - *Base: components ready to use, with no source registered yet
func NewBase(cfg *config.Config, r runner.CommandRunner) *Base {
	s := cfg.Settings
	client := service.NewClient(service.Options{
		Timeout:           s.HTTPTimeout,
		UserAgent:         s.UserAgent,
		RequestsPerSecond: s.RequestsPerSecond,
	})

	registry := sources.NewRegistry()
	tracker := transfer.NewTracker()

	return &Base{
		Config:     cfg,
		Client:     client,
		Registry:   registry,
		Aggregator: sources.NewAggregator(registry, catalog.NewFetcher(client, s.MaxDocumentBytes), sources.WithConcurrency(s.Concurrency)),
		Icons:      icons.NewCache(client, s.MaxIconBytes, s.IconTTL),
		Tracker:    tracker,
		Downloader: transfer.NewDownloader(tracker, transfer.HTTPTransport{Client: client.HTTPClient(), MaxSize: s.MaxPackageBytes}),
		Opener:     opener.New(r),
	}
}

// Load registers the configured sources followed by extra, then refreshes
// all of them. Sources are registered on the first call only; later calls
// just refresh. Per-source failures stay on their slot and are only logged.
//
// Parameters:
//   - ctx: bounds every fetch
//   - extra: additional source URIs, e.g. from --source
//
// Returns:
//   - error: ErrNoSources when nothing is registered
func (b *Base) Load(ctx context.Context, extra ...string) error {
	b.registerOnce.Do(func() {
		b.Registry.RegisterAll(b.Config.File.Sources...)
		b.Registry.RegisterAll(extra...)
	})

	if b.Registry.Len() == 0 {
		return ErrNoSources
	}

	if err := b.Aggregator.Refresh(ctx); err != nil {
		logger.Debug("refresh finished with errors: %v", err)
	}
	return nil
}

// Find returns every entry whose bundle identifier equals bundleID
// (case-insensitive), in slot order.
func (b *Base) Find(bundleID string) []Match {
	var out []Match
	for _, s := range b.Registry.List() {
		for _, e := range s.Entries {
			if strings.EqualFold(e.BundleIdentifier, bundleID) {
				out = append(out, Match{Slot: s.Index, URI: s.URI, Entry: e})
			}
		}
	}
	return out
}

// Resolve narrows Find to a single entry.
//
// Parameters:
//   - bundleID: bundle identifier to look up
//   - slot: source index to restrict to, or -1 for any
//
// Returns:
//   - Match: the unique entry
//   - error: ErrEntryNotFound or ErrAmbiguous (wrapped with context)
func (b *Base) Resolve(bundleID string, slot int) (Match, error) {
	matches := b.Find(bundleID)
	if slot >= 0 {
		filtered := matches[:0:0]
		for _, m := range matches {
			if m.Slot == slot {
				filtered = append(filtered, m)
			}
		}
		matches = filtered
	}

	switch len(matches) {
	case 0:
		return Match{}, fmt.Errorf("%w: %s", ErrEntryNotFound, bundleID)
	case 1:
		return matches[0], nil
	default:
		// Same source listing the bundle twice: first one wins.
		if slot >= 0 {
			return matches[0], nil
		}
		return Match{}, fmt.Errorf("%w: %s (%d sources)", ErrAmbiguous, bundleID, len(matches))
	}
}

// DescribeMatches renders one "  [slot] source" line per match.
func DescribeMatches(matches []Match) string {
	var sb strings.Builder
	for _, m := range matches {
		fmt.Fprintf(&sb, "  [%d] %s (version %s)\n", m.Slot, m.URI, m.Entry.Version)
	}
	return sb.String()
}
