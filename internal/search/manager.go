package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/MrSnakeDoc/altcat/internal/core"
	"github.com/MrSnakeDoc/altcat/internal/logger"
	"github.com/MrSnakeDoc/altcat/internal/models"
	"github.com/MrSnakeDoc/altcat/internal/printer"
	"github.com/MrSnakeDoc/altcat/internal/sources"
	"github.com/MrSnakeDoc/altcat/internal/utils"
)

type Searcher struct {
	*core.Base
	Out io.Writer
}

func New(base *core.Base) *Searcher {
	return &Searcher{Base: base, Out: logger.Out()}
}

// ---- Options structs ----

type SearchOptions struct {
	Exact bool
	Regex bool
	Query string
}

type OutputOptions struct {
	JSON  bool
	Limit int
}

// Result is one hit, tagged with the source it came from.
type Result struct {
	Slot   int    `json:"slot"`
	Source string `json:"source"`
	models.AppEntry
}

// ---- Orchestrator ----

func (s *Searcher) Execute(ctx context.Context, extra []string, so SearchOptions, oo OutputOptions) error {
	var re *regexp.Regexp
	if so.Regex {
		var err error
		if re, err = regexp.Compile("(?i)" + so.Query); err != nil {
			return fmt.Errorf("invalid regex: %w", err)
		}
	}

	if err := s.Load(ctx, extra...); err != nil {
		return err
	}

	slots := s.Registry.List()
	for _, slot := range slots {
		if slot.Err != nil {
			logger.Warn("[%d] %v", slot.Index, slot.Err)
		}
	}

	all := utils.FlatMap(slots, func(slot sources.SourceSlot) []Result {
		return utils.Map(slot.Entries, func(e models.AppEntry) Result {
			return Result{Slot: slot.Index, Source: slot.URI, AppEntry: e}
		})
	})

	results := limitItems(searchItems(all, so, re), oo.Limit)

	if oo.JSON {
		return outputJSON(s.Out, results)
	}
	return outputItems(results)
}

// ---- Core functions ----

func searchItems(items []Result, opts SearchOptions, re *regexp.Regexp) []Result {
	if opts.Query == "" {
		return items
	}
	query := strings.ToLower(opts.Query)
	return utils.Filter(items, func(r Result) bool {
		return matchItem(r.AppEntry, query, opts, re)
	})
}

func matchItem(e models.AppEntry, query string, opts SearchOptions, re *regexp.Regexp) bool {
	switch {
	case opts.Exact:
		return strings.EqualFold(e.Name, query) || strings.EqualFold(e.BundleIdentifier, query)
	case re != nil:
		return re.MatchString(e.Name) || re.MatchString(e.BundleIdentifier) || re.MatchString(e.DeveloperName)
	default:
		return matchSubstring(e, query)
	}
}

func matchSubstring(e models.AppEntry, q string) bool {
	for _, v := range []string{e.Name, e.BundleIdentifier, e.DeveloperName} {
		if strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}

func limitItems(items []Result, limit int) []Result {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

func outputItems(items []Result) error {
	if len(items) == 0 {
		logger.Info("No apps found")
		return nil
	}

	p := printer.NewColorPrinter()
	table := logger.CreateTable([]string{"Name", "Bundle ID", "Version", "Developer", "Slot"})
	for _, r := range items {
		row := []string{
			p.Tint(utils.Deref(r.TintColor, ""), r.Name),
			r.BundleIdentifier,
			r.Version,
			r.DeveloperName,
			fmt.Sprint(r.Slot),
		}
		if err := table.Append(row); err != nil {
			return fmt.Errorf("append row: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return nil
}

func outputJSON(w io.Writer, items []Result) error {
	if items == nil {
		items = []Result{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}
