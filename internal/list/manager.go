package list

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/MrSnakeDoc/altcat/internal/core"
	"github.com/MrSnakeDoc/altcat/internal/logger"
	"github.com/MrSnakeDoc/altcat/internal/metrics"
	"github.com/MrSnakeDoc/altcat/internal/models"
	"github.com/MrSnakeDoc/altcat/internal/printer"
	"github.com/MrSnakeDoc/altcat/internal/sources"
	"github.com/MrSnakeDoc/altcat/internal/utils"
	"github.com/olekukonko/tablewriter"
)

// row is a view model for rendering.
type row struct {
	Icon      string
	Name      string
	Version   string
	Developer string
	Size      string
	Bundle    string
}

type Options struct {
	Sources []string // appended after the configured ones
	Icons   bool     // load icons before rendering
	Metrics bool     // dump collectors after the tables
}

type Lister struct {
	*core.Base
	Out io.Writer
}

func New(base *core.Base) *Lister {
	return &Lister{Base: base, Out: logger.Out()}
}

// Execute refreshes every source and renders one table per slot. A failing
// source prints its error next to whatever entries it still holds.
func (l *Lister) Execute(ctx context.Context, opts Options) error {
	if err := l.Load(ctx, opts.Sources...); err != nil {
		return err
	}

	slots := l.Registry.List()
	if opts.Icons {
		l.prefetchIcons(ctx, slots)
	}

	p := printer.NewColorPrinter()
	for _, s := range slots {
		if err := l.renderSlot(p, s); err != nil {
			return err
		}
	}

	if opts.Metrics {
		return metrics.WriteText(l.Out)
	}
	return nil
}

func (l *Lister) renderSlot(p *printer.ColorPrinter, s sources.SourceSlot) error {
	logger.Info("[%d] %s (%d apps)", s.Index, s.URI, len(s.Entries))
	if s.Err != nil {
		logger.Warn("[%d] %v", s.Index, s.Err)
	}
	if len(s.Entries) == 0 {
		return nil
	}

	table := logger.CreateTable([]string{"", "Name", "Version", "Developer", "Size", "Bundle ID"})
	rows := utils.Map(s.Entries, func(e models.AppEntry) row {
		return row{
			Icon:      l.iconCell(p, e),
			Name:      p.Tint(utils.Deref(e.TintColor, ""), e.Name),
			Version:   e.Version,
			Developer: e.DeveloperName,
			Size:      sizeCell(e.Size),
			Bundle:    p.Muted("%s", e.BundleIdentifier),
		}
	})

	for _, r := range rows {
		if err := renderRow(table, r); err != nil {
			return fmt.Errorf("an error occurred while appending to the table: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("an error occurred while rendering the table: %w", err)
	}
	return nil
}

// ExecuteSources prints the configured sources without fetching them.
func (l *Lister) ExecuteSources() error {
	table := logger.CreateTable([]string{"Slot", "Source"})
	for i, uri := range l.Config.File.Sources {
		if err := table.Append([]string{fmt.Sprint(i), uri}); err != nil {
			return fmt.Errorf("append row: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return nil
}

func (l *Lister) prefetchIcons(ctx context.Context, slots []sources.SourceSlot) {
	var wg sync.WaitGroup
	for _, s := range slots {
		for _, e := range s.Entries {
			if e.Icon() == "" {
				continue
			}
			wg.Add(1)
			go func(uri string) {
				defer wg.Done()
				<-l.Icons.Request(ctx, uri)
			}(e.Icon())
		}
	}
	wg.Wait()
}

// iconCell only reads the cache; icons are never fetched while rendering.
func (l *Lister) iconCell(p *printer.ColorPrinter, e models.AppEntry) string {
	img, ok := l.Icons.Get(e.Icon())
	if !ok || img.Placeholder() {
		return p.Muted("□")
	}
	return p.Tint(utils.Deref(e.TintColor, ""), "■")
}

func sizeCell(size *int64) string {
	if size == nil {
		return "—"
	}
	return utils.HumanSize(*size)
}

func renderRow(table *tablewriter.Table, r row) error {
	return table.Append([]string{r.Icon, r.Name, r.Version, r.Developer, r.Size, r.Bundle})
}

