package show

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MrSnakeDoc/altcat/internal/core"
	"github.com/MrSnakeDoc/altcat/internal/errs"
	"github.com/MrSnakeDoc/altcat/internal/icons"
	"github.com/MrSnakeDoc/altcat/internal/logger"
	"github.com/MrSnakeDoc/altcat/internal/middleware"
	"github.com/MrSnakeDoc/altcat/internal/printer"
	"github.com/MrSnakeDoc/altcat/internal/utils"
)

type Shower struct {
	*core.Base
	Out io.Writer
}

func New(base *core.Base) *Shower {
	return &Shower{Base: base, Out: logger.Out()}
}

// Execute renders the detail view of one app, loading its icon on the way.
func (s *Shower) Execute(ctx context.Context, bundleID string, slot int, extra []string) error {
	if err := s.Load(ctx, extra...); err != nil {
		return err
	}

	m, err := ResolveOrExplain(s.Base, "show", bundleID, slot)
	if err != nil {
		return err
	}

	icon := s.Icons.Load(ctx, m.Entry.Icon())
	e := m.Entry
	p := printer.NewColorPrinter()
	tint := utils.Deref(e.TintColor, "")

	lines := [][2]string{
		{"Name", p.Tint(tint, e.Name)},
		{"Bundle ID", e.BundleIdentifier},
		{"Developer", e.DeveloperName},
		{"Version", e.Version},
		{"Size", sizeText(e.Size)},
		{"Icon", IconSummary(icon)},
		{"Tint", orDash(tint)},
		{"Source", fmt.Sprintf("[%d] %s", m.Slot, m.URI)},
		{"Download", e.DownloadURL},
	}

	var sb strings.Builder
	for _, l := range lines {
		fmt.Fprintf(&sb, "%-10s %s\n", p.Muted("%s", l[0]+":"), l[1])
	}
	if e.LocalizedDescription != "" {
		fmt.Fprintf(&sb, "\n%s\n", e.LocalizedDescription)
	}
	if e.VersionDescription != "" {
		fmt.Fprintf(&sb, "\n%s\n%s\n", p.Info("What's new in %s", e.Version), e.VersionDescription)
	}

	_, err = io.WriteString(s.Out, sb.String())
	return err
}

// ResolveOrExplain resolves bundleID and turns ambiguity into a logged
// usage message listing the candidate sources.
func ResolveOrExplain(b *core.Base, verb, bundleID string, slot int) (core.Match, error) {
	m, err := b.Resolve(bundleID, slot)
	if errors.Is(err, core.ErrAmbiguous) {
		return core.Match{}, middleware.FlagComboError(errs.AmbiguousEntry, verb, bundleID, core.DescribeMatches(b.Find(bundleID)))
	}
	return m, err
}

// IconSummary describes a cached image for detail views.
func IconSummary(img icons.CachedImage) string {
	if img.Placeholder() {
		if img.Err != nil {
			return fmt.Sprintf("placeholder (%v)", img.Err)
		}
		return "placeholder"
	}
	b := img.Image.Bounds()
	return fmt.Sprintf("%s %dx%d", img.Format, b.Dx(), b.Dy())
}

func sizeText(size *int64) string {
	if size == nil {
		return "unknown"
	}
	return utils.HumanSize(*size)
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
