package download

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/MrSnakeDoc/altcat/internal/core"
	"github.com/MrSnakeDoc/altcat/internal/logger"
	"github.com/MrSnakeDoc/altcat/internal/prompter"
	"github.com/MrSnakeDoc/altcat/internal/show"
	"github.com/MrSnakeDoc/altcat/internal/transfer"
	"github.com/MrSnakeDoc/altcat/internal/utils"
)

const barWidth = 30

var errSuperseded = errors.New("superseded by another transfer")

type Options struct {
	Slot    int
	Dir     string // overrides download_dir
	Yes     bool   // overwrite without asking
	Sources []string
}

type Downloader struct {
	*core.Base
	Prompter prompter.Prompter
}

func New(base *core.Base, p prompter.Prompter) *Downloader {
	if p == nil {
		p = prompter.New(os.Stdin, logger.Out())
	}
	return &Downloader{Base: base, Prompter: p}
}

// Execute downloads the package of bundleID and renders progress until the
// transfer reaches a terminal state.
func (d *Downloader) Execute(ctx context.Context, bundleID string, opts Options) (string, error) {
	if err := d.Load(ctx, opts.Sources...); err != nil {
		return "", err
	}

	m, err := show.ResolveOrExplain(d.Base, "download", bundleID, opts.Slot)
	if err != nil {
		return "", err
	}

	dir := opts.Dir
	if dir == "" {
		if dir, err = d.Config.DownloadDir(); err != nil {
			return "", err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	dst, err := localPath(dir, FileName(m.Entry.DownloadURL, m.Entry.BundleIdentifier))
	if err != nil {
		return "", err
	}
	if ok, _ := utils.FileExists(dst); ok && !opts.Yes {
		overwrite, err := d.Prompter.Confirm(fmt.Sprintf("%s already exists. Overwrite?", dst))
		if err != nil {
			return "", err
		}
		if !overwrite {
			logger.Info("Kept existing %s", dst)
			return dst, nil
		}
	}

	logger.Info("Downloading %s %s", m.Entry.Name, m.Entry.Version)
	state := d.track(ctx, m.Entry.DownloadURL, dst)

	if state.Status != transfer.StatusCompleted {
		return "", fmt.Errorf("download of %s failed: %w", m.Entry.Name, state.Err)
	}
	logger.Success("Saved %s (%s)", state.LocalPath, utils.HumanSize(state.BytesWritten))
	return state.LocalPath, nil
}

func (d *Downloader) track(ctx context.Context, uri, dst string) transfer.TransferState {
	updates, cancel := d.Tracker.Subscribe()
	defer cancel()

	h := d.Base.Downloader.Begin(ctx, uri, dst)
	for {
		select {
		case s := <-updates:
			if s.ID == h.ID() {
				renderProgress(s)
			}
		case <-h.Done():
			s := d.Tracker.State()
			if s.ID != h.ID() {
				return transfer.TransferState{ID: h.ID(), URI: uri, Status: transfer.StatusFailed, Err: errSuperseded}
			}
			renderProgress(s)
			logger.Inline("\n")
			return s
		}
	}
}

func renderProgress(s transfer.TransferState) {
	total := "?"
	if s.BytesExpected != nil {
		total = utils.HumanSize(*s.BytesExpected)
	}
	logger.Inline("\r%s %5.1f%% %s / %s", utils.ProgressBar(s.Ratio, barWidth), s.Ratio*100, utils.HumanSize(s.BytesWritten), total)
}

// FileName derives the local file name from the download URL, falling back
// to "<bundleID>.ipa". Both come from the catalog, so neither may name a
// directory or climb out of the download dir.
func FileName(downloadURL, bundleID string) string {
	if u, err := url.Parse(downloadURL); err == nil {
		if name := safeName(path.Base(u.Path)); name != "" {
			return name
		}
	}
	if name := safeName(bundleID); name != "" {
		return name + ".ipa"
	}
	return "package.ipa"
}

// safeName returns s when it is a plain, visible file name, "" otherwise.
func safeName(s string) string {
	if s == "" || strings.HasPrefix(s, ".") || strings.ContainsAny(s, `/\:`) {
		return ""
	}
	return s
}

// localPath joins dir and name, refusing anything that does not land
// directly inside dir.
func localPath(dir, name string) (string, error) {
	dst := filepath.Join(dir, name)
	if filepath.Dir(dst) != filepath.Clean(dir) {
		return "", fmt.Errorf("refusing to write %q outside %s", name, dir)
	}
	return dst, nil
}
