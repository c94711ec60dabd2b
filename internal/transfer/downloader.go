package transfer

import (
	"context"
	"sync"

	"github.com/MrSnakeDoc/altcat/internal/logger"
	"github.com/MrSnakeDoc/altcat/internal/service"
	"github.com/MrSnakeDoc/altcat/internal/utils"
)

// Transport moves the bytes of one transfer and reports progress as it goes.
type Transport interface {
	Transfer(ctx context.Context, uri, dst string, progress service.ProgressFunc) (int64, error)
}

// HTTPTransport streams packages over HTTP into a local file. MaxSize > 0
// fails transfers whose body is larger.
type HTTPTransport struct {
	Client  service.HTTPClient
	MaxSize int64
}

func (t HTTPTransport) Transfer(ctx context.Context, uri, dst string, progress service.ProgressFunc) (int64, error) {
	return service.DownloadToFile(ctx, t.Client, uri, dst, t.MaxSize, progress)
}

// Downloader binds a Tracker to a Transport. Beginning a new transfer
// cancels the one in flight.
type Downloader struct {
	tracker   *Tracker
	transport Transport

	mu     sync.Mutex
	cancel context.CancelFunc
}

func NewDownloader(tracker *Tracker, transport Transport) *Downloader {
	return &Downloader{tracker: tracker, transport: transport}
}

func (d *Downloader) Tracker() *Tracker { return d.tracker }

// Begin starts transferring uri into dst and returns its handle right away.
func (d *Downloader) Begin(ctx context.Context, uri, dst string) *Handle {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	h := d.tracker.Start(uri)
	d.mu.Unlock()

	if _, err := utils.ParseRemoteURL(uri); err != nil {
		h.OnFail(err)
		cancel()
		return h
	}

	go func() {
		defer cancel()
		n, err := d.transport.Transfer(ctx, uri, dst, func(written, expected int64) {
			h.OnProgress(written, expected)
		})
		if err != nil {
			if h.OnFail(err) {
				logger.Debug("transfer %s failed: %v", uri, err)
			}
			return
		}
		if h.OnComplete(dst) {
			logger.Debug("transfer %s complete: %s", uri, utils.HumanSize(n))
		}
	}()
	return h
}

// Cancel stops the transfer in flight, if any.
func (d *Downloader) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}
