package icons

import (
	"context"
	"errors"
	"image"
	"time"

	"github.com/MrSnakeDoc/altcat/internal/logger"
	"github.com/MrSnakeDoc/altcat/internal/metrics"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// ErrNoIcon is reported for entries that carry no icon URI.
var ErrNoIcon = errors.New("entry has no icon")

const defaultMaxBytes = 4 << 20

// CachedImage is the outcome of loading one icon URI. A Failed image is a
// terminal sentinel: the URI is not fetched again for the cache lifetime.
type CachedImage struct {
	URI    string
	Image  image.Image
	Format string
	Failed bool
	Err    error
}

// Placeholder reports whether the renderer should draw the fallback glyph.
func (c CachedImage) Placeholder() bool { return c.Failed || c.Image == nil }

// Getter is satisfied by *service.Client.
type Getter interface {
	Get(ctx context.Context, url string, maxBytes int64) ([]byte, error)
}

type Cache struct {
	store    *gocache.Cache
	group    singleflight.Group
	client   Getter
	maxBytes int64
}

// NewCache builds an icon cache. ttl <= 0 keeps entries for the process
// lifetime; a positive ttl evicts both images and failure sentinels.
func NewCache(client Getter, maxBytes int64, ttl time.Duration) *Cache {
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	var store *gocache.Cache
	if ttl > 0 {
		store = gocache.New(ttl, 2*ttl)
	} else {
		store = gocache.New(gocache.NoExpiration, 0)
	}
	return &Cache{store: store, client: client, maxBytes: maxBytes}
}

// Get returns the cached result for uri without triggering a fetch.
func (c *Cache) Get(uri string) (CachedImage, bool) {
	v, ok := c.store.Get(uri)
	if !ok {
		return CachedImage{}, false
	}
	metrics.IconCacheHits.Inc()
	return v.(CachedImage), true
}

// Request delivers the image for uri on the returned channel, fetching it if
// needed. Concurrent requests for the same uri share a single fetch. The
// channel receives exactly one value and is then closed.
//
// Cancelling ctx detaches this caller only; the shared fetch still completes
// and populates the cache for later requesters.
func (c *Cache) Request(ctx context.Context, uri string) <-chan CachedImage {
	out := make(chan CachedImage, 1)

	if uri == "" {
		out <- CachedImage{Failed: true, Err: ErrNoIcon}
		close(out)
		return out
	}
	if img, ok := c.Get(uri); ok {
		out <- img
		close(out)
		return out
	}

	shared := c.group.DoChan(uri, func() (interface{}, error) {
		return c.load(context.WithoutCancel(ctx), uri), nil
	})

	go func() {
		defer close(out)
		select {
		case res := <-shared:
			out <- res.Val.(CachedImage)
		case <-ctx.Done():
			out <- CachedImage{URI: uri, Failed: true, Err: ctx.Err()}
		}
	}()
	return out
}

// Load is the blocking form of Request.
func (c *Cache) Load(ctx context.Context, uri string) CachedImage {
	return <-c.Request(ctx, uri)
}

// Len returns the number of cached results, failures included.
func (c *Cache) Len() int { return c.store.ItemCount() }

func (c *Cache) load(ctx context.Context, uri string) CachedImage {
	// A previous flight may have finished between Get and DoChan.
	if v, ok := c.store.Get(uri); ok {
		return v.(CachedImage)
	}

	res := c.fetch(ctx, uri)
	c.store.SetDefault(uri, res)
	return res
}

func (c *Cache) fetch(ctx context.Context, uri string) CachedImage {
	data, err := c.client.Get(ctx, uri, c.maxBytes)
	if err != nil {
		metrics.IconFetches.WithLabelValues(metrics.ResultTransportError).Inc()
		logger.Debug("icon %s: %v", uri, err)
		return CachedImage{URI: uri, Failed: true, Err: err}
	}

	img, format, err := Decode(data)
	if err != nil {
		metrics.IconFetches.WithLabelValues(metrics.ResultDecodeError).Inc()
		logger.Debug("icon %s: %v", uri, err)
		return CachedImage{URI: uri, Failed: true, Err: err}
	}

	metrics.IconFetches.WithLabelValues(metrics.ResultOK).Inc()
	return CachedImage{URI: uri, Image: img, Format: format}
}
