package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/MrSnakeDoc/altcat/internal/logger"
	"github.com/MrSnakeDoc/altcat/internal/metrics"
	"github.com/MrSnakeDoc/altcat/internal/models"
	"github.com/MrSnakeDoc/altcat/internal/service"
	"github.com/MrSnakeDoc/altcat/internal/utils"
)

// Getter is the transport the fetcher needs; *service.Client satisfies it.
type Getter interface {
	Get(ctx context.Context, url string, maxBytes int64) ([]byte, error)
}

type Fetcher struct {
	client   Getter
	maxBytes int64
}

func NewFetcher(client Getter, maxBytes int64) *Fetcher {
	return &Fetcher{client: client, maxBytes: maxBytes}
}

// Fetch retrieves and decodes the catalog at uri. It never touches any
// aggregated state; failures are *TransportError or *DecodeError.
func (f *Fetcher) Fetch(ctx context.Context, uri string) (models.Catalog, error) {
	start := time.Now()
	defer func() { metrics.CatalogFetchDuration.Observe(time.Since(start).Seconds()) }()

	if _, err := utils.ParseRemoteURL(uri); err != nil {
		metrics.CatalogFetches.WithLabelValues(metrics.ResultTransportError).Inc()
		return models.Catalog{}, &TransportError{URI: uri, Err: err}
	}

	data, err := f.client.Get(ctx, uri, f.maxBytes)
	if err != nil {
		metrics.CatalogFetches.WithLabelValues(metrics.ResultTransportError).Inc()
		te := &TransportError{URI: uri, Err: err}
		var se *service.StatusError
		if errors.As(err, &se) {
			te.StatusCode = se.StatusCode
		}
		return models.Catalog{}, te
	}

	cat, err := Decode(data)
	if err != nil {
		metrics.CatalogFetches.WithLabelValues(metrics.ResultDecodeError).Inc()
		var de *DecodeError
		if errors.As(err, &de) {
			de.URI = uri
		}
		return models.Catalog{}, err
	}

	metrics.CatalogFetches.WithLabelValues(metrics.ResultOK).Inc()
	logger.Debug("fetched %s: %d apps in %s", uri, len(cat.Apps), time.Since(start).Truncate(time.Millisecond))
	return cat, nil
}
