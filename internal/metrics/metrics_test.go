package metrics

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteText_IncludesRegisteredFamilies(t *testing.T) {
	CatalogFetches.WithLabelValues(ResultOK).Inc()
	IconCacheHits.Inc()

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf))

	out := buf.String()
	assert.Contains(t, out, "altcat_catalog_fetch_total")
	assert.Contains(t, out, "altcat_icon_cache_hits_total")
}

func TestTransferRatio_Gauge(t *testing.T) {
	TransferRatio.Set(0.25)
	assert.InDelta(t, 0.25, testutil.ToFloat64(TransferRatio), 1e-9)
}
