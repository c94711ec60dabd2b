package list

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/MrSnakeDoc/altcat/internal/config"
	"github.com/MrSnakeDoc/altcat/internal/core"
	"github.com/MrSnakeDoc/altcat/internal/logger"
	"github.com/MrSnakeDoc/altcat/internal/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.UseTestMode()
	os.Exit(m.Run())
}

type fixture struct {
	srv       *httptest.Server
	iconHits  atomic.Int32
	logs      *bytes.Buffer
	lister    *Lister
	metricOut *bytes.Buffer
}

func newFixture(t *testing.T, extra ...string) *fixture {
	t.Helper()
	f := &fixture{logs: &bytes.Buffer{}, metricOut: &bytes.Buffer{}}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repo.json":
			// Both apps share one icon.
			fmt.Fprintf(w, `{"apps":[
 {"name":"Delta","bundleIdentifier":"com.delta","developerName":"Riley","version":"1.5","versionDescription":"","downloadURL":"https://x/d.ipa","localizedDescription":"","iconURL":"%[1]s/icon.png","size":1536},
 {"name":"Clip","bundleIdentifier":"com.clip","developerName":"Riley","version":"1.0","versionDescription":"","downloadURL":"https://x/c.ipa","localizedDescription":"","iconURL":"%[1]s/icon.png"}
]}`, f.srv.URL)
		case "/icon.png":
			f.iconHits.Add(1)
			_ = png.Encode(w, image.NewRGBA(image.Rect(0, 0, 1, 1)))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(f.srv.Close)

	logger.Configure(logger.Options{Level: "info", Out: f.logs})
	t.Cleanup(logger.UseTestMode)

	sources := append([]string{f.srv.URL + "/repo.json"}, extra...)
	cfg := &config.Config{Settings: config.DefaultSettings(), File: config.File{Sources: sources}}
	f.lister = New(core.NewBase(cfg, runner.NewMockRunner()))
	f.lister.Out = f.metricOut
	return f
}

func TestExecute_RendersEverySlot(t *testing.T) {
	f := newFixture(t)
	broken := f.srv.URL + "/missing.json"

	require.NoError(t, f.lister.Execute(context.Background(), Options{Sources: []string{broken}}))

	out := f.logs.String()
	assert.Contains(t, out, "[0] "+f.srv.URL+"/repo.json (2 apps)")
	assert.Contains(t, out, "Delta")
	assert.Contains(t, out, "1.5 KiB")
	assert.Contains(t, out, "[1] "+broken+" (0 apps)")
	assert.Contains(t, out, "404")
	assert.Zero(t, f.iconHits.Load(), "icons are not fetched unless asked")
}

func TestExecute_IconsFetchedOncePerURI(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.lister.Execute(context.Background(), Options{Icons: true}))
	assert.Equal(t, int32(1), f.iconHits.Load())

	img, ok := f.lister.Icons.Get(f.srv.URL + "/icon.png")
	require.True(t, ok)
	assert.False(t, img.Placeholder())
}

func TestExecute_Metrics(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.lister.Execute(context.Background(), Options{Metrics: true}))
	assert.Contains(t, f.metricOut.String(), "altcat_catalog_fetch_total")
}

func TestExecuteSources(t *testing.T) {
	f := newFixture(t, "https://second/repo.json")
	require.NoError(t, f.lister.ExecuteSources())
	assert.Contains(t, f.logs.String(), "https://second/repo.json")
}
