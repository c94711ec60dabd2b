package core

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/MrSnakeDoc/altcat/internal/catalog"
	"github.com/MrSnakeDoc/altcat/internal/config"
	"github.com/MrSnakeDoc/altcat/internal/logger"
	"github.com/MrSnakeDoc/altcat/internal/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.UseTestMode()
	os.Exit(m.Run())
}

const docA = `{"apps":[
 {"name":"X","bundleIdentifier":"com.x","developerName":"D","version":"1.0","versionDescription":"v1","downloadURL":"https://x/y.ipa","localizedDescription":"desc"},
 {"name":"Shared","bundleIdentifier":"com.shared","developerName":"D","version":"1.0","versionDescription":"","downloadURL":"https://x/s.ipa","localizedDescription":""}
]}`

const docB = `{"apps":[
 {"name":"Shared","bundleIdentifier":"com.shared","developerName":"E","version":"2.0","versionDescription":"","downloadURL":"https://y/s.ipa","localizedDescription":""}
]}`

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/a.json":
			_, _ = w.Write([]byte(docA))
		case "/b.json":
			_, _ = w.Write([]byte(docB))
		case "/broken.json":
			_, _ = w.Write([]byte(`{"apps":[{"bundleIdentifier":"nope"}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newBase(sources ...string) *Base {
	cfg := &config.Config{Settings: config.DefaultSettings(), File: config.File{Sources: sources}}
	return NewBase(cfg, runner.NewMockRunner())
}

func TestLoad_NoSources(t *testing.T) {
	b := newBase()
	assert.ErrorIs(t, b.Load(context.Background()), ErrNoSources)
}

func TestLoad_ConfiguredThenExtra(t *testing.T) {
	srv := newServer(t)
	b := newBase(srv.URL + "/a.json")

	require.NoError(t, b.Load(context.Background(), srv.URL+"/b.json", srv.URL+"/broken.json", srv.URL+"/missing.json"))

	slots := b.Registry.List()
	require.Len(t, slots, 4)
	assert.Equal(t, srv.URL+"/a.json", slots[0].URI)
	assert.Len(t, slots[0].Entries, 2)
	assert.Len(t, slots[1].Entries, 1)

	assert.Empty(t, slots[2].Entries)
	assert.True(t, catalog.IsDecode(slots[2].Err))

	assert.Empty(t, slots[3].Entries)
	var te *catalog.TransportError
	require.ErrorAs(t, slots[3].Err, &te)
	assert.Equal(t, http.StatusNotFound, te.StatusCode)
}

func TestResolve(t *testing.T) {
	srv := newServer(t)
	b := newBase(srv.URL+"/a.json", srv.URL+"/b.json")
	require.NoError(t, b.Load(context.Background()))

	m, err := b.Resolve("COM.X", -1)
	require.NoError(t, err)
	assert.Equal(t, "X", m.Entry.Name)
	assert.Equal(t, 0, m.Slot)

	_, err = b.Resolve("com.unknown", -1)
	assert.ErrorIs(t, err, ErrEntryNotFound)

	_, err = b.Resolve("com.shared", -1)
	assert.ErrorIs(t, err, ErrAmbiguous)

	m, err = b.Resolve("com.shared", 1)
	require.NoError(t, err)
	assert.Equal(t, "2.0", m.Entry.Version)

	_, err = b.Resolve("com.x", 1)
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestFind_DuplicateSourceYieldsTwoMatches(t *testing.T) {
	srv := newServer(t)
	b := newBase(srv.URL+"/a.json", srv.URL+"/a.json")
	require.NoError(t, b.Load(context.Background()))

	matches := b.Find("com.x")
	require.Len(t, matches, 2)
	assert.NotEqual(t, matches[0].Entry.ID, matches[1].Entry.ID)
}

func TestLoad_RegistersOnce(t *testing.T) {
	srv := newServer(t)
	b := newBase(srv.URL + "/a.json")

	require.NoError(t, b.Load(context.Background()))
	first := b.Registry.List()[0].Entries[0].ID

	require.NoError(t, b.Load(context.Background(), srv.URL+"/b.json"))
	assert.Equal(t, 1, b.Registry.Len())
	assert.NotEqual(t, first, b.Registry.List()[0].Entries[0].ID, "refresh yields new identities")
}
