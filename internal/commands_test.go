package internal

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MrSnakeDoc/altcat/internal/config"
	"github.com/MrSnakeDoc/altcat/internal/logger"
	"github.com/MrSnakeDoc/altcat/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.UseTestMode()
	os.Exit(m.Run())
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	root := NewRootCmd()
	root.SetArgs(append(args, "--silent"))
	_, err := root.ExecuteC()
	return err
}

func TestCmd_FlagValidation(t *testing.T) {
	t.Setenv("ALTCAT_CONFIG_DIR", t.TempDir())

	tests := []struct {
		name string
		args []string
	}{
		{"show without bundle id", []string{"show"}},
		{"download without bundle id", []string{"download"}},
		{"open without bundle id", []string{"open"}},
		{"negative slot", []string{"show", "com.x", "--slot", "-4"}},
		{"exact with regex", []string{"search", "x", "--exact", "--regex"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(t, tt.args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, middleware.ErrLogged)
		})
	}
}

func TestCmd_AddRequiresInit(t *testing.T) {
	t.Setenv("ALTCAT_CONFIG_DIR", t.TempDir())

	err := run(t, "add", "https://example.com/repo.json")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrNotInitialized)
}

func TestCmd_InitThenAdd(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ALTCAT_CONFIG_DIR", dir)

	require.NoError(t, run(t, "init"))
	require.NoError(t, run(t, "add", "https://example.com/repo.json"))
	require.NoError(t, run(t, "sources"))

	data, err := os.ReadFile(filepath.Join(dir, "config.yml"))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), config.DefaultSource))
	assert.True(t, strings.Contains(string(data), "https://example.com/repo.json"))
}

func TestCmd_ListWithoutSources(t *testing.T) {
	t.Setenv("ALTCAT_CONFIG_DIR", t.TempDir())
	assert.Error(t, run(t, "list"))
}

func TestCmd_ListExtraSource(t *testing.T) {
	t.Setenv("ALTCAT_CONFIG_DIR", t.TempDir())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"apps":[{"name":"X","bundleIdentifier":"com.x","developerName":"D","version":"1.0","versionDescription":"v1","downloadURL":"https://x/y.ipa","localizedDescription":"desc"}]}`))
	}))
	defer srv.Close()

	assert.NoError(t, run(t, "list", "--source", srv.URL+"/repo.json"))
	assert.NoError(t, run(t, "show", "com.x", "--source", srv.URL+"/repo.json"))
}
