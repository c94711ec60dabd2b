package add

import (
	"os"
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

func TestExecute_AppendsWithoutDedup(t *testing.T) {
	t.Setenv("ALTCAT_CONFIG_DIR", t.TempDir())
	cfg, err := config.Load()
	require.NoError(t, err)
	cfg.File = config.Default()

	require.NoError(t, New(cfg).Execute([]string{config.DefaultSource, "not a url"}))

	reloaded, err := config.Require()
	require.NoError(t, err)
	assert.Equal(t, []string{config.DefaultSource, config.DefaultSource, "not a url"}, reloaded.File.Sources)
}

func TestExecute_NoArgs(t *testing.T) {
	err := New(&config.Config{}).Execute(nil)
	assert.ErrorIs(t, err, middleware.ErrLogged)
}
