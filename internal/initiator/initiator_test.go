package initiator

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/MrSnakeDoc/altcat/internal/config"
	"github.com/MrSnakeDoc/altcat/internal/logger"
	"github.com/MrSnakeDoc/altcat/internal/prompter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.UseTestMode()
	os.Exit(m.Run())
}

func load(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load()
	require.NoError(t, err)
	return cfg
}

func TestExecute_CreatesDefault(t *testing.T) {
	t.Setenv("ALTCAT_CONFIG_DIR", t.TempDir())

	require.NoError(t, New(load(t), nil).Execute(false))

	cfg := load(t)
	assert.True(t, cfg.Exists)
	assert.Equal(t, []string{config.DefaultSource}, cfg.File.Sources)
	assert.Equal(t, config.DefaultDownloadDir, cfg.File.DownloadDir)
}

func TestExecute_PromptsForDownloadDir(t *testing.T) {
	t.Setenv("ALTCAT_CONFIG_DIR", t.TempDir())

	p := prompter.New(strings.NewReader("/srv/ipa\n"), &bytes.Buffer{})
	require.NoError(t, New(load(t), p).Execute(false))
	assert.Equal(t, "/srv/ipa", load(t).File.DownloadDir)
}

func TestExecute_KeepsExistingUnlessForced(t *testing.T) {
	t.Setenv("ALTCAT_CONFIG_DIR", t.TempDir())

	cfg := load(t)
	cfg.File = config.File{Sources: []string{"https://mine/repo.json"}}
	require.NoError(t, cfg.Save())

	require.NoError(t, New(load(t), nil).Execute(false))
	assert.Equal(t, []string{"https://mine/repo.json"}, load(t).File.Sources)

	require.NoError(t, New(load(t), nil).Execute(true))
	assert.Equal(t, []string{config.DefaultSource}, load(t).File.Sources)
}
