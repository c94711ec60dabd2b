package logger

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reset(t *testing.T) {
	t.Cleanup(func() {
		FlagVerboseCount, FlagQuiet, FlagSilent, FlagJSON = 0, false, false, false
		Configure(Options{Level: "error", Out: io.Discard})
	})
}

func TestLevels(t *testing.T) {
	reset(t)
	buf := &bytes.Buffer{}
	Configure(Options{Level: "warn", Out: buf})

	Info("hidden")
	Debug("hidden")
	Warn("shown %d", 1)
	LogError("boom")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown 1")
	assert.Contains(t, out, "boom")
}

func TestJSONOutput(t *testing.T) {
	reset(t)
	buf := &bytes.Buffer{}
	Configure(Options{Level: "info", JSON: true, Out: buf})

	Success("fetched %d apps", 3)

	var line map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &line))
	assert.Equal(t, "info", line["level"])
	assert.Contains(t, line["msg"], "fetched 3 apps")
}

func TestInlineRespectsLevel(t *testing.T) {
	reset(t)
	buf := &bytes.Buffer{}
	Configure(Options{Level: "error", Out: buf})
	Inline("\r50%%")
	assert.Empty(t, buf.String())

	SetLevel("info")
	Inline("\r50%%")
	assert.Contains(t, buf.String(), "50%")
}

func TestConfigureLoggerFromFlags(t *testing.T) {
	reset(t)
	FlagVerboseCount = 2
	ConfigureLoggerFromFlags()
	assert.True(t, level.Enabled(-1))

	FlagVerboseCount, FlagQuiet = 0, true
	ConfigureLoggerFromFlags()
	assert.False(t, level.Enabled(0))
}
