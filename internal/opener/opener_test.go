package opener

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/MrSnakeDoc/altcat/internal/logger"
	"github.com/MrSnakeDoc/altcat/internal/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.UseTestMode()
	os.Exit(m.Run())
}

func TestOpen_PerPlatformCommand(t *testing.T) {
	uri := "https://x/y.ipa"
	tests := []struct {
		goos string
		name string
		args []string
	}{
		{"linux", "xdg-open", []string{uri}},
		{"darwin", "open", []string{uri}},
		{"windows", "rundll32", []string{"url.dll,FileProtocolHandler", uri}},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			mr := runner.NewMockRunner()
			o := New(mr)
			o.GOOS = tt.goos

			require.NoError(t, o.Open(context.Background(), uri))
			assert.True(t, mr.VerifyCommand(tt.name, tt.args...))
			assert.True(t, mr.VerifyRunCount(tt.name, 1))
		})
	}
}

func TestOpen_RunnerFailure(t *testing.T) {
	mr := runner.NewMockRunner()
	mr.AddResponse("xdg-open|https://x/y.ipa", []byte("no handler"), errors.New("exit status 4"))
	o := New(mr)
	o.GOOS = "linux"

	err := o.Open(context.Background(), "https://x/y.ipa")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot open")
}

func TestOpen_RejectsNonRemote(t *testing.T) {
	mr := runner.NewMockRunner()
	o := New(mr)

	for _, uri := range []string{"", "file:///etc/passwd", "javascript:alert(1)"} {
		assert.Error(t, o.Open(context.Background(), uri))
	}
	assert.Empty(t, mr.Commands)
}
