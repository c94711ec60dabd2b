package opener

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/MrSnakeDoc/altcat/internal/logger"
	"github.com/MrSnakeDoc/altcat/internal/runner"
	"github.com/MrSnakeDoc/altcat/internal/utils"
)

const openTimeout = 15 * time.Second

// Opener hands a URI to the host environment, which decides what to do
// with it (browser, installer, sideloading tool).
type Opener struct {
	Runner runner.CommandRunner
	GOOS   string
}

func New(r runner.CommandRunner) *Opener {
	if r == nil {
		r = &runner.ExecRunner{}
	}
	return &Opener{Runner: r, GOOS: runtime.GOOS}
}

// Command returns the host command used to open uri.
func (o *Opener) Command(uri string) (string, []string) {
	switch o.GOOS {
	case "darwin":
		return "open", []string{uri}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", uri}
	default:
		return "xdg-open", []string{uri}
	}
}

func (o *Opener) Open(ctx context.Context, uri string) error {
	if _, err := utils.ParseRemoteURL(uri); err != nil {
		return fmt.Errorf("cannot open %q: %w", uri, err)
	}

	name, args := o.Command(uri)
	logger.Debug("running %s %v", name, args)
	out, err := o.Runner.Run(ctx, openTimeout, name, args...)
	if err != nil {
		if len(out) > 0 {
			logger.Debug("%s output: %s", name, out)
		}
		return fmt.Errorf("cannot open %s: %w", uri, err)
	}
	return nil
}
