package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// ErrTimeout is returned when a host command outlives its timeout.
var ErrTimeout = errors.New("command timed out")

// CommandRunner runs a host program and returns its combined output.
type CommandRunner interface {
	Run(ctx context.Context, timeout time.Duration, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands through os/exec. Env entries are appended to the
// current environment.
type ExecRunner struct {
	Env []string
}

func (r ExecRunner) Run(
	parent context.Context,
	timeout time.Duration,
	name string,
	args ...string,
) ([]byte, error) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.WaitDelay = time.Second
	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}

	out, err := cmd.CombinedOutput()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return out, fmt.Errorf("%s after %s: %w", name, timeout, ErrTimeout)
	}
	return out, err
}
