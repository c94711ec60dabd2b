package middleware

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

type contextKey string

// CtxKeyConfig holds the *config.Config of the running command.
const CtxKeyConfig contextKey = "config"

type (
	CommandFactory  func() *cobra.Command
	RunFunc         func(cmd *cobra.Command, args []string) error
	MiddlewareFunc  func(cmd *cobra.Command, args []string, next func(cmd *cobra.Command, args []string) error) error
	MiddlewareChain func(factory CommandFactory) CommandFactory
)

// UseMiddlewareChain runs middlewares, first to last, in front of the
// command's own PreRunE. A middleware that does not call next stops the
// command.
func UseMiddlewareChain(middlewares ...MiddlewareFunc) MiddlewareChain {
	mws := append([]MiddlewareFunc(nil), middlewares...)

	return func(factory CommandFactory) CommandFactory {
		return func() *cobra.Command {
			cmd := factory()

			var inner RunFunc = func(*cobra.Command, []string) error { return nil }
			if cmd.PreRunE != nil {
				inner = cmd.PreRunE
			}
			for i := len(mws) - 1; i >= 0; i-- {
				mw, next := mws[i], inner
				inner = func(c *cobra.Command, a []string) error {
					return mw(c, a, next)
				}
			}

			cmd.PreRunE = inner
			return cmd
		}
	}
}

// Get returns the context value stored under key as a T.
func Get[T any](cmd *cobra.Command, key contextKey) (T, error) {
	var zero T

	ctx := cmd.Context()
	if ctx == nil {
		return zero, fmt.Errorf("command context is nil")
	}

	val := ctx.Value(key)
	if val == nil {
		return zero, fmt.Errorf("context value %q is nil", key)
	}

	casted, ok := val.(T)
	if !ok {
		return zero, fmt.Errorf("context value %q has wrong type: %T", key, val)
	}
	return casted, nil
}

func set(cmd *cobra.Command, key contextKey, val any) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, key, val))
}
