package middleware

import (
	"fmt"

	"github.com/MrSnakeDoc/altcat/internal/config"
	"github.com/spf13/cobra"
)

// RequireConfig is LoadConfig for commands that edit config.yml and need it
// to exist already.
func RequireConfig(cmd *cobra.Command, args []string, next func(cmd *cobra.Command, args []string) error) error {
	cfg, err := config.Require()
	if err != nil {
		return fmt.Errorf("missing config: %w", err)
	}

	set(cmd, CtxKeyConfig, cfg)
	return next(cmd, args)
}
