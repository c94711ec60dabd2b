package middleware

import (
	"github.com/MrSnakeDoc/altcat/internal/config"
	"github.com/spf13/cobra"
)

// LoadConfig stores the environment settings and config.yml (when present)
// under CtxKeyConfig.
func LoadConfig(cmd *cobra.Command, args []string, next func(cmd *cobra.Command, args []string) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	set(cmd, CtxKeyConfig, cfg)
	return next(cmd, args)
}
