package internal

import (
	"github.com/MrSnakeDoc/altcat/internal/add"
	"github.com/MrSnakeDoc/altcat/internal/config"
	"github.com/MrSnakeDoc/altcat/internal/list"
	"github.com/MrSnakeDoc/altcat/internal/middleware"

	"github.com/spf13/cobra"
)

func NewAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "add [uri...]",
		Short:   "Add catalog sources to the configuration",
		Long:    `Appends each URI as a new source. Adding the same URI twice creates two independent sources.`,
		Example: `altcat add https://example.com/repo.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := middleware.Get[*config.Config](cmd, middleware.CtxKeyConfig)
			if err != nil {
				return err
			}
			return add.New(cfg).Execute(args)
		},
	}
}

func NewSourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "Show the configured catalog sources and their slot index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			base, err := baseFromContext(cmd)
			if err != nil {
				return err
			}
			return list.New(base).ExecuteSources()
		},
	}
}
