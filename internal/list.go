package internal

import (
	"github.com/MrSnakeDoc/altcat/internal/list"

	"github.com/spf13/cobra"
)

func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Fetch every source and list its apps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			base, err := baseFromContext(cmd)
			if err != nil {
				return err
			}

			extra, err := cmd.Flags().GetStringArray("source")
			if err != nil {
				return err
			}

			icons, err := cmd.Flags().GetBool("icons")
			if err != nil {
				return err
			}

			withMetrics, err := cmd.Flags().GetBool("metrics")
			if err != nil {
				return err
			}

			return list.New(base).Execute(cmd.Context(), list.Options{
				Sources: extra,
				Icons:   icons,
				Metrics: withMetrics,
			})
		},
	}

	addSourceFlag(cmd)
	cmd.Flags().BoolP("icons", "i", false, "Load app icons before rendering")
	cmd.Flags().Bool("metrics", false, "Print fetch metrics after the tables")
	return cmd
}
