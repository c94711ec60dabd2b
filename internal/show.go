package internal

import (
	"github.com/MrSnakeDoc/altcat/internal/show"

	"github.com/spf13/cobra"
)

func NewShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "show [bundle-id]",
		Short:   "Show the details of an app",
		Example: `altcat show com.rileytestut.Delta`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bundleID, slot, extra, err := targetArgs(cmd, args)
			if err != nil {
				return err
			}

			base, err := baseFromContext(cmd)
			if err != nil {
				return err
			}

			s := show.New(base)
			s.Out = cmd.OutOrStdout()
			return s.Execute(cmd.Context(), bundleID, slot, extra)
		},
	}

	addSourceFlag(cmd)
	addSlotFlag(cmd)
	return cmd
}
