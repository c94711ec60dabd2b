package internal

import (
	"github.com/MrSnakeDoc/altcat/internal/logger"
	"github.com/MrSnakeDoc/altcat/internal/show"

	"github.com/spf13/cobra"
)

func NewOpenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open [bundle-id]",
		Short: "Hand the download link of an app to the system",
		Long: `Opens the app's download URL with the system handler (xdg-open, open,
or the Windows URL handler), e.g. to install it through another tool.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bundleID, slot, extra, err := targetArgs(cmd, args)
			if err != nil {
				return err
			}

			base, err := baseFromContext(cmd)
			if err != nil {
				return err
			}

			if err := base.Load(cmd.Context(), extra...); err != nil {
				return err
			}

			m, err := show.ResolveOrExplain(base, "open", bundleID, slot)
			if err != nil {
				return err
			}

			if err := base.Opener.Open(cmd.Context(), m.Entry.DownloadURL); err != nil {
				return err
			}
			logger.Success("Opened %s", m.Entry.DownloadURL)
			return nil
		},
	}

	addSourceFlag(cmd)
	addSlotFlag(cmd)
	return cmd
}
