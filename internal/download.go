package internal

import (
	"github.com/MrSnakeDoc/altcat/internal/download"
	"github.com/MrSnakeDoc/altcat/internal/prompter"

	"github.com/spf13/cobra"
)

func NewDownloadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download [bundle-id]",
		Short: "Download the package of an app",
		Long: `Downloads the app package into the configured download directory (or -o),
showing live progress. The file is written under a .part name and renamed once
complete.`,
		Example: `altcat download com.rileytestut.Delta -o ~/ipa`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bundleID, slot, extra, err := targetArgs(cmd, args)
			if err != nil {
				return err
			}

			dir, err := cmd.Flags().GetString("output")
			if err != nil {
				return err
			}

			yes, err := cmd.Flags().GetBool("yes")
			if err != nil {
				return err
			}

			base, err := baseFromContext(cmd)
			if err != nil {
				return err
			}

			var p prompter.Prompter
			if yes {
				p = prompter.Auto{Answer: true}
			}

			_, err = download.New(base, p).Execute(cmd.Context(), bundleID, download.Options{
				Slot:    slot,
				Dir:     dir,
				Yes:     yes,
				Sources: extra,
			})
			return err
		},
	}

	addSourceFlag(cmd)
	addSlotFlag(cmd)
	cmd.Flags().StringP("output", "o", "", "Directory to save the package in")
	cmd.Flags().BoolP("yes", "y", false, "Overwrite existing files without asking")
	return cmd
}
