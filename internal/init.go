package internal

import (
	"os"

	"github.com/MrSnakeDoc/altcat/internal/config"
	"github.com/MrSnakeDoc/altcat/internal/initiator"
	"github.com/MrSnakeDoc/altcat/internal/middleware"
	"github.com/MrSnakeDoc/altcat/internal/prompter"

	"github.com/spf13/cobra"
)

func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the altcat configuration",
		Long: `Initialize altcat configuration.
This command will:
- Create ~/.config/altcat/config.yml (or $ALTCAT_CONFIG_DIR/config.yml)
- Register the default catalog source
- Set the download directory (asked with --interactive, ~/Downloads otherwise)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := middleware.Get[*config.Config](cmd, middleware.CtxKeyConfig)
			if err != nil {
				return err
			}

			force, err := cmd.Flags().GetBool("force")
			if err != nil {
				return err
			}

			interactive, err := cmd.Flags().GetBool("interactive")
			if err != nil {
				return err
			}

			var p prompter.Prompter
			if interactive {
				p = prompter.New(os.Stdin, cmd.OutOrStdout())
			}

			return initiator.New(cfg, p).Execute(force)
		},
	}

	cmd.Flags().BoolP("force", "f", false, "Overwrite an existing configuration")
	cmd.Flags().BoolP("interactive", "i", false, "Ask for settings instead of using defaults")
	return cmd
}
