package internal

import (
	"github.com/MrSnakeDoc/altcat/internal/config"
	"github.com/MrSnakeDoc/altcat/internal/core"
	"github.com/MrSnakeDoc/altcat/internal/errs"
	"github.com/MrSnakeDoc/altcat/internal/middleware"
	"github.com/spf13/cobra"
)

func addSourceFlag(cmd *cobra.Command) {
	cmd.Flags().StringArray("source", nil, "Extra catalog URI for this run (repeatable)")
}

func addSlotFlag(cmd *cobra.Command) {
	cmd.Flags().Int("slot", -1, "Source index to pick the app from (see \"altcat sources\")")
}

// targetArgs validates the single bundle identifier argument and the
// --slot/--source flags shared by entry commands.
func targetArgs(cmd *cobra.Command, args []string) (bundleID string, slot int, extra []string, err error) {
	if len(args) == 0 {
		return "", 0, nil, middleware.FlagComboError(errs.MissingBundleID, cmd.Name())
	}

	if slot, err = cmd.Flags().GetInt("slot"); err != nil {
		return "", 0, nil, err
	}
	if slot < -1 {
		return "", 0, nil, middleware.FlagComboError(errs.NegativeSlotIndex)
	}

	if extra, err = cmd.Flags().GetStringArray("source"); err != nil {
		return "", 0, nil, err
	}
	return args[0], slot, extra, nil
}

func baseFromContext(cmd *cobra.Command) (*core.Base, error) {
	cfg, err := middleware.Get[*config.Config](cmd, middleware.CtxKeyConfig)
	if err != nil {
		return nil, err
	}
	return core.NewBase(cfg, nil), nil
}
