package internal

import (
	"github.com/MrSnakeDoc/altcat/internal/middleware"
	"github.com/spf13/cobra"
)

var defaultCommands = []middleware.CommandFactory{
	middleware.UseMiddlewareChain(middleware.LoadConfig)(NewInitCmd),
	middleware.UseMiddlewareChain(middleware.RequireConfig)(NewAddCmd),
	middleware.UseMiddlewareChain(middleware.RequireConfig)(NewSourcesCmd),
	middleware.UseMiddlewareChain(middleware.LoadConfig)(NewListCmd),
	middleware.UseMiddlewareChain(middleware.LoadConfig)(NewSearchCmd),
	middleware.UseMiddlewareChain(middleware.LoadConfig)(NewShowCmd),
	middleware.UseMiddlewareChain(middleware.LoadConfig)(NewDownloadCmd),
	middleware.UseMiddlewareChain(middleware.LoadConfig)(NewOpenCmd),
}

func RegisterSubCommands(cmd *cobra.Command) {
	for _, factory := range defaultCommands {
		cmd.AddCommand(factory())
	}
}
