package internal

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/MrSnakeDoc/altcat/internal/logger"

	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X github.com/MrSnakeDoc/altcat/internal.Version=...".
var Version = "dev"

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "altcat",
		Short: "Browse AltStore-style app catalogs from the terminal",
		Long: `altcat aggregates one or more remote app catalogs ("sources") and lets you
list, search and inspect their apps, download packages with live progress,
or hand a download link over to the host system.`,
		Example: `altcat init
altcat add https://example.com/repo.json
altcat list --icons
altcat download com.example.app -o ~/ipa`,
		PersistentPreRun: func(*cobra.Command, []string) {
			logger.ConfigureLoggerFromFlags()
		},
		Run: func(cmd *cobra.Command, _ []string) {
			versionFlag, _ := cmd.Flags().GetBool("version")
			if versionFlag {
				fmt.Printf("Version: %s\n", Version)
				return
			}
			_ = cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.Flags().BoolP("version", "v", false, "Print version information")
	cmd.PersistentFlags().CountVarP(&logger.FlagVerboseCount, "verbose", "V", "Verbose output (debug logs)")
	cmd.PersistentFlags().BoolVarP(&logger.FlagQuiet, "quiet", "q", false, "Only print errors")
	cmd.PersistentFlags().BoolVarP(&logger.FlagSilent, "silent", "s", false, "Print nothing but command output")
	cmd.PersistentFlags().BoolVar(&logger.FlagJSON, "json-logs", false, "Emit logs as JSON")

	RegisterSubCommands(cmd)

	return cmd
}

func Execute() error {
	root := NewRootCmd()

	if os.Getenv("COMP_LINE") != "" ||
		(len(os.Args) > 1 && strings.HasPrefix(os.Args[1], "__complete")) {
		return root.Execute()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		logger.Debug("Failed to execute root command: %v", err)
		return err
	}
	return nil
}
