package internal

import (
	"github.com/MrSnakeDoc/altcat/internal/errs"
	"github.com/MrSnakeDoc/altcat/internal/middleware"
	"github.com/MrSnakeDoc/altcat/internal/search"

	"github.com/spf13/cobra"
)

func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search apps across all sources",
		Long: `Fetches every source and matches the query against app names, bundle
identifiers and developer names. Without a query every app is listed.
For example:
  altcat search delta --exact
  altcat search '^com\.rileytestut' --regex --json
  altcat search --limit 20`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := baseFromContext(cmd)
			if err != nil {
				return err
			}

			exact, err := cmd.Flags().GetBool("exact")
			if err != nil {
				return err
			}

			regex, err := cmd.Flags().GetBool("regex")
			if err != nil {
				return err
			}

			jsonOut, err := cmd.Flags().GetBool("json")
			if err != nil {
				return err
			}

			limit, err := cmd.Flags().GetInt("limit")
			if err != nil {
				return err
			}

			extra, err := cmd.Flags().GetStringArray("source")
			if err != nil {
				return err
			}

			if exact && regex {
				return middleware.FlagComboError(errs.ExactWithRegex)
			}

			query := ""
			if len(args) > 0 {
				query = args[0]
			}

			s := search.New(base)
			s.Out = cmd.OutOrStdout()
			return s.Execute(cmd.Context(), extra,
				search.SearchOptions{Query: query, Exact: exact, Regex: regex},
				search.OutputOptions{JSON: jsonOut, Limit: limit})
		},
	}

	addSourceFlag(cmd)
	cmd.Flags().BoolP("exact", "e", false, "Match name or bundle identifier exactly")
	cmd.Flags().BoolP("regex", "r", false, "Treat the query as a regular expression")
	cmd.Flags().Bool("json", false, "Output results in JSON format")
	cmd.Flags().IntP("limit", "l", 0, "Limit the number of results (0 for no limit)")
	return cmd
}
