package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var shapeSearchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Find shapes by partial name",
	Long: `List up to 5 shape names containing QUERY, ignoring case,
in catalog order.

Examples:
  gowbeam shape search w12
  gowbeam shape search x26`,
	Args: cobra.ExactArgs(1),
	RunE: runShapeSearch,
}

func init() {
	shapeCmd.AddCommand(shapeSearchCmd)
}

func runShapeSearch(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	names := cat.Suggest(args[0])
	if len(names) == 0 {
		fmt.Fprintf(out, "No shapes match %q\n", args[0])
		return nil
	}
	for _, name := range names {
		fmt.Fprintf(out, "  %s\n", name)
	}
	return nil
}
