package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gowbeam/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gowbeam",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "gowbeam v%s\n", version.Version)
		fmt.Fprintln(out, "Steel W-Shape Lateral-Torsional Buckling Tool")
		fmt.Fprintln(out, "Based on AISC 360 (Specification for Structural Steel Buildings)")
		if version.GitCommit != "unknown" {
			fmt.Fprintf(out, "Commit %s, built %s\n", version.GitCommit, version.BuildTime)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
