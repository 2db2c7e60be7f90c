package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gowbeam/internal/aisc"
)

var gradesCmd = &cobra.Command{
	Use:   "grades",
	Short: "List the standard steel grades",
	Long: `List the steel grades available for the Lr calculation with
their minimum yield stress Fy.

The default grade is marked with an asterisk and can be changed
in the config file ([design] grade).`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		def := cfg.Grade()

		fmt.Fprintln(out)
		fmt.Fprintln(out, "STEEL GRADES:")
		fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  Grade\tFy (ksi)\t\n")
		fmt.Fprintf(w, "  ─────\t────────\t\n")
		for _, g := range aisc.Grades {
			mark := ""
			if g.Name == def.Name {
				mark = "*"
			}
			fmt.Fprintf(w, "  %s\t%.0f\t%s\n", g.Name, g.Fy, mark)
		}
		w.Flush()
		fmt.Fprintln(out)
	},
}

func init() {
	rootCmd.AddCommand(gradesCmd)
}
