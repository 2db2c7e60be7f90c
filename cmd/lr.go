package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gowbeam/internal/aisc"
	"github.com/alexiusacademia/gowbeam/internal/buckling"
	"github.com/alexiusacademia/gowbeam/internal/diagram"
	"github.com/alexiusacademia/gowbeam/internal/report"
	"github.com/alexiusacademia/gowbeam/internal/section"
)

var (
	lrGrade     string
	lrFy        string
	lrModulus   float64
	lrShowTerms bool
	lrFormat    string
)

var lrCmd = &cobra.Command{
	Use:   "lr NAME",
	Short: "Compute the limiting unbraced length Lr of a W-shape",
	Long: `Compute Lr, the limiting laterally unbraced length for the limit
state of inelastic lateral-torsional buckling (AISC 360 Eq. F2-6):

  Lr = 1.95 rts (E / 0.7Fy) √(J / Sx·ho) √(1 + √(1 + 6.76 (0.7Fy·Sx·ho / E·J)²))

Fy comes from the selected grade unless --fy is given. A custom Fy
always wins over the grade; an empty or invalid value is an error.

Examples:
  gowbeam lr W12X26
  gowbeam lr W12X26 --grade A36
  gowbeam lr W12X26 --fy 65 --terms
  gowbeam lr W12X26 --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runLr,
}

func init() {
	rootCmd.AddCommand(lrCmd)

	// Material
	lrCmd.Flags().StringVarP(&lrGrade, "grade", "g", "", "Steel grade (default from config, A992)")
	lrCmd.Flags().StringVar(&lrFy, "fy", "", "Custom yield stress Fy in ksi, overrides --grade")
	lrCmd.Flags().Float64Var(&lrModulus, "e", aisc.E, "Modulus of elasticity E in ksi")

	// Output
	lrCmd.Flags().BoolVar(&lrShowTerms, "terms", false, "Show the intermediate terms of the equation")
	lrCmd.Flags().StringVar(&lrFormat, "format", formatText, "Output format (text, json, yaml)")
}

// lrOutput is the structured form of 'lr'
type lrOutput struct {
	Name                string `json:"name" yaml:"name"`
	Grade               string `json:"grade" yaml:"grade"`
	CustomFy            bool   `json:"custom_fy" yaml:"custom_fy"`
	report.Presentation `yaml:",inline"`
}

func runLr(cmd *cobra.Command, args []string) error {
	grade := cfg.Grade()
	if lrGrade != "" {
		g, err := aisc.LookupGrade(lrGrade)
		if err != nil {
			return err
		}
		grade = g
	}

	modulus := cfg.Design.Modulus
	if cmd.Flags().Changed("e") {
		modulus = lrModulus
	}

	yield := aisc.Yield{Grade: grade, Custom: cmd.Flags().Changed("fy"), CustomFy: lrFy}
	fy, err := yield.Effective()
	if err != nil {
		return err
	}

	shape, err := selectShape(cmd, args[0])
	if err != nil {
		return err
	}

	props, err := section.Derive(shape)
	if err != nil {
		return err
	}

	result, err := buckling.ComputeLr(props, fy, modulus)
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"component": "buckling",
		"shape":     shape.Name,
		"fy":        fy,
		"lr":        result.Lr,
	}).Debug("computed Lr")

	res := lrOutput{
		Name:         shape.Name,
		Grade:        grade.Name,
		CustomFy:     yield.Custom,
		Presentation: report.Format(result),
	}

	out := cmd.OutOrStdout()
	if done, err := writeStructured(out, lrFormat, res); done || err != nil {
		return err
	}

	printLrReport(out, res, lrShowTerms)
	return nil
}

func printLrReport(out io.Writer, res lrOutput, showTerms bool) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out, "     LATERAL-TORSIONAL BUCKLING Lr - AISC 360")
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Shape: %s\n", res.Name)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "MATERIAL PROPERTIES:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	source := res.Grade
	if res.CustomFy {
		source = "custom"
	}
	fmt.Fprintf(w, "  Fy:\t%s %s\t(%s)\n", res.Fy.Text, res.Fy.Unit, source)
	fmt.Fprintf(w, "  E:\t%s %s\t\n", res.E.Text, res.E.Unit)
	w.Flush()
	fmt.Fprintln(out)

	fmt.Fprintln(out, "SECTION PROPERTIES:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	printFields(out, res.Properties)
	fmt.Fprintln(out)

	if showTerms {
		fmt.Fprintln(out, "EQUATION TERMS:")
		fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for i, t := range res.Terms {
			fmt.Fprintf(w, "  Term %d:\t%s\t%s %s\n", i+1, t.Label, t.Text, t.Unit)
		}
		w.Flush()
		fmt.Fprintln(out)
	}

	fmt.Fprint(out, diagram.DrawSummaryBox("LIMITING UNBRACED LENGTH", []string{
		fmt.Sprintf("Lr = %s", res.LrInText),
		fmt.Sprintf("Lr = %s", res.LrFtText),
	}))
	fmt.Fprintln(out)
}
