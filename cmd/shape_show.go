package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gowbeam/internal/catalog"
	"github.com/alexiusacademia/gowbeam/internal/diagram"
	"github.com/alexiusacademia/gowbeam/internal/report"
	"github.com/alexiusacademia/gowbeam/internal/section"
)

var (
	shapeShowDiagram    bool
	shapeShowExportFile string
	shapeShowFormat     string
)

var shapeShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Show catalog values and derived properties of a shape",
	Long: `Show every catalog column of the named shape followed by the
section properties derived from d, bf, tf and tw.

NAME must match the catalog exactly (for example W12X26).
Values taken from the catalog are marked with an asterisk.

Examples:
  gowbeam shape show W12X26
  gowbeam shape show W12X26 --diagram
  gowbeam shape show W12X26 -o w12x26.svg
  gowbeam shape show W12X26 --format yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runShapeShow,
}

func init() {
	shapeCmd.AddCommand(shapeShowCmd)

	shapeShowCmd.Flags().StringVar(&shapeShowFormat, "format", formatText, "Output format (text, json, yaml)")

	// Diagram options
	shapeShowCmd.Flags().BoolVar(&shapeShowDiagram, "diagram", false, "Show ASCII section sketch")
	shapeShowCmd.Flags().StringVarP(&shapeShowExportFile, "output", "o", "", "Export section drawing to file (png, svg, pdf)")
}

// shapeOutput is the structured form of 'shape show'
type shapeOutput struct {
	Name       string         `json:"name" yaml:"name"`
	Catalog    []report.Row   `json:"catalog" yaml:"catalog"`
	Properties []report.Field `json:"properties,omitempty" yaml:"properties,omitempty"`
	Error      string         `json:"error,omitempty" yaml:"error,omitempty"`
}

func runShapeShow(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog(cmd.Context())
	if err != nil {
		return err
	}

	shape, err := cat.Select(args[0])
	if err != nil {
		return err
	}

	props, derr := section.Derive(shape)
	if derr != nil {
		logger.WithField("shape", shape.Name).WithError(derr).Debug("section properties unavailable")
	}

	out := cmd.OutOrStdout()

	res := shapeOutput{Name: shape.Name, Catalog: report.ShapeTable(cat.Columns(), shape)}
	if derr != nil {
		res.Error = derr.Error()
	} else {
		res.Properties = report.Properties(props)
	}
	if done, err := writeStructured(out, shapeShowFormat, res); done || err != nil {
		return err
	}

	printShapeReport(out, res)

	if props == nil {
		return nil
	}

	data := shapeDiagramData(shape.Name, props)
	if shapeShowDiagram {
		fmt.Fprintln(out, diagram.DrawASCIIShape(data))
	}

	if shapeShowExportFile != "" {
		if err := diagram.ExportShapeDiagram(data, shapeShowExportFile); err != nil {
			return fmt.Errorf("exporting diagram: %w", err)
		}
		fmt.Fprintf(out, "Diagram exported to: %s\n", shapeShowExportFile)
	}
	return nil
}

func printShapeReport(out io.Writer, res shapeOutput) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintf(out, "     W-SHAPE %s\n", res.Name)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)

	fmt.Fprintln(out, "CATALOG VALUES:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, row := range res.Catalog {
		fmt.Fprintf(w, "  %s:\t%s\n", row.Column, row.Text)
	}
	w.Flush()
	fmt.Fprintln(out)

	fmt.Fprintln(out, "SECTION PROPERTIES:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	if res.Error != "" {
		fmt.Fprintf(out, "  ⚠ %s\n", res.Error)
		fmt.Fprintln(out)
		return
	}
	printFields(out, res.Properties)
	fmt.Fprintln(out, "  * taken from the catalog")
	fmt.Fprintln(out)
}

// printFields writes labelled values as an aligned table
func printFields(out io.Writer, fields []report.Field) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, f := range fields {
		mark := ""
		if f.Tabulated {
			mark = "*"
		}
		fmt.Fprintf(w, "  %s (%s):\t%s %s\t%s\n", f.Label, f.Symbol, f.Text, f.Unit, mark)
	}
	w.Flush()
}

func shapeDiagramData(name string, p *section.Properties) diagram.ShapeDiagramData {
	return diagram.ShapeDiagramData{
		Name:     name,
		D:        p.D,
		Bf:       p.Bf,
		Tf:       p.Tf,
		Tw:       p.Tw,
		Ho:       p.Ho,
		Vertices: section.Outline(p.D, p.Bf, p.Tf, p.Tw),
	}
}

// selectShape loads the catalog and picks name from it
func selectShape(cmd *cobra.Command, name string) (*catalog.Shape, error) {
	cat, err := loadCatalog(cmd.Context())
	if err != nil {
		return nil, err
	}
	return cat.Select(name)
}
