package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var shapeCmd = &cobra.Command{
	Use:   "shape",
	Short: "Search and inspect W-shapes",
	Long: `Search the W-shape catalog and inspect individual shapes.

Subcommands:
  search  - List up to 5 shapes whose name contains the query
  show    - Show catalog values and derived properties of a shape`,
}

func init() {
	rootCmd.AddCommand(shapeCmd)
}

// Output formats accepted by --format
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// writeStructured encodes v when format is json or yaml. It reports false for
// text so the caller prints its own report.
func writeStructured(w io.Writer, format string, v interface{}) (bool, error) {
	switch format {
	case "", formatText:
		return false, nil
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		return true, enc.Close()
	}
	return false, fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
}
