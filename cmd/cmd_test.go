package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/alexiusacademia/gowbeam/internal/aisc"
	"github.com/alexiusacademia/gowbeam/internal/catalog"
)

// resetFlags clears flag values left over from a previous run of rootCmd
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "gowbeam v")
}

func TestGrades(t *testing.T) {
	out, err := execute(t, "grades")
	require.NoError(t, err)
	for _, g := range aisc.Grades {
		assert.Contains(t, out, g.Name)
	}
	assert.Contains(t, out, "*")
}

func TestShapeSearch(t *testing.T) {
	out, err := execute(t, "shape", "search", "w12x2")
	require.NoError(t, err)
	assert.Contains(t, out, "W12X26")

	out, err = execute(t, "shape", "search", "zzz")
	require.NoError(t, err)
	assert.Contains(t, out, "No shapes match")
}

func TestShapeShow(t *testing.T) {
	out, err := execute(t, "shape", "show", "W12X26", "--diagram")
	require.NoError(t, err)
	assert.Contains(t, out, "W-SHAPE W12X26")
	assert.Contains(t, out, "CATALOG VALUES:")
	assert.Contains(t, out, "bf = 6.49 in")

	var res shapeOutput
	out, err = execute(t, "shape", "show", "W12X26", "--format", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "W12X26", res.Name)
	assert.Empty(t, res.Error)

	var ix bool
	for _, f := range res.Properties {
		if f.Symbol == catalog.SymIx {
			ix = true
			assert.True(t, f.Tabulated)
			assert.Equal(t, "204.00", f.Text)
		}
	}
	assert.True(t, ix)
}

func TestShapeShowExport(t *testing.T) {
	file := filepath.Join(t.TempDir(), "w12x26.svg")
	out, err := execute(t, "shape", "show", "W12X26", "-o", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Diagram exported to")
	assert.FileExists(t, file)
}

func TestShapeShowNotFound(t *testing.T) {
	_, err := execute(t, "shape", "show", "w12x26")
	assert.True(t, catalog.IsNotFound(err))
}

func TestLr(t *testing.T) {
	out, err := execute(t, "lr", "W12X26", "--terms")
	require.NoError(t, err)
	assert.Contains(t, out, "Lr = 26.12 in")
	assert.Contains(t, out, "Lr = 2.18 ft")
	assert.Contains(t, out, "Term 5:")
	assert.Contains(t, out, "(A992)")
}

func TestLrStructured(t *testing.T) {
	var res lrOutput
	out, err := execute(t, "lr", "W12X26", "--fy", "65", "--format", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.CustomFy)
	assert.Equal(t, 22.32, res.LrIn)
	assert.Equal(t, 65.0, res.Fy.Value)

	var doc map[string]interface{}
	out, err = execute(t, "lr", "W12X26", "--grade", "A36", "--format", "yaml")
	require.NoError(t, err)
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "W12X26", doc["name"])
	assert.Equal(t, "A36", doc["grade"])
	assert.Equal(t, 32.13, doc["lr_in"])
}

func TestLrErrors(t *testing.T) {
	var yieldErr *aisc.InvalidYieldStrengthError
	var gradeErr *aisc.UnknownGradeError

	_, err := execute(t, "lr", "W12X26", "--fy=")
	assert.True(t, errors.As(err, &yieldErr), "empty fy: %v", err)

	_, err = execute(t, "lr", "W12X26", "--fy", "0")
	assert.True(t, errors.As(err, &yieldErr), "zero fy: %v", err)

	_, err = execute(t, "lr", "W12X26", "--grade", "A500")
	assert.True(t, errors.As(err, &gradeErr), "unknown grade: %v", err)

	_, err = execute(t, "lr", "W12X26", "--format", "xml")
	assert.Error(t, err)
}

func TestConfigAndCatalogFlags(t *testing.T) {
	dir := t.TempDir()

	cfgPath := filepath.Join(dir, "gowbeam.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[design]\ngrade = \"A36\"\n"), 0o644))

	csvPath := filepath.Join(dir, "shapes.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("Shape,d,bf,tf,tw\nW12X26,12.2,6.49,0.38,0.23\n"), 0o644))

	var res lrOutput
	out, err := execute(t, "lr", "W12X26", "--config", cfgPath, "--catalog", csvPath, "--format", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "A36", res.Grade)
	assert.Equal(t, 36.0, res.Fy.Value)

	// dimensions only, so Ix, Sx and Iy are computed
	for _, f := range res.Properties {
		assert.False(t, f.Tabulated, f.Symbol)
	}

	_, err = execute(t, "shape", "search", "w", "--config", filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
