package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gowbeam/internal/catalog"
	"github.com/alexiusacademia/gowbeam/internal/config"
	"github.com/alexiusacademia/gowbeam/internal/version"
)

var (
	cfgFile       string
	catalogSource string
	logLevel      string

	cfg    = config.Default()
	logger = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "gowbeam",
	Short: "Steel W-Shape Lateral-Torsional Buckling Tool",
	Long: `gowbeam - Go Steel W-Shape Lateral-Torsional Buckling Calculator

A CLI tool for looking up wide-flange (W) steel shapes and computing
Lr, the limiting unbraced length for inelastic lateral-torsional
buckling, per AISC 360 Eq. F2-6.

This tool helps structural engineers:
  - Search the W-shape catalog by partial name
  - Derive section properties from d, bf, tf and tw
  - Compute Lr for a standard grade or a custom Fy
  - Serve the same calculations over HTTP

Dimensions are in inches, stresses in ksi.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initConfig,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintf(out, "  ║   gowbeam v%-47s║\n", version.Version)
		fmt.Fprintln(out, "  ║   Go Steel W-Shape Lateral-Torsional Buckling Calculator  ║")
		fmt.Fprintln(out, "  ║   Alexius S. Academia ©  2025                             ║")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintln(out, "  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  A CLI tool for wide-flange steel shapes and the limiting")
		fmt.Fprintln(out, "  unbraced length Lr per AISC 360.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Features:")
		fmt.Fprintln(out, "    • Case-insensitive shape search")
		fmt.Fprintln(out, "    • Section properties derived from primary dimensions")
		fmt.Fprintln(out, "    • Lr for A36, A572 Gr. 50, A992, A913 Gr. 65 or a custom Fy")
		fmt.Fprintln(out, "    • JSON API server")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Use 'gowbeam --help' to see available commands.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ─────────────────────────────────────────────────────────────")
		fmt.Fprintf(out, "  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Fprintln(out)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to a TOML config file")
	rootCmd.PersistentFlags().StringVar(&catalogSource, "catalog", "", "Shape catalog CSV file or http(s) URL (default: built-in catalog)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

// initConfig layers flags over the config file over the defaults
func initConfig(cmd *cobra.Command, args []string) error {
	c, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("catalog") {
		c.Catalog.Source = catalogSource
	}
	if flags.Changed("log-level") {
		c.Log.Level = logLevel
	}

	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}

	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg = c
	return nil
}

// loadCatalog reads the configured catalog, bounded by the load timeout
func loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	log := logger.WithFields(logrus.Fields{"component": "catalog", "source": sourceName(cfg.Catalog.Source)})

	ctx, cancel := context.WithTimeout(ctx, cfg.Catalog.LoadTimeout.Duration)
	defer cancel()

	start := time.Now()
	cat, err := catalog.LoadContext(ctx, cfg.Catalog.Source)
	if err != nil {
		log.WithError(err).Debug("catalog load failed")
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	log.WithFields(logrus.Fields{"shapes": cat.Len(), "elapsed": time.Since(start)}).Debug("catalog loaded")
	return cat, nil
}

func sourceName(source string) string {
	if source == "" {
		return "built-in"
	}
	return source
}
