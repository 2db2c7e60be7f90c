package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/alexiusacademia/gowbeam/internal/catalog"
	"github.com/alexiusacademia/gowbeam/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve shape lookup and Lr over HTTP",
	Long: `Start a JSON API for the shape catalog and the Lr calculation.

The catalog is loaded once in the background. Until it is loaded,
and for good if loading fails, shape endpoints answer 503.

Endpoints:
  GET /healthz
  GET /grades
  GET /shapes/suggest?q=QUERY
  GET /shapes/{name}
  GET /shapes/{name}/lr?grade=GRADE&fy=FY

Examples:
  gowbeam serve
  gowbeam serve --addr :9090 --catalog shapes.csv`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := cfg.Server.Addr
	if cmd.Flags().Changed("addr") {
		addr = serveAddr
	}

	log := logger.WithField("component", "server")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := &catalog.Store{}
	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(log, store, cfg.Grade(), cfg.Design.Modulus).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		loadLog := logger.WithFields(logrus.Fields{"component": "catalog", "source": sourceName(cfg.Catalog.Source)})

		loadCtx, cancel := context.WithTimeout(ctx, cfg.Catalog.LoadTimeout.Duration)
		defer cancel()

		// A failed load leaves the server up, answering 503
		start := time.Now()
		if err := store.Load(loadCtx, cfg.Catalog.Source); err != nil {
			loadLog.WithError(err).Error("catalog load failed")
			return nil
		}
		cat, _ := store.Catalog()
		loadLog.WithFields(logrus.Fields{"shapes": cat.Len(), "elapsed": time.Since(start)}).Info("catalog loaded")
		return nil
	})

	g.Go(func() error {
		log.WithField("addr", addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
