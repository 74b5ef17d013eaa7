package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/trogers1052/lumber-futures/internal/api"
	"github.com/trogers1052/lumber-futures/internal/chart"
	"github.com/trogers1052/lumber-futures/internal/config"
	"github.com/trogers1052/lumber-futures/internal/database"
	"github.com/trogers1052/lumber-futures/internal/importer"
	"github.com/trogers1052/lumber-futures/internal/logger"
	"github.com/trogers1052/lumber-futures/internal/metrics"
	"github.com/trogers1052/lumber-futures/internal/scheduler"
)

func main() {
	defaultPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultPath = v
	}
	cfgPath := flag.String("config", defaultPath, "path to the YAML config file")
	flag.Parse()

	// Load config
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *cfgPath).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}

	logg, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatal().Err(err).Msg("init logger")
	}
	logg.Info().Str("config", *cfgPath).Msg("lumber futures viewer starting")

	metrics.Register(prometheus.DefaultRegisterer)

	// Store
	db, err := database.New(cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		logg.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("open store")
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := db.EnsureSchema(ctx); err != nil {
		logg.Fatal().Err(err).Msg("ensure schema")
	}

	// Initial import
	imp := importer.NewImporter(db, cfg.Import.Sheet, logg)
	if _, err := imp.Import(ctx, cfg.Import.SourcePath); err != nil {
		logg.Fatal().Err(err).Str("source", cfg.Import.SourcePath).Msg("import workbook")
	}
	logStoreSize(ctx, db, logg)

	// Optional refresh
	if cfg.Import.RefreshCron != "" {
		sched := scheduler.NewScheduler(ctx, imp, cfg.Import.SourcePath, logg)
		if err := sched.Register(cfg.Import.RefreshCron); err != nil {
			logg.Fatal().Err(err).Msg("register refresh")
		}
		sched.Start()
		defer sched.Stop()
	}

	handler, err := api.NewHandler(db, chartOptions(cfg.Chart), logg)
	if err != nil {
		logg.Fatal().Err(err).Msg("init handlers")
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      api.SetupRoutes(handler, logg),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logg.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		logg.Error().Err(err).Msg("http server failed")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Error().Err(err).Msg("http server shutdown")
	}
	cancel()
	logg.Info().Msg("stopped")
}

type rowCounter interface {
	CountPriceRows(ctx context.Context) (int, error)
}

// logStoreSize reports how many rows the store holds after the import. A
// failed count is not fatal.
func logStoreSize(ctx context.Context, store rowCounter, logg zerolog.Logger) {
	n, err := store.CountPriceRows(ctx)
	if err != nil {
		logg.Warn().Err(err).Msg("count stored rows")
		return
	}
	logg.Info().Int("stored_rows", n).Msg("store ready")
}

func chartOptions(c config.ChartConfig) chart.Options {
	return chart.Options{
		Autorange: c.Autorange,
		YRange:    [2]float64{c.YMin, c.YMax},
		XRange:    [2]string{c.XStart, c.XEnd},
		Width:     c.Width,
		Height:    c.Height,
	}
}
