package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/trogers1052/lumber-futures/internal/metrics"
	"github.com/trogers1052/lumber-futures/internal/models"
)

// PriceRepository defines the store operations the importer needs
type PriceRepository interface {
	UpsertPriceRows(ctx context.Context, rows []models.SheetRow) (int, error)
}

// Result summarises one import run
type Result struct {
	Source   string
	Sheet    string
	Rows     int
	Skipped  int
	Duration time.Duration
}

// Importer loads workbook rows into the price store
type Importer struct {
	repo   PriceRepository
	sheet  string
	logger zerolog.Logger
}

// NewImporter creates an importer. An empty sheet name selects the first
// sheet of each workbook.
func NewImporter(repo PriceRepository, sheet string, logger zerolog.Logger) *Importer {
	return &Importer{
		repo:   repo,
		sheet:  sheet,
		logger: logger.With().Str("component", "importer").Logger(),
	}
}

// Import reads the workbook at path and upserts every data row keyed by date
func (i *Importer) Import(ctx context.Context, path string) (Result, error) {
	start := time.Now()

	sheet, err := ReadWorkbook(path, i.sheet)
	if err != nil {
		metrics.ImportRuns.WithLabelValues("error").Inc()
		return Result{}, err
	}

	for _, line := range sheet.SkippedLines {
		i.logger.Warn().Str("source", path).Int("line", line).Msg("skipping row without a usable date")
	}

	n, err := i.repo.UpsertPriceRows(ctx, sheet.Rows)
	if err != nil {
		metrics.ImportRuns.WithLabelValues("error").Inc()
		return Result{}, fmt.Errorf("failed to store rows from %s: %w", path, err)
	}

	res := Result{
		Source:   path,
		Sheet:    sheet.Name,
		Rows:     n,
		Skipped:  len(sheet.SkippedLines),
		Duration: time.Since(start),
	}

	metrics.ImportRuns.WithLabelValues("ok").Inc()
	metrics.ImportedRows.Add(float64(n))
	metrics.LastImport.SetToCurrentTime()

	i.logger.Info().
		Str("source", res.Source).
		Str("sheet", res.Sheet).
		Int("rows", res.Rows).
		Int("skipped", res.Skipped).
		Dur("duration", res.Duration).
		Msg("import complete")
	return res, nil
}
