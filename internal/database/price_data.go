package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/trogers1052/lumber-futures/internal/models"
)

// priceColumns lists every stored column in table order.
var priceColumns = []string{"date", "open", "high", "low", "close", "adj_close", "volume"}

// summaryColumns are the numeric columns reported by ComputeExtremes, in
// SeriesSummary order.
var summaryColumns = priceColumns[1:]

// validRowPredicate selects the rows shown to users: every column present
// and no '-' anywhere in the text form of open. The minus-sign rule screens
// out negative sentinels and dash placeholders; it also rejects any value
// whose text form uses a negative exponent.
var validRowPredicate = buildValidRowPredicate()

func buildValidRowPredicate() string {
	parts := make([]string, 0, len(priceColumns)+1)
	for _, c := range priceColumns {
		parts = append(parts, c+" IS NOT NULL")
	}
	parts = append(parts, "CAST(open AS TEXT) NOT LIKE '%-%'")
	return strings.Join(parts, " AND ")
}

const upsertPriceQuery = `
	INSERT INTO lumber_futures (date, open, high, low, close, adj_close, volume)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (date) DO UPDATE SET
		open = excluded.open,
		high = excluded.high,
		low = excluded.low,
		close = excluded.close,
		adj_close = excluded.adj_close,
		volume = excluded.volume
`

// priceRow mirrors one lumber_futures row for scanning.
type priceRow struct {
	Date     string          `db:"date"`
	Open     decimal.Decimal `db:"open"`
	High     decimal.Decimal `db:"high"`
	Low      decimal.Decimal `db:"low"`
	Close    decimal.Decimal `db:"close"`
	AdjClose decimal.Decimal `db:"adj_close"`
	Volume   int64           `db:"volume"`
}

// UpsertPriceRows inserts or replaces rows keyed by date in a single
// transaction and returns the number written.
func (db *DB) UpsertPriceRows(ctx context.Context, rows []models.SheetRow) (int, error) {
	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, tx.Rebind(upsertPriceQuery))
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		date := r.Date.Format(models.DateLayout)
		_, err := stmt.ExecContext(ctx, date, r.Open, r.High, r.Low, r.Close, r.AdjustedClose, r.Volume)
		if err != nil {
			return 0, fmt.Errorf("failed to upsert price row for %s: %w", date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return len(rows), nil
}

// GetAllPriceRecords returns every valid row, deduplicated and ordered by
// date ascending. An empty store yields an empty slice.
func (db *DB) GetAllPriceRecords(ctx context.Context) ([]models.PriceRecord, error) {
	query := `
		SELECT DISTINCT ` + strings.Join(priceColumns, ", ") + `
		FROM lumber_futures
		WHERE ` + validRowPredicate + `
		ORDER BY date ASC
	`
	var rows []priceRow
	if err := db.conn.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to get price records: %w", err)
	}

	records := make([]models.PriceRecord, 0, len(rows))
	for _, r := range rows {
		date, err := time.Parse(models.DateLayout, r.Date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stored date %q: %w", r.Date, err)
		}
		records = append(records, models.PriceRecord{
			Date:          date,
			Open:          r.Open,
			High:          r.High,
			Low:           r.Low,
			Close:         r.Close,
			AdjustedClose: r.AdjClose,
			Volume:        r.Volume,
		})
	}
	return records, nil
}

// ComputeExtremes returns the max and min of each numeric column over the
// valid rows in one query. Every value is invalid when no rows qualify.
func (db *DB) ComputeExtremes(ctx context.Context) (models.SeriesSummary, error) {
	aggregates := make([]string, 0, 2*len(summaryColumns))
	for _, c := range summaryColumns {
		aggregates = append(aggregates, fmt.Sprintf("MAX(%s)", c), fmt.Sprintf("MIN(%s)", c))
	}
	query := `
		SELECT ` + strings.Join(aggregates, ", ") + `
		FROM lumber_futures
		WHERE ` + validRowPredicate

	var s models.SeriesSummary
	dest := make([]interface{}, 0, len(aggregates))
	for _, e := range []*models.Extreme{&s.Open, &s.High, &s.Low, &s.Close, &s.AdjustedClose, &s.Volume} {
		dest = append(dest, &e.Max, &e.Min)
	}

	if err := db.conn.QueryRowxContext(ctx, query).Scan(dest...); err != nil {
		return models.SeriesSummary{}, fmt.Errorf("failed to compute extremes: %w", err)
	}
	return s, nil
}

// CountPriceRows returns the number of stored rows, valid or not
func (db *DB) CountPriceRows(ctx context.Context) (int, error) {
	var n int
	if err := db.conn.GetContext(ctx, &n, `SELECT COUNT(*) FROM lumber_futures`); err != nil {
		return 0, fmt.Errorf("failed to count price rows: %w", err)
	}
	return n, nil
}
