package chart

import (
	"github.com/shopspring/decimal"

	"github.com/trogers1052/lumber-futures/internal/models"
)

// Summarize computes per-column extremes from records already fetched with
// the store's valid-row filter, matching database.ComputeExtremes without a
// second query.
func Summarize(records []models.PriceRecord) models.SeriesSummary {
	var s models.SeriesSummary
	for _, r := range records {
		observe(&s.Open, r.Open)
		observe(&s.High, r.High)
		observe(&s.Low, r.Low)
		observe(&s.Close, r.Close)
		observe(&s.AdjustedClose, r.AdjustedClose)
		observe(&s.Volume, decimal.NewFromInt(r.Volume))
	}
	return s
}

func observe(e *models.Extreme, v decimal.Decimal) {
	if !e.Max.Valid || v.GreaterThan(e.Max.Decimal) {
		e.Max = decimal.NewNullDecimal(v)
	}
	if !e.Min.Valid || v.LessThan(e.Min.Decimal) {
		e.Min = decimal.NewNullDecimal(v)
	}
}
