package models

import "github.com/shopspring/decimal"

// Extreme holds the maximum and minimum of one column. Both are invalid
// when no qualifying rows exist.
type Extreme struct {
	Max decimal.NullDecimal `json:"max"`
	Min decimal.NullDecimal `json:"min"`
}

// SeriesSummary holds per-column extremes across all valid price records.
// It is derived on demand and never persisted.
type SeriesSummary struct {
	Open          Extreme `json:"open"`
	High          Extreme `json:"high"`
	Low           Extreme `json:"low"`
	Close         Extreme `json:"close"`
	AdjustedClose Extreme `json:"adj_close"`
	Volume        Extreme `json:"volume"`
}

// List returns the twelve values in column order, max before min:
// open, high, low, close, adj_close, volume.
func (s SeriesSummary) List() []decimal.NullDecimal {
	out := make([]decimal.NullDecimal, 0, 12)
	for _, e := range s.Columns() {
		out = append(out, e.Max, e.Min)
	}
	return out
}

// Columns returns the six extremes in column order.
func (s SeriesSummary) Columns() []Extreme {
	return []Extreme{s.Open, s.High, s.Low, s.Close, s.AdjustedClose, s.Volume}
}
