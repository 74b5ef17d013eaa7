package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the storage and API representation of a trading date.
const DateLayout = "2006-01-02"

// DisplayDateLayout is how dates are shown in the browser views.
const DisplayDateLayout = "02-01-2006"

// PriceRecord represents one validated daily row of lumber futures prices
type PriceRecord struct {
	Date          time.Time       `json:"date"`
	Open          decimal.Decimal `json:"open"`
	High          decimal.Decimal `json:"high"`
	Low           decimal.Decimal `json:"low"`
	Close         decimal.Decimal `json:"close"`
	AdjustedClose decimal.Decimal `json:"adj_close"`
	Volume        int64           `json:"volume"`
}

// DisplayDate formats the record date for the table and chart views
func (p PriceRecord) DisplayDate() string {
	return p.Date.Format(DisplayDateLayout)
}

// SheetRow is a row as read from the source workbook. Any numeric cell may
// be missing; incomplete rows are stored and filtered out at query time.
type SheetRow struct {
	Date          time.Time
	Open          decimal.NullDecimal
	High          decimal.NullDecimal
	Low           decimal.NullDecimal
	Close         decimal.NullDecimal
	AdjustedClose decimal.NullDecimal
	Volume        sql.NullInt64
}

// Complete reports whether every price and volume cell is present
func (r SheetRow) Complete() bool {
	return r.Open.Valid && r.High.Valid && r.Low.Valid && r.Close.Valid &&
		r.AdjustedClose.Valid && r.Volume.Valid
}
