package importer

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/trogers1052/lumber-futures/internal/models"
)

// Column positions in the source sheet.
const (
	colDate = iota
	colOpen
	colHigh
	colLow
	colClose
	colAdjClose
	colVolume
)

// ErrNoSheets is returned for a workbook without any sheet.
var ErrNoSheets = errors.New("workbook has no sheets")

// textDateLayouts are tried in order for date cells stored as text.
var textDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02-01-2006",
	"01/02/2006",
	"Jan 2, 2006",
	"Jan 02, 2006",
}

// Sheet holds the parsed data rows of one worksheet
type Sheet struct {
	Name string
	Rows []models.SheetRow
	// SkippedLines are 1-based sheet line numbers dropped for lacking a date.
	SkippedLines []int
}

// ReadWorkbook parses the named sheet, or the first sheet when name is
// empty. The first line is a header and is not imported.
func ReadWorkbook(path, name string) (*Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	if name == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrNoSheets
		}
		name = sheets[0]
	}

	props, err := f.GetWorkbookProps()
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook properties: %w", err)
	}
	date1904 := props.Date1904 != nil && *props.Date1904

	raw, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
	}

	sheet := &Sheet{Name: name}
	for idx, cells := range raw {
		if idx == 0 || blankRow(cells) {
			continue
		}

		date, ok := parseDate(cell(cells, colDate), date1904)
		if !ok {
			sheet.SkippedLines = append(sheet.SkippedLines, idx+1)
			continue
		}

		sheet.Rows = append(sheet.Rows, models.SheetRow{
			Date:          date,
			Open:          parseDecimal(cell(cells, colOpen)),
			High:          parseDecimal(cell(cells, colHigh)),
			Low:           parseDecimal(cell(cells, colLow)),
			Close:         parseDecimal(cell(cells, colClose)),
			AdjustedClose: parseDecimal(cell(cells, colAdjClose)),
			Volume:        parseVolume(cell(cells, colVolume)),
		})
	}
	return sheet, nil
}

// cell returns the trimmed value at col; trailing empty cells are not
// present in excelize rows.
func cell(cells []string, col int) string {
	if col >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[col])
}

func blankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseDate accepts Excel serial dates and the text layouts above. Serials
// count from 1904-01-01 when date1904 is set. The result is midnight UTC.
func parseDate(v string, date1904 bool) (time.Time, bool) {
	if v == "" {
		return time.Time{}, false
	}
	if serial, err := strconv.ParseFloat(v, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, date1904)
		if err != nil {
			return time.Time{}, false
		}
		return midnight(t), true
	}
	for _, layout := range textDateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return midnight(t), true
		}
	}
	return time.Time{}, false
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// parseDecimal returns an invalid value for empty or non-numeric cells.
func parseDecimal(v string) decimal.NullDecimal {
	v = strings.ReplaceAll(v, ",", "")
	if v == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

func parseVolume(v string) sql.NullInt64 {
	d := parseDecimal(v)
	if !d.Valid {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: d.Decimal.Round(0).IntPart(), Valid: true}
}
