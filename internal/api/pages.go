package api

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/shopspring/decimal"

	"github.com/trogers1052/lumber-futures/internal/chart"
	"github.com/trogers1052/lumber-futures/internal/models"
)

//go:embed templates/*.html
var templateFiles embed.FS

var pageNames = []string{"home.html", "about.html", "view_data.html", "view_graph.html"}

// pageSet holds one parsed template per page, each sharing base.html.
type pageSet struct {
	pages map[string]*template.Template
}

func loadPages() (*pageSet, error) {
	ps := &pageSet{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.ParseFS(templateFiles, "templates/base.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		ps.pages[name] = t
	}
	return ps, nil
}

func (ps *pageSet) execute(w io.Writer, name string, data interface{}) error {
	t, ok := ps.pages[name]
	if !ok {
		return fmt.Errorf("unknown page: %s", name)
	}
	return t.ExecuteTemplate(w, "base", data)
}

// extremeRow is one line of the graph page's summary table.
type extremeRow struct {
	Name string
	Max  string
	Min  string
}

func extremeRows(s models.SeriesSummary) []extremeRow {
	names := chart.SeriesNames()
	rows := make([]extremeRow, 0, len(names))
	for i, e := range s.Columns() {
		rows = append(rows, extremeRow{Name: names[i], Max: formatNull(e.Max), Min: formatNull(e.Min)})
	}
	return rows
}

func formatNull(v decimal.NullDecimal) string {
	if !v.Valid {
		return "n/a"
	}
	return v.Decimal.String()
}
