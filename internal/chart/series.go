package chart

import (
	"github.com/trogers1052/lumber-futures/internal/models"
)

// PresetAll is the selector entry that shows every series.
const PresetAll = "All"

type seriesDef struct {
	name  string
	color string
	value func(models.PriceRecord) float64
}

// seriesDefs fixes the order, names and colours of the chart series.
var seriesDefs = []seriesDef{
	{"Open", "#1f77b4", func(r models.PriceRecord) float64 { return r.Open.InexactFloat64() }},
	{"High", "#deb887", func(r models.PriceRecord) float64 { return r.High.InexactFloat64() }},
	{"Low", "#d62728", func(r models.PriceRecord) float64 { return r.Low.InexactFloat64() }},
	{"Close", "#9467bd", func(r models.PriceRecord) float64 { return r.Close.InexactFloat64() }},
	{"Adj_Close", "#e377c2", func(r models.PriceRecord) float64 { return r.AdjustedClose.InexactFloat64() }},
	{"Volume", "#17becf", func(r models.PriceRecord) float64 { return float64(r.Volume) }},
}

// Series is one named line of the chart
type Series struct {
	Name   string
	Color  string
	Values []float64
}

// Preset is a selector entry toggling which series are visible
type Preset struct {
	Label   string
	Title   string
	Visible []bool
}

// Options controls axis ranges and figure size
type Options struct {
	// Autorange derives both axes from the data instead of the fixed bands.
	Autorange bool
	YRange    [2]float64
	XRange    [2]string
	Width     int
	Height    int
}

// DefaultOptions returns the fixed value band and date window used when no
// configuration is given.
func DefaultOptions() Options {
	return Options{
		YRange: [2]float64{0, 1600},
		XRange: [2]string{"2022-01-03", "2022-10-06"},
		Width:  1400,
		Height: 700,
	}
}

// ChartSpec is everything the chart view needs: the date axis, six series
// and the selector presets.
type ChartSpec struct {
	Dates   []string
	Series  []Series
	Presets []Preset
	Options Options
}

// SeriesNames returns the series names in display order
func SeriesNames() []string {
	names := make([]string, len(seriesDefs))
	for i, d := range seriesDefs {
		names[i] = d.name
	}
	return names
}

// BuildSeries converts ordered records into chart series. Records are used
// as given: no filtering, sorting or aggregation happens here.
func BuildSeries(records []models.PriceRecord, opts Options) ChartSpec {
	spec := ChartSpec{
		Dates:   make([]string, len(records)),
		Series:  make([]Series, len(seriesDefs)),
		Presets: buildPresets(),
		Options: opts,
	}

	for i, r := range records {
		spec.Dates[i] = r.Date.Format(models.DateLayout)
	}

	for s, def := range seriesDefs {
		values := make([]float64, len(records))
		for i, r := range records {
			values[i] = def.value(r)
		}
		spec.Series[s] = Series{Name: def.name, Color: def.color, Values: values}
	}
	return spec
}

func buildPresets() []Preset {
	presets := make([]Preset, 0, len(seriesDefs)+1)

	all := make([]bool, len(seriesDefs))
	for i := range all {
		all[i] = true
	}
	presets = append(presets, Preset{Label: PresetAll, Title: PresetAll, Visible: all})

	for s, def := range seriesDefs {
		visible := make([]bool, len(seriesDefs))
		visible[s] = true
		presets = append(presets, Preset{Label: def.name, Title: def.name, Visible: visible})
	}
	return presets
}
