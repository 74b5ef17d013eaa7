package chart

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/trogers1052/lumber-futures/internal/models"
)

var (
	// ErrNoData is returned when there is nothing to draw.
	ErrNoData = errors.New("no price data to chart")
	// ErrUnknownSeries is returned for a series name outside SeriesNames.
	ErrUnknownSeries = errors.New("unknown series")
)

// RenderSVG draws the named series, or all of them when name is empty or
// PresetAll, as an SVG document.
func RenderSVG(w io.Writer, spec ChartSpec, name string) error {
	if len(spec.Dates) == 0 {
		return ErrNoData
	}

	selected, title, err := selectSeries(spec, name)
	if err != nil {
		return err
	}

	times := make([]time.Time, len(spec.Dates))
	for i, d := range spec.Dates {
		t, err := time.Parse(models.DateLayout, d)
		if err != nil {
			return fmt.Errorf("failed to parse chart date %q: %w", d, err)
		}
		times[i] = t
	}

	series := make([]gochart.Series, 0, len(selected))
	for _, s := range selected {
		xs, ys := times, s.Values
		// go-chart needs two x values to compute a range.
		if len(xs) == 1 {
			xs = []time.Time{xs[0], xs[0].Add(24 * time.Hour)}
			ys = []float64{ys[0], ys[0]}
		}
		series = append(series, gochart.TimeSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style: gochart.Style{
				StrokeColor: drawing.ColorFromHex(strings.TrimPrefix(s.Color, "#")),
				StrokeWidth: 2,
			},
		})
	}

	yAxis := gochart.YAxis{Name: "Units"}
	if !spec.Options.Autorange {
		yAxis.Range = &gochart.ContinuousRange{Min: spec.Options.YRange[0], Max: spec.Options.YRange[1]}
	} else if lo, hi := valueBounds(selected); lo == hi {
		// go-chart rejects a zero-height value range.
		yAxis.Range = &gochart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}

	graph := gochart.Chart{
		Title:      title,
		Width:      spec.Options.Width,
		Height:     spec.Options.Height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		XAxis:      gochart.XAxis{Name: "Date", ValueFormatter: gochart.TimeDateValueFormatter},
		YAxis:      yAxis,
		Series:     series,
	}
	graph.Elements = []gochart.Renderable{gochart.Legend(&graph)}

	if err := graph.Render(gochart.SVG, w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

func selectSeries(spec ChartSpec, name string) ([]Series, string, error) {
	if name == "" || name == PresetAll {
		return spec.Series, PresetAll, nil
	}
	for _, s := range spec.Series {
		if strings.EqualFold(s.Name, name) {
			return []Series{s}, s.Name, nil
		}
	}
	return nil, "", fmt.Errorf("%w: %s", ErrUnknownSeries, name)
}

func valueBounds(series []Series) (lo, hi float64) {
	first := true
	for _, s := range series {
		for _, v := range s.Values {
			if first || v < lo {
				lo = v
			}
			if first || v > hi {
				hi = v
			}
			first = false
		}
	}
	return lo, hi
}
