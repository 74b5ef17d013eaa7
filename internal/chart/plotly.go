package chart

import "encoding/json"

// Plotly figure JSON shapes. Only the attributes the graph page uses.
type (
	plotlyFigure struct {
		Data   []plotlyTrace `json:"data"`
		Layout plotlyLayout  `json:"layout"`
	}

	plotlyTrace struct {
		Type string     `json:"type"`
		Mode string     `json:"mode"`
		Name string     `json:"name"`
		X    []string   `json:"x"`
		Y    []float64  `json:"y"`
		Line plotlyLine `json:"line"`
	}

	plotlyLine struct {
		Color string `json:"color"`
	}

	plotlyLayout struct {
		Width       int                `json:"width"`
		Height      int                `json:"height"`
		ShowLegend  bool               `json:"showlegend"`
		XAxis       plotlyAxis         `json:"xaxis"`
		YAxis       plotlyAxis         `json:"yaxis"`
		UpdateMenus []plotlyUpdateMenu `json:"updatemenus"`
	}

	plotlyAxis struct {
		Title     plotlyAxisTitle `json:"title"`
		Type      string          `json:"type,omitempty"`
		Range     []interface{}   `json:"range,omitempty"`
		AutoRange bool            `json:"autorange"`
		TickAngle int             `json:"tickangle,omitempty"`
	}

	plotlyAxisTitle struct {
		Text     string     `json:"text"`
		Font     plotlyFont `json:"font"`
		Standoff int        `json:"standoff"`
	}

	plotlyFont struct {
		Size int `json:"size"`
	}

	plotlyUpdateMenu struct {
		Active  int            `json:"active"`
		Buttons []plotlyButton `json:"buttons"`
	}

	plotlyButton struct {
		Label  string        `json:"label"`
		Method string        `json:"method"`
		Args   []interface{} `json:"args"`
	}
)

// MarshalJSON renders the chart as a Plotly figure.
func (c ChartSpec) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.figure())
}

func (c ChartSpec) figure() plotlyFigure {
	traces := make([]plotlyTrace, len(c.Series))
	for i, s := range c.Series {
		traces[i] = plotlyTrace{
			Type: "scatter",
			Mode: "lines",
			Name: s.Name,
			X:    c.Dates,
			Y:    s.Values,
			Line: plotlyLine{Color: s.Color},
		}
	}

	buttons := make([]plotlyButton, len(c.Presets))
	for i, p := range c.Presets {
		buttons[i] = plotlyButton{
			Label:  p.Label,
			Method: "update",
			Args: []interface{}{
				map[string]interface{}{"visible": p.Visible},
				map[string]interface{}{"title": p.Title, "showlegend": true},
			},
		}
	}

	xaxis := plotlyAxis{
		Title:     plotlyAxisTitle{Text: "Date", Font: plotlyFont{Size: 20}, Standoff: 25},
		Type:      "date",
		TickAngle: 55,
		AutoRange: c.Options.Autorange,
	}
	yaxis := plotlyAxis{
		Title:     plotlyAxisTitle{Text: "Units", Font: plotlyFont{Size: 20}, Standoff: 25},
		AutoRange: c.Options.Autorange,
	}
	if !c.Options.Autorange {
		xaxis.Range = []interface{}{c.Options.XRange[0], c.Options.XRange[1]}
		yaxis.Range = []interface{}{c.Options.YRange[0], c.Options.YRange[1]}
	}

	return plotlyFigure{
		Data: traces,
		Layout: plotlyLayout{
			Width:       c.Options.Width,
			Height:      c.Options.Height,
			ShowLegend:  true,
			XAxis:       xaxis,
			YAxis:       yaxis,
			UpdateMenus: []plotlyUpdateMenu{{Active: 0, Buttons: buttons}},
		},
	}
}
