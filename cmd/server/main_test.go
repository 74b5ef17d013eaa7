package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trogers1052/lumber-futures/internal/config"
)

type fixedCounter struct {
	n   int
	err error
}

func (f fixedCounter) CountPriceRows(ctx context.Context) (int, error) {
	return f.n, f.err
}

func TestLogStoreSize(t *testing.T) {
	tests := []struct {
		name      string
		counter   fixedCounter
		wantLevel string
		wantMsg   string
	}{
		{"count succeeds", fixedCounter{n: 42}, "info", "store ready"},
		{"count fails", fixedCounter{err: errors.New("no such table")}, "warn", "count stored rows"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logStoreSize(context.Background(), tt.counter, zerolog.New(&buf))

			var entry map[string]interface{}
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, tt.wantMsg, entry["message"])
			if tt.counter.err != nil {
				assert.Equal(t, "no such table", entry["error"])
			} else {
				assert.EqualValues(t, 42, entry["stored_rows"])
			}
		})
	}
}

func TestChartOptions(t *testing.T) {
	opts := chartOptions(config.ChartConfig{
		Autorange: true,
		YMin:      10,
		YMax:      20,
		XStart:    "2022-01-03",
		XEnd:      "2022-02-03",
		Width:     800,
		Height:    400,
	})

	assert.True(t, opts.Autorange)
	assert.Equal(t, [2]float64{10, 20}, opts.YRange)
	assert.Equal(t, [2]string{"2022-01-03", "2022-02-03"}, opts.XRange)
	assert.Equal(t, 800, opts.Width)
	assert.Equal(t, 400, opts.Height)
}
