package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trogers1052/lumber-futures/internal/importer"
)

type countingImporter struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (c *countingImporter) Import(ctx context.Context, path string) (importer.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, path)
	if c.err != nil {
		return importer.Result{}, c.err
	}
	return importer.Result{Source: path, Rows: 3}, nil
}

func (c *countingImporter) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name     string
		schedule string
		wantErr  bool
	}{
		{"five field", "0 6 * * 1-5", false},
		{"descriptor", "@every 1h", false},
		{"hourly", "@hourly", false},
		{"garbage", "not a schedule", true},
		{"seconds field rejected", "0 0 6 * * *", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScheduler(context.Background(), &countingImporter{}, "LumberFut.xlsx", zerolog.Nop())
			err := s.Register(tt.schedule)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRefresh(t *testing.T) {
	t.Run("imports the configured source", func(t *testing.T) {
		imp := &countingImporter{}
		s := NewScheduler(context.Background(), imp, "prices.xlsx", zerolog.Nop())

		s.Refresh()

		require.Equal(t, 1, imp.count())
		assert.Equal(t, "prices.xlsx", imp.calls[0])
	})

	t.Run("import error is swallowed", func(t *testing.T) {
		imp := &countingImporter{err: errors.New("workbook missing")}
		s := NewScheduler(context.Background(), imp, "prices.xlsx", zerolog.Nop())

		assert.NotPanics(t, s.Refresh)
		assert.Equal(t, 1, imp.count())
	})

	t.Run("cancelled context skips the run", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		imp := &countingImporter{}
		s := NewScheduler(ctx, imp, "prices.xlsx", zerolog.Nop())

		s.Refresh()

		assert.Equal(t, 0, imp.count())
	})
}

func TestScheduledRefresh(t *testing.T) {
	if testing.Short() {
		t.Skip("waits on the cron clock")
	}

	imp := &countingImporter{}
	s := NewScheduler(context.Background(), imp, "prices.xlsx", zerolog.Nop())
	require.NoError(t, s.Register("@every 1s"))

	s.Start()
	defer s.Stop()

	assert.Eventually(t, func() bool { return imp.count() >= 1 }, 5*time.Second, 50*time.Millisecond)
}
