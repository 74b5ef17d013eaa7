package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trogers1052/lumber-futures/internal/models"
)

func TestEnsureSchema(t *testing.T) {
	testDB := SetupTestDB(t)
	defer testDB.Cleanup(t)

	t.Run("lumber_futures table exists", func(t *testing.T) {
		var name string
		err := testDB.GetRawConn().QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, "lumber_futures",
		).Scan(&name)
		require.NoError(t, err)
		assert.Equal(t, "lumber_futures", name)
	})

	t.Run("lumber_futures table has correct columns", func(t *testing.T) {
		rows, err := testDB.GetRawConn().Query(`PRAGMA table_info(lumber_futures)`)
		require.NoError(t, err)
		defer rows.Close()

		var columns []string
		primaryKey := ""
		for rows.Next() {
			var (
				cid     int
				name    string
				colType string
				notNull int
				dflt    interface{}
				pk      int
			)
			require.NoError(t, rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk))
			columns = append(columns, name)
			if pk == 1 {
				primaryKey = name
			}
		}
		require.NoError(t, rows.Err())

		assert.Equal(t, []string{"date", "open", "high", "low", "close", "adj_close", "volume"}, columns)
		assert.Equal(t, "date", primaryKey)
	})

	t.Run("is idempotent", func(t *testing.T) {
		testDB.ExecRaw(t, `INSERT INTO lumber_futures (date, open, high, low, close, adj_close, volume) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			"2022-01-03", 900.0, 910.0, 890.0, 905.0, 905.0, 150)

		require.NoError(t, testDB.EnsureSchema(context.Background()))
		require.NoError(t, testDB.EnsureSchema(context.Background()))

		n, err := testDB.CountPriceRows(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, n, "existing rows survive a second schema pass")
	})
}

func TestSchemaPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prices.db")
	ctx := context.Background()

	db, err := New(DriverSQLite, path)
	require.NoError(t, err)
	require.NoError(t, db.EnsureSchema(ctx))
	_, err = db.UpsertPriceRows(ctx, []models.SheetRow{fullRow(day(2022, 1, 3), 900, 910, 890, 905, 905, 150)})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	reopened, err := New(DriverSQLite, path)
	require.NoError(t, err)
	defer reopened.Close()
	require.NoError(t, reopened.EnsureSchema(ctx))

	records, err := reopened.GetAllPriceRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := New("mysql", "whatever")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}
