package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/trogers1052/lumber-futures/internal/models"
)

// TestDB wraps a test database connection with cleanup
type TestDB struct {
	*DB
	container testcontainers.Container
}

// SetupTestDB opens a SQLite store in a temp directory with the schema applied
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	db, err := New(DriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	testDB := &TestDB{DB: db}
	if err := testDB.EnsureSchema(context.Background()); err != nil {
		testDB.Cleanup(t)
		t.Fatalf("failed to ensure schema: %v", err)
	}
	return testDB
}

// SetupPostgresTestDB creates a PostgreSQL container and returns a connected DB
func SetupPostgresTestDB(t *testing.T) *TestDB {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	db, err := New(DriverPostgres, connStr)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	testDB := &TestDB{DB: db, container: pgContainer}
	if err := testDB.EnsureSchema(ctx); err != nil {
		testDB.Cleanup(t)
		t.Fatalf("failed to ensure schema: %v", err)
	}
	return testDB
}

// Cleanup closes the database connection and terminates any container
func (tdb *TestDB) Cleanup(t *testing.T) {
	t.Helper()

	if tdb.DB != nil {
		tdb.DB.Close()
	}

	if tdb.container != nil {
		if err := tdb.container.Terminate(context.Background()); err != nil {
			t.Errorf("failed to terminate container: %v", err)
		}
	}
}

// TruncateAll removes every stored price row for test isolation
func (tdb *TestDB) TruncateAll(t *testing.T) {
	t.Helper()
	if _, err := tdb.conn.Exec(`DELETE FROM lumber_futures`); err != nil {
		t.Fatalf("failed to truncate lumber_futures: %v", err)
	}
}

// ExecRaw runs a statement directly, bypassing the importer's typing
func (tdb *TestDB) ExecRaw(t *testing.T, query string, args ...interface{}) {
	t.Helper()
	if _, err := tdb.conn.Exec(tdb.conn.Rebind(query), args...); err != nil {
		t.Fatalf("failed to exec %q: %v", query, err)
	}
}

// GetRawConn returns the underlying sql.DB for direct queries in tests
func (tdb *TestDB) GetRawConn() *sql.DB {
	return tdb.conn.DB
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(v float64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromFloat(v))
}

// fullRow builds a complete sheet row
func fullRow(date time.Time, open, high, low, closePrice, adj float64, volume int64) models.SheetRow {
	return models.SheetRow{
		Date:          date,
		Open:          dec(open),
		High:          dec(high),
		Low:           dec(low),
		Close:         dec(closePrice),
		AdjustedClose: dec(adj),
		Volume:        sql.NullInt64{Int64: volume, Valid: true},
	}
}
