package database

import (
	"testing"
)

func TestPriceDataRepositoryPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := SetupPostgresTestDB(t)
	defer testDB.Cleanup(t)

	runPriceDataSuite(t, testDB)
}
