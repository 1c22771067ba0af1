package loader

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createSQLiteFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "churn.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE customers (
		CustomerId INTEGER PRIMARY KEY,
		Surname TEXT,
		CreditScore INTEGER,
		Geography TEXT,
		Gender TEXT,
		Age INTEGER,
		Tenure INTEGER,
		Balance REAL,
		NumOfProducts INTEGER,
		HasCrCard INTEGER,
		IsActiveMember INTEGER,
		EstimatedSalary REAL,
		Exited INTEGER
	)`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO customers VALUES
		(2, 'Hill', 608, 'Spain', 'Female', 41, 1, 83807.86, 1, 0, 1, 112542.58, 0),
		(1, 'Hargrave', 619, 'France', 'Female', 42, 2, 0, 1, 1, 1, 101348.88, 1),
		(3, 'Onio', 502, 'France', 'Female', 42, 8, 159660.8, 3, 1, 0, 113931.57, 1)`)
	require.NoError(t, err)
	return path
}

func TestFromSQLite(t *testing.T) {
	path := createSQLiteFixture(t)
	customers, err := FromSQLite(path, "customers")
	require.NoError(t, err)
	require.Len(t, customers, 3)

	// rows come back ordered by id regardless of insert order
	assert.Equal(t, int64(1), customers[0].ID)
	assert.Equal(t, int64(2), customers[1].ID)
	assert.Equal(t, int64(3), customers[2].ID)

	first := customers[0]
	assert.Equal(t, 619, first.CreditScore)
	assert.Equal(t, "France", first.Country)
	assert.Equal(t, 42, first.Age)
	assert.True(t, first.HasCreditCard)
	assert.True(t, first.IsActive)
	assert.True(t, first.Churned)
	assert.False(t, customers[1].Churned)
	assert.Equal(t, 159660.8, customers[2].Balance)
}

func TestFromSQLiteMissingTable(t *testing.T) {
	path := createSQLiteFixture(t)
	_, err := FromSQLite(path, "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestFromSQLiteMissingFile(t *testing.T) {
	_, err := FromSQLite(filepath.Join(t.TempDir(), "absent.db"), "customers")
	require.Error(t, err)
}

func TestFromSQLiteEmptyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE customers (
		customer_id INTEGER, credit_score INTEGER, country TEXT, gender TEXT,
		age INTEGER, tenure INTEGER, balance REAL, products_number INTEGER,
		credit_card INTEGER, active_member INTEGER, estimated_salary REAL, churn INTEGER
	)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = FromSQLite(path, "customers")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no rows")
}
