package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decodinggithub/Barclays-Customer-Churn-Analysis-Retention-Gap-Insights/domain/models"
)

func TestLoadDefaultsToCSV(t *testing.T) {
	path := writeTempCSV(t, "churn.csv", kaggleCSV)
	customers, err := Load(Options{Path: path})
	require.NoError(t, err)
	assert.Len(t, customers, 3)
}

func TestLoadSQLiteDispatch(t *testing.T) {
	path := createSQLiteFixture(t)
	customers, err := Load(Options{Source: SourceSQLite, Path: path, Table: "customers"})
	require.NoError(t, err)
	assert.Len(t, customers, 3)
}

func TestLoadUnknownSource(t *testing.T) {
	_, err := Load(Options{Source: "excel"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown source")
}

func TestSummarize(t *testing.T) {
	dataset := []models.Customer{
		{ID: 1, Country: "France", Age: 40, Balance: 100, EstimatedSalary: 1000, Churned: true},
		{ID: 2, Country: "France", Age: 30, Balance: 50, EstimatedSalary: 2000},
		{ID: 3, Country: "Germany", Age: 20, Balance: 0, EstimatedSalary: 3000, Churned: true},
		{ID: 4, Country: "Spain", Age: 50, Balance: 250, EstimatedSalary: 4000},
	}
	s := Summarize(dataset)
	assert.Equal(t, int64(4), s.TotalCustomers)
	assert.Equal(t, int64(2), s.Churned)
	assert.Equal(t, 50.0, s.ChurnRate)
	assert.Equal(t, 3, s.Countries)
	assert.Equal(t, 35.0, s.AvgAge)
	assert.Equal(t, 100.0, s.AvgBalance)
	assert.Equal(t, 2500.0, s.AvgSalary)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, int64(0), s.TotalCustomers)
	assert.Equal(t, 0.0, s.ChurnRate)
	assert.Equal(t, 0, s.Countries)
}
