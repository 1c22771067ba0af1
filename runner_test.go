package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decodinggithub/Barclays-Customer-Churn-Analysis-Retention-Gap-Insights/config"
	"github.com/decodinggithub/Barclays-Customer-Churn-Analysis-Retention-Gap-Insights/queries"
)

func TestSelectQueries(t *testing.T) {
	all, err := selectQueries(nil)
	require.NoError(t, err)
	assert.Len(t, all, len(queries.All()))

	two, err := selectQueries([]string{"overall-churn", "revenue-loss"})
	require.NoError(t, err)
	require.Len(t, two, 2)
	assert.Equal(t, "revenue-loss", two[1].Name)

	_, err = selectQueries([]string{"no-such-query"})
	require.Error(t, err)
}

const fixtureCSV = `RowNumber,CustomerId,Surname,CreditScore,Geography,Gender,Age,Tenure,Balance,NumOfProducts,HasCrCard,IsActiveMember,EstimatedSalary,Exited
1,15634602,Hargrave,619,France,Female,42,2,0,1,1,1,101348.88,1
2,15647311,Hill,608,Spain,Female,41,1,83807.86,1,0,1,112542.58,0
3,15619304,Onio,502,France,Female,42,8,159660.8,3,1,0,113931.57,1
`

func TestRunEndToEndCSV(t *testing.T) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "churn.csv")
	require.NoError(t, os.WriteFile(dataPath, []byte(fixtureCSV), 0644))

	outDir := filepath.Join(dir, "out")
	cfg := config.ReportConfig{
		Source:        "csv",
		DataPath:      dataPath,
		OutputDir:     outDir,
		Format:        "csv",
		Dashboard:     true,
		DashboardFile: "dashboard.html",
	}
	require.NoError(t, run(cfg, false))

	overall, err := os.ReadFile(filepath.Join(outDir, "overall-churn.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(overall), "66.67")

	byCountry, err := os.ReadFile(filepath.Join(outDir, "churn-by-geography.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(byCountry), "France,2,2,100.00")
	assert.Contains(t, string(byCountry), "Spain,1,0,0.00")

	html, err := os.ReadFile(filepath.Join(outDir, "dashboard.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "echarts")

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Contains(t, strings.Join(names, " "), "demographic-rollup.csv")
}

func TestRunDashboardSkippedWhenNothingCharted(t *testing.T) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "churn.csv")
	require.NoError(t, os.WriteFile(dataPath, []byte(fixtureCSV), 0644))

	outDir := filepath.Join(dir, "out")
	cfg := config.ReportConfig{
		Source:        "csv",
		DataPath:      dataPath,
		OutputDir:     outDir,
		Format:        "csv",
		Queries:       []string{"overall-churn", "revenue-loss"},
		Dashboard:     true,
		DashboardFile: "dashboard.html",
	}
	require.NoError(t, run(cfg, false))

	// Both scalar reports land on disk, the dashboard never materializes.
	_, err := os.Stat(filepath.Join(outDir, "overall-churn.csv"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(outDir, "revenue-loss.csv"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(outDir, "dashboard.html"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunRejectsMissingDataPath(t *testing.T) {
	cfg := config.ReportConfig{Source: "csv", Format: "table", OutputDir: t.TempDir()}
	err := run(cfg, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no dataset path")
}
