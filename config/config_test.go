package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigSingleton(t *testing.T) {
	a := GetConfig()
	b := GetConfig()
	require.NotNil(t, a)
	assert.Same(t, a, b)
}

func TestLoadReportConfigDefaults(t *testing.T) {
	cfg, err := LoadReportConfig("")
	require.NoError(t, err)
	assert.Equal(t, "csv", cfg.Source)
	assert.Equal(t, "customers", cfg.Table)
	assert.Equal(t, "output", cfg.OutputDir)
	assert.Equal(t, "table", cfg.Format)
	assert.Equal(t, "dashboard.html", cfg.DashboardFile)
	assert.Empty(t, cfg.Queries)
	assert.False(t, cfg.Dashboard)
}

func TestLoadReportConfigFromFile(t *testing.T) {
	content := `source: sqlite
data_path: testdata/churn.db
table: bank_customers
output_dir: /tmp/churn-out
format: markdown
queries:
  - overall-churn
  - churn-by-geography
dashboard: true
charts_png: true
`
	path := filepath.Join(t.TempDir(), "report.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadReportConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Source)
	assert.Equal(t, "testdata/churn.db", cfg.DataPath)
	assert.Equal(t, "bank_customers", cfg.Table)
	assert.Equal(t, "/tmp/churn-out", cfg.OutputDir)
	assert.Equal(t, "markdown", cfg.Format)
	assert.Equal(t, []string{"overall-churn", "churn-by-geography"}, cfg.Queries)
	assert.True(t, cfg.Dashboard)
	assert.True(t, cfg.ChartsPNG)
	// untouched fields still get defaults
	assert.Equal(t, "dashboard.html", cfg.DashboardFile)
}

func TestLoadReportConfigEnvOverride(t *testing.T) {
	content := "output_dir: from_file\n"
	path := filepath.Join(t.TempDir(), "report.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	t.Setenv("OUTPUT_DIR", "from_env")
	cfg, err := LoadReportConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from_env", cfg.OutputDir)
}

func TestLoadReportConfigBadValues(t *testing.T) {
	t.Run("unknown format", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.yaml")
		require.NoError(t, os.WriteFile(path, []byte("format: excel\n"), 0644))
		_, err := LoadReportConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "format must be")
	})
	t.Run("unknown source", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.yaml")
		require.NoError(t, os.WriteFile(path, []byte("source: kafka\n"), 0644))
		_, err := LoadReportConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "source must be")
	})
	t.Run("broken yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.yaml")
		require.NoError(t, os.WriteFile(path, []byte("queries: [unclosed\n"), 0644))
		_, err := LoadReportConfig(path)
		require.Error(t, err)
	})
}

func TestLoadReportConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadReportConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
