package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// ReportConfig shapes one analysis run: where the table comes from, which
// queries to compute and how to write them out.
type ReportConfig struct {
	Source        string   `yaml:"source"`
	DataPath      string   `yaml:"data_path"`
	Table         string   `yaml:"table"`
	OutputDir     string   `yaml:"output_dir"`
	Format        string   `yaml:"format"`
	Queries       []string `yaml:"queries"`
	Dashboard     bool     `yaml:"dashboard"`
	DashboardFile string   `yaml:"dashboard_file"`
	ChartsPNG     bool     `yaml:"charts_png"`
}

const defaultReportConfigPath = "report.yaml"

// LoadReportConfig reads the run config. A missing file is fine when the
// default path is used, an explicitly named file must exist. Env vars
// override file values, defaults fill the rest.
func LoadReportConfig(path string) (ReportConfig, error) {
	var cfg ReportConfig

	explicit := path != ""
	if !explicit {
		path = defaultReportConfigPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if explicit {
			return cfg, fmt.Errorf("read config %s: %v", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %v", path, err)
		}
		log.Printf("loaded config from %s", path)
	}

	envOverride(&cfg.Source, "DATA_SOURCE")
	envOverride(&cfg.DataPath, "DATA_PATH")
	envOverride(&cfg.Table, "DB_TABLE")
	envOverride(&cfg.OutputDir, "OUTPUT_DIR")
	envOverride(&cfg.Format, "REPORT_FORMAT")

	if cfg.Source == "" {
		cfg.Source = "csv"
	}
	if cfg.Table == "" {
		cfg.Table = "customers"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "output"
	}
	if cfg.Format == "" {
		cfg.Format = "table"
	}
	if cfg.DashboardFile == "" {
		cfg.DashboardFile = "dashboard.html"
	}

	switch cfg.Source {
	case "csv", "mysql", "sqlite":
	default:
		return cfg, fmt.Errorf("source must be csv, mysql or sqlite, got %q", cfg.Source)
	}
	switch cfg.Format {
	case "table", "markdown", "csv", "json":
	default:
		return cfg, fmt.Errorf("format must be table, markdown, csv or json, got %q", cfg.Format)
	}
	return cfg, nil
}

func envOverride(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}
