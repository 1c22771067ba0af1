package main

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/decodinggithub/Barclays-Customer-Churn-Analysis-Retention-Gap-Insights/config"
	"github.com/decodinggithub/Barclays-Customer-Churn-Analysis-Retention-Gap-Insights/domain/models"
	"github.com/decodinggithub/Barclays-Customer-Churn-Analysis-Retention-Gap-Insights/loader"
	"github.com/decodinggithub/Barclays-Customer-Churn-Analysis-Retention-Gap-Insights/plot"
	"github.com/decodinggithub/Barclays-Customer-Churn-Analysis-Retention-Gap-Insights/queries"
	"github.com/decodinggithub/Barclays-Customer-Churn-Analysis-Retention-Gap-Insights/report"
	"github.com/decodinggithub/Barclays-Customer-Churn-Analysis-Retention-Gap-Insights/segment"
)

type queryRun struct {
	query  queries.Query
	result *models.Result
}

// run executes one full analysis pass: load, aggregate every selected query,
// write reports and optional charts. A single failing query is logged and
// skipped, a run where nothing succeeds is an error.
func run(cfg config.ReportConfig, stage bool) error {
	dataset, err := loadDataset(cfg)
	if err != nil {
		return err
	}

	summary := loader.Summarize(dataset)
	log.Println(report.FormatSummary(summary))

	selected, err := selectQueries(cfg.Queries)
	if err != nil {
		return err
	}

	baseline := summary.ChurnRate
	runs := make([]queryRun, 0, len(selected))
	for _, q := range selected {
		res, err := segment.Aggregate(dataset, q.Spec(&baseline))
		if err != nil {
			log.Printf("query %s failed: %v", q.Name, err)
			continue
		}
		runs = append(runs, queryRun{query: q, result: res})
	}
	if len(runs) == 0 {
		return fmt.Errorf("no queries produced results")
	}

	if err := writeReports(cfg, runs); err != nil {
		return err
	}
	if cfg.Dashboard {
		if err := writeDashboard(cfg, runs); err != nil {
			return err
		}
	}
	if cfg.ChartsPNG {
		writeCharts(cfg, runs)
	}
	if stage {
		if err := stageDataset(dataset); err != nil {
			return err
		}
	}
	return nil
}

func loadDataset(cfg config.ReportConfig) ([]models.Customer, error) {
	env := config.GetConfig()
	opts := loader.Options{
		Source: loader.Source(cfg.Source),
		Path:   cfg.DataPath,
		DSN:    env.DbDsn,
		Table:  cfg.Table,
	}
	switch opts.Source {
	case loader.SourceCSV, "":
		if opts.Path == "" {
			return nil, fmt.Errorf("no dataset path, pass -data or set data_path")
		}
	case loader.SourceSQLite:
		if opts.Path == "" {
			opts.Path = env.SQLitePath
		}
		if opts.Path == "" {
			return nil, fmt.Errorf("sqlite source needs -data or SQLITE_PATH")
		}
	case loader.SourceMySQL:
		if opts.DSN == "" {
			return nil, fmt.Errorf("mysql source needs DB_DSN in .env or environment")
		}
	}
	return loader.Load(opts)
}

func selectQueries(names []string) ([]queries.Query, error) {
	if len(names) == 0 {
		return queries.All(), nil
	}
	selected := make([]queries.Query, 0, len(names))
	for _, name := range names {
		q, err := queries.ByName(name)
		if err != nil {
			return nil, err
		}
		selected = append(selected, q)
	}
	return selected, nil
}

func writeReports(cfg config.ReportConfig, runs []queryRun) error {
	for _, r := range runs {
		switch cfg.Format {
		case "table":
			rendered := report.GenerateTable(r.result)
			fmt.Printf("\n%s\n%s\n", r.query.Title, rendered)
			if err := report.ExportText(filepath.Join(cfg.OutputDir, r.query.Name+".txt"), rendered+"\n"); err != nil {
				return err
			}
		case "markdown":
			rendered := report.GenerateTableMarkdown(r.result)
			fmt.Printf("\n### %s\n\n%s", r.query.Title, rendered)
			if err := report.ExportText(filepath.Join(cfg.OutputDir, r.query.Name+".md"), rendered); err != nil {
				return err
			}
		case "csv":
			rendered := report.GenerateCSV(r.result)
			if err := report.ExportText(filepath.Join(cfg.OutputDir, r.query.Name+".csv"), rendered); err != nil {
				return err
			}
		case "json":
			export := report.BuildExport(r.query.Name, r.query.Title, r.result)
			name := report.TimestampedFilename(cfg.OutputDir, r.query.Name, ".json")
			if err := report.ExportJSON(name, export); err != nil {
				return err
			}
		default:
			return fmt.Errorf("format must be table, markdown, csv or json, got %q", cfg.Format)
		}
	}
	return nil
}

// writeDashboard renders the page in memory first, so a selection with
// nothing to chart is logged and skipped without leaving a file behind.
func writeDashboard(cfg config.ReportConfig, runs []queryRun) error {
	items := make([]plot.QueryChart, 0, len(runs))
	for _, r := range runs {
		items = append(items, plot.QueryChart{
			Name:   r.query.Name,
			Title:  r.query.Title,
			Kind:   plot.ChartKind(r.query.Chart),
			Result: r.result,
		})
	}
	buf := &bytes.Buffer{}
	if err := plot.BuildDashboard(buf, items); err != nil {
		if errors.Is(err, plot.ErrNoCharts) {
			log.Printf("dashboard skipped: %v", err)
			return nil
		}
		return err
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return err
	}
	path := filepath.Join(cfg.OutputDir, cfg.DashboardFile)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %v", path, err)
	}
	log.Printf("dashboard written to %s", path)
	return nil
}

// writeCharts emits a rate chart and a segment size chart per charted query.
// Chart failures only cost the one file.
func writeCharts(cfg config.ReportConfig, runs []queryRun) {
	for _, r := range runs {
		if r.query.Chart == queries.ChartNone {
			continue
		}
		rate, err := plot.RatePNG(r.query.Title, r.result)
		if err != nil {
			log.Printf("chart %s failed: %v", r.query.Name, err)
			continue
		}
		if err := writePNG(filepath.Join(cfg.OutputDir, r.query.Name+"_rate.png"), rate); err != nil {
			log.Printf("chart %s failed: %v", r.query.Name, err)
			continue
		}
		size, err := plot.CountPNG(r.query.Title+" (segment sizes)", r.result)
		if err != nil {
			log.Printf("chart %s failed: %v", r.query.Name, err)
			continue
		}
		if err := writePNG(filepath.Join(cfg.OutputDir, r.query.Name+"_size.png"), size); err != nil {
			log.Printf("chart %s failed: %v", r.query.Name, err)
		}
	}
}

func writePNG(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	log.Printf("exported %s", path)
	return nil
}

func stageDataset(dataset []models.Customer) error {
	env := config.GetConfig()
	if env.DbDsn == "" {
		return fmt.Errorf("staging import needs DB_DSN in .env or environment")
	}
	table, err := loader.ImportIntoMySQL(env.DbDsn, dataset)
	if err != nil {
		return err
	}
	log.Printf("dataset staged into table %s", table)
	return nil
}
