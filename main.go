package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/decodinggithub/Barclays-Customer-Churn-Analysis-Retention-Gap-Insights/config"
	"github.com/decodinggithub/Barclays-Customer-Churn-Analysis-Retention-Gap-Insights/queries"
)

func main() {
	configPath := flag.String("config", "", "path to report.yaml, default is ./report.yaml when present")
	dataPath := flag.String("data", "", "dataset file: csv, zip, gz or lz4 archive, or sqlite file")
	source := flag.String("source", "", "csv, mysql or sqlite")
	table := flag.String("table", "", "database table holding the churn data")
	queryList := flag.String("queries", "", "comma separated query names, empty runs all")
	outDir := flag.String("out", "", "output directory for reports")
	format := flag.String("format", "", "table, markdown, csv or json")
	dashboard := flag.Bool("dashboard", false, "write the html dashboard")
	charts := flag.Bool("png", false, "write png charts next to the reports")
	doImport := flag.Bool("import", false, "stage the dataset into mysql after loading")
	list := flag.Bool("list", false, "print the known queries and exit")
	flag.Parse()

	if *list {
		for _, q := range queries.All() {
			fmt.Printf("%-28s %s\n", q.Name, q.Title)
		}
		return
	}

	cfg, err := config.LoadReportConfig(*configPath)
	if err != nil {
		log.Fatalln("config error:", err)
	}
	if *dataPath != "" {
		cfg.DataPath = *dataPath
	}
	if *source != "" {
		cfg.Source = *source
	}
	if *table != "" {
		cfg.Table = *table
	}
	if *outDir != "" {
		cfg.OutputDir = *outDir
	}
	if *format != "" {
		cfg.Format = *format
	}
	if *queryList != "" {
		cfg.Queries = nil
		for _, name := range strings.Split(*queryList, ",") {
			if name = strings.TrimSpace(name); name != "" {
				cfg.Queries = append(cfg.Queries, name)
			}
		}
	}
	cfg.Dashboard = cfg.Dashboard || *dashboard
	cfg.ChartsPNG = cfg.ChartsPNG || *charts

	fmt.Println("started")
	if err := run(cfg, *doImport); err != nil {
		log.Fatalln(err)
	}
}
