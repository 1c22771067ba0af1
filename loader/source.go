package loader

import (
	"fmt"

	"github.com/decodinggithub/Barclays-Customer-Churn-Analysis-Retention-Gap-Insights/domain/models"
	"github.com/decodinggithub/Barclays-Customer-Churn-Analysis-Retention-Gap-Insights/segment"
)

// Source selects where the dataset comes from.
type Source string

const (
	SourceCSV    Source = "csv"
	SourceMySQL  Source = "mysql"
	SourceSQLite Source = "sqlite"
)

// Options point Load at one tabular source.
type Options struct {
	Source Source
	Path   string // csv or sqlite file
	DSN    string // mysql
	Table  string
}

// Load reads the full customer table from the configured source. The result
// is treated as immutable by everything downstream.
func Load(opts Options) ([]models.Customer, error) {
	switch opts.Source {
	case SourceCSV, "":
		return ReadCSV(opts.Path)
	case SourceMySQL:
		return FromMySQL(opts.DSN, opts.Table)
	case SourceSQLite:
		return FromSQLite(opts.Path, opts.Table)
	}
	return nil, fmt.Errorf("unknown source %q", opts.Source)
}

// Summarize profiles the loaded dataset for the startup log and the baseline.
func Summarize(dataset []models.Customer) models.DatasetSummary {
	s := models.DatasetSummary{TotalCustomers: int64(len(dataset))}
	countries := map[string]bool{}
	var sumAge, sumBalance, sumSalary float64
	for _, c := range dataset {
		if c.Churned {
			s.Churned++
		}
		countries[c.Country] = true
		sumAge += float64(c.Age)
		sumBalance += c.Balance
		sumSalary += c.EstimatedSalary
	}
	s.Countries = len(countries)
	if s.TotalCustomers > 0 {
		n := float64(s.TotalCustomers)
		s.ChurnRate = segment.RoundTwo(100 * float64(s.Churned) / n)
		s.AvgAge = segment.RoundTwo(sumAge / n)
		s.AvgBalance = segment.RoundTwo(sumBalance / n)
		s.AvgSalary = segment.RoundTwo(sumSalary / n)
	}
	return s
}
