package queries

import (
	"fmt"
	"math"

	"github.com/decodinggithub/Barclays-Customer-Churn-Analysis-Retention-Gap-Insights/segment"
)

// ChartKind selects how the dashboard renders a query result.
type ChartKind string

const (
	ChartBar  ChartKind = "bar"
	ChartPie  ChartKind = "pie"
	ChartNone ChartKind = "none"
)

// Query is one named analytical query from the churn study. Spec builds the
// engine spec; the baseline argument is only consulted when NeedsBaseline.
type Query struct {
	Name          string
	Title         string
	Chart         ChartKind
	NeedsBaseline bool
	build         func(baseline *float64) segment.Spec
}

// Spec returns the engine spec for this query. Queries that do not compare
// against a baseline ignore the argument.
func (q Query) Spec(baseline *float64) segment.Spec {
	if !q.NeedsBaseline {
		baseline = nil
	}
	return q.build(baseline)
}

// AgeBands and the other band sets mirror the breakdowns of the original
// churn study.
var (
	AgeBands = []segment.Band{
		{Label: "<30", Lo: 0, Hi: 29},
		{Label: "30-50", Lo: 30, Hi: 50},
		{Label: ">50", Lo: 51, Hi: math.Inf(1)},
	}
	TenureBands = []segment.Band{
		{Label: "0-2", Lo: 0, Hi: 2},
		{Label: "3-6", Lo: 3, Hi: 6},
		{Label: "7-10", Lo: 7, Hi: 10},
	}
	CreditScoreBands = []segment.Band{
		{Label: "poor", Lo: 0, Hi: 579},
		{Label: "fair", Lo: 580, Hi: 669},
		{Label: "good", Lo: 670, Hi: 739},
		{Label: "very_good", Lo: 740, Hi: 799},
		{Label: "excellent", Lo: 800, Hi: math.Inf(1)},
	}
)

// All returns the twelve queries in report order.
func All() []Query {
	return []Query{
		{
			Name:  "overall-churn",
			Title: "Overall churn rate",
			Chart: ChartNone,
			build: func(*float64) segment.Spec {
				return segment.Spec{WithAverages: true}
			},
		},
		{
			Name:  "churn-by-geography",
			Title: "Churn rate by country",
			Chart: ChartBar,
			build: func(*float64) segment.Spec {
				return segment.Spec{
					Bucketers: []segment.Bucketer{segment.ByField("country")},
					Sort:      segment.SortByChurnRateDesc,
				}
			},
		},
		{
			Name:  "churn-by-gender",
			Title: "Churn rate by gender",
			Chart: ChartPie,
			build: func(*float64) segment.Spec {
				return segment.Spec{
					Bucketers: []segment.Bucketer{segment.ByField("gender")},
				}
			},
		},
		{
			Name:  "demographic-rollup",
			Title: "Churn by country and gender with subtotals",
			Chart: ChartNone,
			build: func(*float64) segment.Spec {
				return segment.Spec{
					Bucketers: []segment.Bucketer{segment.ByField("country"), segment.ByField("gender")},
					Rollup:    true,
				}
			},
		},
		{
			Name:  "churn-by-age-band",
			Title: "Churn rate by age band",
			Chart: ChartBar,
			build: func(*float64) segment.Spec {
				return segment.Spec{
					Bucketers: []segment.Bucketer{segment.ByBands("age_band", "age", AgeBands)},
				}
			},
		},
		{
			Name:  "churn-by-tenure-band",
			Title: "Churn rate by tenure band",
			Chart: ChartBar,
			build: func(*float64) segment.Spec {
				return segment.Spec{
					Bucketers: []segment.Bucketer{segment.ByBands("tenure_band", "tenure", TenureBands)},
				}
			},
		},
		{
			Name:  "churn-by-product-count",
			Title: "Churn rate by number of products",
			Chart: ChartBar,
			build: func(*float64) segment.Spec {
				return segment.Spec{
					Bucketers: []segment.Bucketer{segment.ByField("products_number")},
				}
			},
		},
		{
			Name:  "churn-by-credit-score-band",
			Title: "Churn rate by credit score band",
			Chart: ChartBar,
			build: func(*float64) segment.Spec {
				return segment.Spec{
					Bucketers: []segment.Bucketer{segment.ByBands("credit_score_band", "credit_score", CreditScoreBands)},
				}
			},
		},
		{
			Name:          "activity-retention-gap",
			Title:         "Retention gap by activity status",
			Chart:         ChartBar,
			NeedsBaseline: true,
			build: func(baseline *float64) segment.Spec {
				return segment.Spec{
					Bucketers: []segment.Bucketer{segment.ByFlag("activity", "is_active", "active", "inactive")},
					Baseline:  baseline,
				}
			},
		},
		{
			Name:  "balance-quartiles",
			Title: "Churn rate by balance quartile",
			Chart: ChartBar,
			build: func(*float64) segment.Spec {
				return segment.Spec{
					Bucketers:    []segment.Bucketer{segment.ByNTile("balance_quartile", "balance", 4)},
					WithAverages: true,
				}
			},
		},
		{
			Name:  "clv-quartiles",
			Title: "Churn rate by lifetime value quartile",
			Chart: ChartBar,
			build: func(*float64) segment.Spec {
				return segment.Spec{
					Bucketers:    []segment.Bucketer{segment.ByNTile("clv_quartile", "clv_score", 4)},
					WithAverages: true,
				}
			},
		},
		{
			Name:  "revenue-loss",
			Title: "Balance lost to churn",
			Chart: ChartNone,
			build: func(*float64) segment.Spec {
				return segment.Spec{
					Filter:          []segment.Condition{segment.FlagIs("churned", true)},
					WithAverages:    true,
					WithLostBalance: true,
				}
			},
		},
	}
}

// Names returns the query names in report order.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, q := range all {
		names[i] = q.Name
	}
	return names
}

// ByName resolves a single query by its name.
func ByName(name string) (Query, error) {
	for _, q := range All() {
		if q.Name == name {
			return q, nil
		}
	}
	return Query{}, fmt.Errorf("unknown query %q, have %v", name, Names())
}
