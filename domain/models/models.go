package models

// StagingTableName is the name of a MySQL table produced by the staging import.
type StagingTableName string

// Customer is one row of the churn table, immutable after load.
type Customer struct {
	ID              int64
	CreditScore     int
	Country         string
	Gender          string
	Age             int
	Tenure          int // years with the bank
	Balance         float64
	ProductsNumber  int
	HasCreditCard   bool
	IsActive        bool
	EstimatedSalary float64
	Churned         bool
}

// CustomerColumns lists the canonical input columns in table order.
var CustomerColumns = []string{
	"id",
	"credit_score",
	"country",
	"gender",
	"age",
	"tenure",
	"balance",
	"products_number",
	"has_credit_card",
	"is_active",
	"estimated_salary",
	"churned",
}

// Output column names, fixed for downstream table and chart binding.
const (
	ColTotalCustomers   = "total_customers"
	ColChurnedCustomers = "churned_customers"
	ColChurnRate        = "churn_rate"
	ColAvgBalance       = "avg_balance"
	ColAvgSalary        = "avg_salary"
	ColLostBalance      = "lost_balance"
	ColVsBaseline       = "vs_baseline"
)

// RollupAll marks a dimension folded away in a rollup subtotal row.
const RollupAll = "ALL"

// AggregateRow is one computed segment row. Labels is parallel to the
// result's Dimensions; counts and rates are final, never recomputed.
type AggregateRow struct {
	Labels           []string
	TotalCustomers   int64
	ChurnedCustomers int64
	ChurnRate        float64 // percent, two decimals
	AvgBalance       float64
	AvgSalary        float64
	LostBalance      float64
	VsBaseline       float64 // percentage points against the supplied baseline
}

// Result is an ordered set of aggregate rows plus the flags telling
// consumers which optional columns are populated.
type Result struct {
	Dimensions     []string
	Rows           []AggregateRow
	HasAverages    bool
	HasLostBalance bool
	HasBaseline    bool
	Baseline       float64
}

// Columns returns the output header for this result: dimension names
// followed by the populated measure columns.
func (r *Result) Columns() []string {
	cols := append([]string{}, r.Dimensions...)
	cols = append(cols, ColTotalCustomers, ColChurnedCustomers, ColChurnRate)
	if r.HasAverages {
		cols = append(cols, ColAvgBalance, ColAvgSalary)
	}
	if r.HasLostBalance {
		cols = append(cols, ColLostBalance)
	}
	if r.HasBaseline {
		cols = append(cols, ColVsBaseline)
	}
	return cols
}

// DatasetSummary is the profile logged after load.
type DatasetSummary struct {
	TotalCustomers int64
	Churned        int64
	ChurnRate      float64
	Countries      int
	AvgAge         float64
	AvgBalance     float64
	AvgSalary      float64
}
