package segment

import (
	"fmt"
	"sort"
	"strings"

	"github.com/decodinggithub/Barclays-Customer-Churn-Analysis-Retention-Gap-Insights/domain/models"
)

// SortMode picks the output ordering of a result.
type SortMode int

const (
	// SortByKey orders by the composite key ascending, first bucketer then
	// second. Band, ntile and flag labels sort in their declared order,
	// numeric identity labels by value, string labels lexicographically.
	SortByKey SortMode = iota
	SortByChurnRateDesc
	SortByTotalDesc
)

// Spec describes one aggregation: which bucketers form the composite key,
// which records take part, and how rows are decorated and ordered. Passed
// explicitly, never held in ambient state.
type Spec struct {
	Bucketers       []Bucketer
	Filter          []Condition
	Baseline        *float64
	Sort            SortMode
	Rollup          bool
	WithAverages    bool
	WithLostBalance bool
}

const keySep = "\x1f"

// Aggregate partitions the filtered dataset by the composite key of the spec
// bucketers and computes per-partition churn statistics. Pure function of its
// inputs: no side effects, deterministic output, safe to call concurrently
// over the shared immutable dataset. With no bucketers it degenerates to a
// single scalar row over the filtered records.
func Aggregate(dataset []models.Customer, spec Spec) (*models.Result, error) {
	pred, err := compileFilter(spec.Filter)
	if err != nil {
		return nil, err
	}
	filtered := make([]models.Customer, 0, len(dataset))
	for _, c := range dataset {
		if pred(c) {
			filtered = append(filtered, c)
		}
	}

	result := &models.Result{
		HasAverages:    spec.WithAverages,
		HasLostBalance: spec.WithLostBalance,
		HasBaseline:    spec.Baseline != nil,
	}
	if spec.Baseline != nil {
		result.Baseline = *spec.Baseline
	}

	if spec.Rollup && len(spec.Bucketers) != 2 {
		return nil, fmt.Errorf("%w: rollup requires exactly two bucketers, got %d", ErrInvalidBucketer, len(spec.Bucketers))
	}

	if len(spec.Bucketers) == 0 {
		if len(filtered) == 0 {
			return nil, fmt.Errorf("scalar aggregate with no records after filter: %w", ErrDivisionUndefined)
		}
		var acc accum
		for _, c := range filtered {
			acc.add(c)
		}
		result.Rows = []models.AggregateRow{buildRow(nil, acc, spec)}
		return result, nil
	}

	labels := make([][]string, len(spec.Bucketers))
	orders := make([]map[string]int, len(spec.Bucketers))
	dims := make([]string, len(spec.Bucketers))
	for i, b := range spec.Bucketers {
		labs, order, err := b.labels(filtered)
		if err != nil {
			return nil, err
		}
		labels[i] = labs
		orders[i] = rankOf(order)
		dims[i] = b.Column()
	}
	result.Dimensions = dims

	if spec.Rollup {
		result.Rows = rollupRows(filtered, labels, orders, spec)
		return result, nil
	}

	groups := map[string]*group{}
	for ri, c := range filtered {
		labs := make([]string, len(spec.Bucketers))
		for bi := range spec.Bucketers {
			labs[bi] = labels[bi][ri]
		}
		key := strings.Join(labs, keySep)
		g, ok := groups[key]
		if !ok {
			g = &group{labels: labs}
			groups[key] = g
		}
		g.acc.add(c)
	}
	rows := make([]models.AggregateRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, buildRow(g.labels, g.acc, spec))
	}
	sortRows(rows, spec.Sort, orders)
	result.Rows = rows
	return result, nil
}

type group struct {
	labels []string
	acc    accum
}

type accum struct {
	total      int64
	churned    int64
	sumBalance float64
	sumSalary  float64
}

func (a *accum) add(c models.Customer) {
	a.total++
	if c.Churned {
		a.churned++
	}
	a.sumBalance += c.Balance
	a.sumSalary += c.EstimatedSalary
}

func buildRow(labels []string, a accum, spec Spec) models.AggregateRow {
	row := models.AggregateRow{
		Labels:           labels,
		TotalCustomers:   a.total,
		ChurnedCustomers: a.churned,
	}
	if a.total > 0 {
		row.ChurnRate = RoundTwo(100 * float64(a.churned) / float64(a.total))
		if spec.WithAverages {
			row.AvgBalance = RoundTwo(a.sumBalance / float64(a.total))
			row.AvgSalary = RoundTwo(a.sumSalary / float64(a.total))
		}
	}
	if spec.WithLostBalance {
		row.LostBalance = RoundTwo(a.sumBalance)
	}
	if spec.Baseline != nil {
		row.VsBaseline = RoundTwo(row.ChurnRate - *spec.Baseline)
	}
	return row
}

// rollupRows emits the fixed two-dimension rollup: leaf rows, per-dim1
// subtotals with dim2 marked ALL, per-dim2 subtotals with dim1 marked ALL,
// and one grand total. Subtotals are re-accumulated from records, not summed
// from leaf rows, so averages stay exact.
func rollupRows(filtered []models.Customer, labels [][]string, orders []map[string]int, spec Spec) []models.AggregateRow {
	leaves := map[string]*group{}
	d1 := map[string]*group{}
	d2 := map[string]*group{}
	var grand accum
	for ri, c := range filtered {
		l0, l1 := labels[0][ri], labels[1][ri]

		key := l0 + keySep + l1
		g, ok := leaves[key]
		if !ok {
			g = &group{labels: []string{l0, l1}}
			leaves[key] = g
		}
		g.acc.add(c)

		g, ok = d1[l0]
		if !ok {
			g = &group{labels: []string{l0, models.RollupAll}}
			d1[l0] = g
		}
		g.acc.add(c)

		g, ok = d2[l1]
		if !ok {
			g = &group{labels: []string{models.RollupAll, l1}}
			d2[l1] = g
		}
		g.acc.add(c)

		grand.add(c)
	}

	rows := make([]models.AggregateRow, 0, len(leaves)+len(d1)+len(d2)+1)
	rows = append(rows, sortedGroupRows(leaves, spec, spec.Sort, orders)...)
	rows = append(rows, sortedGroupRows(d1, spec, SortByKey, orders)...)
	rows = append(rows, sortedGroupRows(d2, spec, SortByKey, orders)...)
	if grand.total > 0 {
		rows = append(rows, buildRow([]string{models.RollupAll, models.RollupAll}, grand, spec))
	}
	return rows
}

func sortedGroupRows(groups map[string]*group, spec Spec, mode SortMode, orders []map[string]int) []models.AggregateRow {
	rows := make([]models.AggregateRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, buildRow(g.labels, g.acc, spec))
	}
	sortRows(rows, mode, orders)
	return rows
}

func sortRows(rows []models.AggregateRow, mode SortMode, orders []map[string]int) {
	sort.SliceStable(rows, func(i, j int) bool {
		switch mode {
		case SortByChurnRateDesc:
			if rows[i].ChurnRate != rows[j].ChurnRate {
				return rows[i].ChurnRate > rows[j].ChurnRate
			}
		case SortByTotalDesc:
			if rows[i].TotalCustomers != rows[j].TotalCustomers {
				return rows[i].TotalCustomers > rows[j].TotalCustomers
			}
		}
		return lessByKey(rows[i].Labels, rows[j].Labels, orders)
	})
}

// lessByKey compares composite keys dimension by dimension. The ALL marker of
// rollup subtotals sorts after every real label so subtotal blocks read below
// their leaves.
func lessByKey(a, b []string, orders []map[string]int) bool {
	for d := 0; d < len(a) && d < len(b); d++ {
		if a[d] == b[d] {
			continue
		}
		if a[d] == models.RollupAll || b[d] == models.RollupAll {
			return b[d] == models.RollupAll
		}
		if d < len(orders) && orders[d] != nil {
			ra, oka := orders[d][a[d]]
			rb, okb := orders[d][b[d]]
			if oka && okb {
				if ra != rb {
					return ra < rb
				}
				continue
			}
			if oka != okb {
				return oka
			}
		}
		return a[d] < b[d]
	}
	return false
}

func rankOf(order []string) map[string]int {
	if order == nil {
		return nil
	}
	ranks := make(map[string]int, len(order))
	for i, label := range order {
		ranks[label] = i
	}
	return ranks
}
