package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/decodinggithub/Barclays-Customer-Churn-Analysis-Retention-Gap-Insights/domain/models"
)

// GenerateTable renders one aggregate result as a bordered terminal table.
// Counts stay numeric so the column aligns right, everything else is
// preformatted text.
func GenerateTable(res *models.Result) string {
	t := table.NewWriter()

	header := table.Row{}
	for _, col := range res.Columns() {
		header = append(header, col)
	}
	t.AppendHeader(header)

	for _, row := range res.Rows {
		cells := table.Row{}
		for _, label := range row.Labels {
			cells = append(cells, label)
		}
		cells = append(cells, row.TotalCustomers, row.ChurnedCustomers, fmt.Sprintf("%.2f", row.ChurnRate))
		for _, m := range measureStrings(res, row) {
			cells = append(cells, m)
		}
		t.AppendRows([]table.Row{cells})
	}

	t.SetStyle(table.StyleDefault)
	return t.Render()
}

// GenerateTableMarkdown renders the same result as a markdown table for
// pasting into reports.
func GenerateTableMarkdown(res *models.Result) string {
	buf := &strings.Builder{}
	cols := res.Columns()

	buf.WriteString("|")
	for _, col := range cols {
		fmt.Fprintf(buf, " %s |", col)
	}
	buf.WriteString("\n|")
	for range cols {
		buf.WriteString(" --- |")
	}
	buf.WriteString("\n")

	for _, row := range res.Rows {
		buf.WriteString("|")
		for _, cell := range rowStrings(res, row) {
			fmt.Fprintf(buf, " %s |", cell)
		}
		buf.WriteString("\n")
	}
	return buf.String()
}

// rowStrings flattens one row into cells matching Columns() order.
func rowStrings(res *models.Result, row models.AggregateRow) []string {
	cells := append([]string{}, row.Labels...)
	cells = append(cells,
		strconv.FormatInt(row.TotalCustomers, 10),
		strconv.FormatInt(row.ChurnedCustomers, 10),
		fmt.Sprintf("%.2f", row.ChurnRate))
	return append(cells, measureStrings(res, row)...)
}

func measureStrings(res *models.Result, row models.AggregateRow) []string {
	cells := []string{}
	if res.HasAverages {
		cells = append(cells, fmt.Sprintf("%.2f", row.AvgBalance), fmt.Sprintf("%.2f", row.AvgSalary))
	}
	if res.HasLostBalance {
		cells = append(cells, fmt.Sprintf("%.2f", row.LostBalance))
	}
	if res.HasBaseline {
		cells = append(cells, fmt.Sprintf("%+.2f", row.VsBaseline))
	}
	return cells
}

// FormatSummary is the one line profile logged after load.
func FormatSummary(s models.DatasetSummary) string {
	return fmt.Sprintf("%d customers, %d churned (%.2f%%), %d countries, avg age %.2f, avg balance %.2f",
		s.TotalCustomers, s.Churned, s.ChurnRate, s.Countries, s.AvgAge, s.AvgBalance)
}
