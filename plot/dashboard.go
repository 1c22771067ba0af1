package plot

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/decodinggithub/Barclays-Customer-Churn-Analysis-Retention-Gap-Insights/domain/models"
)

// ChartKind selects how a query result is drawn on the dashboard.
type ChartKind string

const (
	ChartBar ChartKind = "bar"
	ChartPie ChartKind = "pie"
)

// QueryChart is one chart slot on the dashboard page.
type QueryChart struct {
	Name   string
	Title  string
	Kind   ChartKind
	Result *models.Result
}

// ErrNoCharts reports a dashboard build where no item carried a drawable
// chart kind.
var ErrNoCharts = errors.New("no charted results to render")

// BuildDashboard renders every charted result onto one HTML page. Results
// with an unknown kind are skipped, so scalar and rollup queries can be
// passed in without filtering. When that leaves nothing to draw, nothing is
// written and ErrNoCharts comes back.
func BuildDashboard(w io.Writer, items []QueryChart) error {
	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	page.PageTitle = "Customer churn dashboard"

	added := 0
	for _, item := range items {
		if item.Result == nil || len(item.Result.Rows) == 0 {
			continue
		}
		switch item.Kind {
		case ChartBar:
			page.AddCharts(rateBarChart(item))
			added++
		case ChartPie:
			page.AddCharts(churnPieChart(item))
			added++
		}
	}
	if added == 0 {
		return ErrNoCharts
	}
	return page.Render(w)
}

func rateBarChart(item QueryChart) *charts.Bar {
	labels, rates := resultSeries(item.Result)

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		charts.WithTitleOpts(opts.Title{
			Title:    item.Title,
			Subtitle: fmt.Sprintf("%d segments", len(labels)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	data := make([]opts.BarData, 0, len(rates))
	for _, rate := range rates {
		data = append(data, opts.BarData{Value: rate})
	}
	bar.SetXAxis(labels).AddSeries("churn rate %", data)
	return bar
}

func churnPieChart(item QueryChart) *charts.Pie {
	labels, rates := resultSeries(item.Result)

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		charts.WithTitleOpts(opts.Title{Title: item.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	data := make([]opts.PieData, 0, len(labels))
	for i, label := range labels {
		data = append(data, opts.PieData{Name: label, Value: rates[i]})
	}
	pie.AddSeries(item.Name, data).SetSeriesOptions(
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {c}%"}),
	)
	return pie
}
