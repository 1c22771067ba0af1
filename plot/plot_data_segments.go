package plot

import (
	"fmt"
	"math"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/decodinggithub/Barclays-Customer-Churn-Analysis-Retention-Gap-Insights/domain/models"
)

// segmentBars is the bar data behind every PNG chart: one bar per segment
// label, y axis either a percent rate or a customer count.
type segmentBars struct {
	title      string
	yAxis      string
	tickFormat string
	labels     []string
	values     []float64
}

func newRateBars(title string, labels []string, rates []float64) segmentBars {
	return segmentBars{
		title:      title,
		yAxis:      "churn rate %",
		tickFormat: "%.1f",
		labels:     labels,
		values:     rates,
	}
}

func newCountBars(title string, labels []string, counts []float64) segmentBars {
	return segmentBars{
		title:      title,
		yAxis:      "customers",
		tickFormat: "%.0f",
		labels:     labels,
		values:     counts,
	}
}

func (d segmentBars) graphName() string {
	return d.title
}

func (d segmentBars) yAxisName() string {
	return d.yAxis
}

func (d segmentBars) maxValue() float64 {
	if len(d.values) == 0 {
		return 0
	}
	max := d.values[0]
	for _, v := range d.values {
		if v > max {
			max = v
		}
	}
	return max
}

func (d segmentBars) barValues() []chart.Value {
	var bars []chart.Value
	for i := range d.labels {
		bars = append(bars, chart.Value{
			Value: d.values[i],
			Label: d.labels[i],
			Style: chart.Style{
				FillColor: drawing.ColorPurple.WithAlpha(100),
			},
		})
	}
	return bars
}

// gridTicks lays a grid over the y axis, step picked from the magnitude of
// the largest value. Returns the ticks and the rounded-up axis maximum.
func (d segmentBars) gridTicks() ([]chart.Tick, float64) {
	max := d.maxValue()
	step := calculateGridStep(max)
	if step <= 0 {
		return nil, 1
	}
	maxY := math.Ceil(max/step) * step
	if maxY <= 0 {
		maxY = step
	}
	var ticks []chart.Tick
	for v := 0.0; v <= maxY+step/2; v += step {
		ticks = append(ticks, chart.Tick{
			Value: v,
			Label: fmt.Sprintf(d.tickFormat, v),
		})
	}
	return ticks, maxY
}

// chartDimensions sizes the canvas from the bar count. Small charts get a
// wider multiplier so two or three bars do not collapse into a stripe.
func (d segmentBars) chartDimensions(minBarWidth float64) (width, height int) {
	if len(d.values) == 0 || minBarWidth <= 0 {
		return 0, 0
	}
	x := 1.1
	if len(d.values) < 2 {
		x = 10.0
	} else if len(d.values) < 10 {
		x = 3.0
	}

	const (
		paddingY     = 100
		spacingRatio = 0.2
		aspectRatio  = 9.0 / 16.0
	)

	barSpacing := minBarWidth * spacingRatio
	totalWidth := (minBarWidth+barSpacing)*float64(len(d.values)) + paddingY
	width = int(totalWidth*x) + paddingY
	height = int(float64(width) * aspectRatio)
	return width, height
}

// resultSeries flattens a grouped result into chart labels and churn rates.
func resultSeries(res *models.Result) ([]string, []float64) {
	labels := make([]string, 0, len(res.Rows))
	rates := make([]float64, 0, len(res.Rows))
	for _, row := range res.Rows {
		labels = append(labels, strings.Join(row.Labels, " / "))
		rates = append(rates, row.ChurnRate)
	}
	return labels, rates
}

func resultCounts(res *models.Result) ([]string, []float64) {
	labels := make([]string, 0, len(res.Rows))
	counts := make([]float64, 0, len(res.Rows))
	for _, row := range res.Rows {
		labels = append(labels, strings.Join(row.Labels, " / "))
		counts = append(counts, float64(row.TotalCustomers))
	}
	return labels, counts
}
