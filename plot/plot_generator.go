package plot

import (
	"bytes"
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/decodinggithub/Barclays-Customer-Churn-Analysis-Retention-Gap-Insights/domain/models"
)

// RatePNG renders churn rate bars for one grouped result.
func RatePNG(title string, res *models.Result) ([]byte, error) {
	labels, rates := resultSeries(res)
	if len(labels) == 0 {
		return nil, fmt.Errorf("no rows to plot for %q", title)
	}
	return DrawPlotBar(newRateBars(title, labels, rates))
}

// CountPNG renders segment sizes for the same result, the companion chart
// that tells a 100% rate on one customer from a real signal.
func CountPNG(title string, res *models.Result) ([]byte, error) {
	labels, counts := resultCounts(res)
	if len(labels) == 0 {
		return nil, fmt.Errorf("no rows to plot for %q", title)
	}
	return DrawPlotBar(newCountBars(title, labels, counts))
}

// DrawPlotBar renders one bar chart to PNG bytes.
func DrawPlotBar(data dataForGraph) ([]byte, error) {
	barValues := data.barValues()
	paddingX := customizePaddingXBottom(barValues)
	width, height := data.chartDimensions(100)
	ticks, maxY := data.gridTicks()

	bar := chart.BarChart{}
	bar.Title = data.graphName()
	bar.Background = chart.Style{
		StrokeColor: chart.ColorBlack,
		Padding: chart.Box{
			Bottom: paddingX,
			Top:    50,
		},
	}
	bar.Height = height + 50
	bar.Width = width + paddingX + 50
	bar.BarWidth = 60
	bar.Bars = barValues
	bar.YAxis = chart.YAxis{
		Name: data.yAxisName(),
		Range: &chart.ContinuousRange{
			Min: 0.0,
			Max: maxY,
		},
		Style: chart.Style{
			StrokeWidth: 2,
			StrokeColor: chart.ColorBlack,
			FontSize:    17,
		},
		Ticks: ticks,
		GridMinorStyle: chart.Style{
			StrokeColor: chart.ColorBlack,
			StrokeWidth: 1,
			DotWidth:    1,
		},
		GridMajorStyle: chart.Style{
			StrokeColor:     chart.ColorBlack,
			StrokeWidth:     1,
			DotWidth:        1,
			StrokeDashArray: []float64{5.0, 5.0},
		},
	}
	bar.XAxis = chart.Style{
		StrokeWidth:         2,
		StrokeColor:         chart.ColorBlack,
		TextRotationDegrees: 88,
		FontSize:            17,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := bar.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("error rendering chart: %v", err)
	}
	return buffer.Bytes(), nil
}

// calculateGridStep picks a grid step from the magnitude of the largest
// value, keeping between 3 and 10 lines on any axis.
func calculateGridStep(maxValue float64) float64 {
	if maxValue <= 0 {
		return 0
	}
	if maxValue < 1e-10 {
		return 1e-10
	}

	magnitude := math.Pow(10, math.Floor(math.Log10(maxValue)))
	normalized := maxValue / magnitude

	switch {
	case normalized <= 1:
		return 0.2 * magnitude
	case normalized <= 2:
		return 0.5 * magnitude
	case normalized <= 5:
		return 1.0 * magnitude
	default:
		return 2.0 * magnitude
	}
}

func customizePaddingXBottom(values []chart.Value) int {
	count := 0
	for _, v := range values {
		if len(v.Label) > count {
			count = len(v.Label)
		}
	}
	return count * 8
}
