package plot

import "github.com/wcharczuk/go-chart/v2"

type dataForGraph interface {
	graphName() string
	yAxisName() string
	barValues() []chart.Value
	gridTicks() ([]chart.Tick, float64)
	chartDimensions(minBarWidth float64) (width, height int)
}
