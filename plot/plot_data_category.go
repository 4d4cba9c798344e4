package plot

import (
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// dataCategoryForGraph backs bar charts over a categorical dimension:
// error types, states, products, satisfaction scores.
type dataCategoryForGraph struct {
	labels    []string
	yValues   []float64
	nameYAxis string
	nameGraph string
}

func NewCategoryData(labels []string, y []float64, nameYAxis, nameGraph string) dataCategoryForGraph {
	return dataCategoryForGraph{
		labels:    labels,
		yValues:   y,
		nameYAxis: nameYAxis,
		nameGraph: nameGraph,
	}
}

func (d dataCategoryForGraph) GetNameGraph() string {
	return d.nameGraph
}
func (d dataCategoryForGraph) getNameYAxis() string {
	return d.nameYAxis
}
func (d dataCategoryForGraph) getYValues() []float64 {
	return d.yValues
}

func (d dataCategoryForGraph) calculateChartDimensions(minBarWidth float64) (width, height int) {
	if len(d.yValues) == 0 {
		return 0, 0
	}
	return calculateBarDimensions(len(d.labels), minBarWidth)
}

func (d dataCategoryForGraph) generateBarValues() []chart.Value {
	var bars []chart.Value
	for i, label := range d.labels {
		bars = append(bars, chart.Value{
			Value: d.yValues[i],
			Label: label,
			Style: chart.Style{
				FillColor: drawing.ColorPurple.WithAlpha(100),
			},
		})
	}
	return bars
}
