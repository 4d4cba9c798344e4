package plot

import (
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// dataDateForGraph backs the complaint count-by-period time series.
type dataDateForGraph struct {
	times     []time.Time
	yValues   []float64
	nameYAxis string
	nameGraph string
	period    string // year, month, day
}

func NewDateData(times []time.Time, y []float64, nameYAxis, nameGraph, period string) dataDateForGraph {
	return dataDateForGraph{
		times:     times,
		yValues:   y,
		nameYAxis: nameYAxis,
		nameGraph: nameGraph,
		period:    period,
	}
}

func (d dataDateForGraph) GetNameGraph() string {
	return d.nameGraph
}
func (d dataDateForGraph) getNameYAxis() string {
	return d.nameYAxis
}
func (d dataDateForGraph) getYValues() []float64 {
	return d.yValues
}

func (d dataDateForGraph) getDateLabels() []string {
	labels := make([]string, len(d.times))
	for i, t := range d.times {
		switch d.period {
		case "year":
			labels[i] = fmt.Sprintf("%d", t.Year())
		case "month":
			labels[i] = fmt.Sprintf("%d-%02d", t.Year(), t.Month())
		default:
			labels[i] = fmt.Sprintf("%d-%02d-%02d", t.Year(), t.Month(), t.Day())
		}
	}
	return labels
}

func (d dataDateForGraph) calculateChartDimensions(minBarWidth float64) (width, height int) {
	if len(d.yValues) == 0 {
		return 0, 0
	}
	return calculateBarDimensions(len(d.times), minBarWidth)
}

func (d dataDateForGraph) generateBarValues() []chart.Value {
	var bars []chart.Value
	for i, label := range d.getDateLabels() {
		bars = append(bars, chart.Value{
			Value: d.yValues[i],
			Label: label,
			Style: chart.Style{
				FillColor:         drawing.ColorLime.WithAlpha(40),
				TextVerticalAlign: 100,
			},
		})
	}
	return bars
}
