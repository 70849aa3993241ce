package plot

import (
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// dataPanelForGraph carries one aggregated memorial panel: category
// labels on X, death counts on Y.
type dataPanelForGraph struct {
	categories []string
	counts     []int
	nameYAxis  string
	nameGraph  string
}

func NewDataPanelForGraph(categories []string, counts []int, nameYAxis, nameGraph string) dataPanelForGraph {
	return dataPanelForGraph{
		categories: categories,
		counts:     counts,
		nameYAxis:  nameYAxis,
		nameGraph:  nameGraph,
	}
}
func (d dataPanelForGraph) GetNameGraph() string {
	return d.nameGraph
}
func (d dataPanelForGraph) getNameYAxis() string {
	return d.nameYAxis
}
func (d dataPanelForGraph) getYValues() []float64 {
	values := make([]float64, len(d.counts))
	for i, count := range d.counts {
		values[i] = float64(count)
	}
	return values
}

func (d dataPanelForGraph) lenXValues() int {
	return len(d.categories)
}
func (d dataPanelForGraph) findMaxValue() float64 {
	max := 0.0
	for _, count := range d.counts {
		if float64(count) > max {
			max = float64(count)
		}
	}
	return max
}
func (d dataPanelForGraph) calculateChartDimensions(minBarWidth float64) (width, height int) {
	if len(d.counts) == 0 || d.lenXValues() <= 0 || minBarWidth <= 0 {
		return 0, 0
	}
	x := 1.1
	if d.lenXValues() < 2 {
		x = 10.0
	} else if d.lenXValues() < 10 {
		x = 3.0
	}

	const (
		paddingY     = 100
		spacingRatio = 0.2
		aspectRatio  = 9.0 / 16.0
	)

	barSpacing := minBarWidth * spacingRatio
	totalWidth := (minBarWidth+barSpacing)*float64(d.lenXValues()) + paddingY
	width = int(totalWidth*x) + paddingY
	height = int(float64(width) * aspectRatio)
	return width, height
}

func (d dataPanelForGraph) generateBarValues() []chart.Value {
	var bars []chart.Value
	yValues := d.getYValues()
	for i := 0; i < len(d.categories); i++ {
		bars = append(bars, chart.Value{
			Value: yValues[i],
			Label: d.categories[i],
			Style: chart.Style{
				FillColor: drawing.ColorPurple.WithAlpha(100),
			},
		})
	}
	return bars
}
