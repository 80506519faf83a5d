package render

import (
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/iafilius/BenchmarkPlotter/src/types"
)

var (
	gridStyle = chart.Style{StrokeColor: drawing.Color{R: 225, G: 225, B: 225, A: 255}, StrokeWidth: 1}
	refColor  = drawing.Color{R: 110, G: 110, B: 110, A: 255}
)

// hexColor converts "#rrggbb" into a drawing color.
func hexColor(hex string) drawing.Color {
	c := types.HexColor(hex)
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

// go-chart only draws round dots, so the marker is expressed through the dot
// size: crosses are small, squares large.
var markerDotWidth = map[types.Marker]float64{
	types.MarkerCircle:   5,
	types.MarkerSquare:   6,
	types.MarkerTriangle: 5,
	types.MarkerCross:    3,
}

var dashArrays = map[types.LineStyle][]float64{
	types.LineDashed:  {8, 4},
	types.LineDotted:  {2, 3},
	types.LineDashDot: {8, 3, 2, 3},
}

// seriesStyle builds the line-and-dot style for one strategy series.
func seriesStyle(s types.StrategyStyle) chart.Style {
	col := hexColor(s.Color)
	dot, ok := markerDotWidth[s.Marker]
	if !ok {
		dot = markerDotWidth[types.MarkerCircle]
	}
	return chart.Style{
		StrokeColor:     col,
		StrokeWidth:     2,
		StrokeDashArray: dashArrays[s.LineStyle],
		DotColor:        col,
		DotWidth:        dot,
	}
}

// referenceStyle is the dashed gray line used for ideal curves.
func referenceStyle() chart.Style {
	return chart.Style{
		StrokeColor:     refColor,
		StrokeWidth:     1.5,
		StrokeDashArray: []float64{6, 4},
	}
}

// barStyle fills a bar with the strategy color.
func barStyle(s types.StrategyStyle) chart.Style {
	col := hexColor(s.Color)
	return chart.Style{FillColor: col, StrokeColor: col, StrokeWidth: 1}
}
