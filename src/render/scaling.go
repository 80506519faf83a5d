package render

import (
	"fmt"
	"image"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/iafilius/BenchmarkPlotter/src/logging"
	"github.com/iafilius/BenchmarkPlotter/src/table"
	"github.com/iafilius/BenchmarkPlotter/src/types"
)

const threadsAxisName = "Number of Threads"

// Scaling writes the speedup, efficiency, time and comparison charts of a
// thread-scaling table and returns their paths in that order.
func (r *Renderer) Scaling(tbl *types.MeasurementTable) ([]string, error) {
	if err := r.ensureDir(); err != nil {
		return nil, err
	}
	stem := Stem(tbl.Path)
	groups := table.GroupByStrategy(tbl.Rows, types.ModeScaling)
	minX, maxX, _, maxSpeedup := table.Bounds(groups, types.ModeScaling, table.Speedup)
	_, _, minTime, maxTime := table.Bounds(groups, types.ModeScaling, table.Time)

	speedRange, speedTicks := zeroBasedRange(math.Max(maxSpeedup, maxX))
	effRange, effTicks := &chart.ContinuousRange{Min: 0, Max: 110}, fixedTicks(0, 110, 10)
	timeRange, timeTicks := logAxis(minPositive(tbl.Rows, table.Time, minTime), maxTime)

	lines := []struct {
		kind types.ChartKind
		spec lineSpec
	}{
		{types.ChartSpeedup, lineSpec{
			title:  "Speedup vs Threads",
			xName:  threadsAxisName,
			yName:  "Speedup",
			metric: table.Speedup,
			yRange: speedRange,
			yTicks: speedTicks,
			refs:   []chart.Series{referenceLine("Ideal (linear)", minX, minX, maxX, maxX)},
		}},
		{types.ChartEfficiency, lineSpec{
			title:  "Efficiency vs Threads",
			xName:  threadsAxisName,
			yName:  "Efficiency (%)",
			metric: table.Efficiency,
			yRange: effRange,
			yTicks: effTicks,
			refs:   []chart.Series{referenceLine("Ideal (100%)", minX, 100, maxX, 100)},
		}},
		{types.ChartTime, lineSpec{
			title:  "Execution Time vs Threads",
			xName:  threadsAxisName,
			yName:  "Time (s, log scale)",
			metric: table.Time,
			logY:   true,
			yRange: timeRange,
			yTicks: timeTicks,
		}},
	}

	var out []string
	for _, l := range lines {
		path := r.chartPath(stem, l.kind)
		if err := writeChart(path, r.lineChart(groups, types.ModeScaling, l.spec)); err != nil {
			return out, err
		}
		logging.Infof("saved %s chart: %s", l.kind, path)
		out = append(out, path)
	}

	path, err := r.comparison(stem, tbl.Rows)
	if err != nil {
		return out, err
	}
	return append(out, path), nil
}

// comparison renders speedup and efficiency bars per strategy at the maximum
// thread count as two panels of one image.
func (r *Renderer) comparison(stem string, rows []types.MeasurementRow) (string, error) {
	panels := r.comparisonPanels(rows)
	imgs := make([]image.Image, 0, len(panels))
	for _, p := range panels {
		img, err := renderImage(p)
		if err != nil {
			return "", fmt.Errorf("render comparison panel %q: %w", p.Title, err)
		}
		imgs = append(imgs, img)
	}
	path := r.chartPath(stem, types.ChartComparison)
	if err := writeImage(path, sideBySide(imgs...)); err != nil {
		return "", err
	}
	logging.Infof("saved %s chart: %s", types.ChartComparison, path)
	return path, nil
}

// comparisonPanels builds the speedup and efficiency bar charts from the rows
// at the maximum thread count, each Width/2 wide.
func (r *Renderer) comparisonPanels(rows []types.MeasurementRow) []*chart.BarChart {
	maxThreads, at := table.MaxThreads(rows)
	panelW := r.Width / 2
	return []*chart.BarChart{
		r.barChart(fmt.Sprintf("Speedup at %d threads", maxThreads), "Speedup", at, table.Speedup, panelW, false),
		r.barChart(fmt.Sprintf("Efficiency at %d threads", maxThreads), "Efficiency (%)", at, table.Efficiency, panelW, true),
	}
}

func (r *Renderer) barChart(title, yName string, rows []types.MeasurementRow, metric func(types.MeasurementRow) float64, width int, percent bool) *chart.BarChart {
	bars := make([]chart.Value, 0, len(rows))
	maxV := 0.0
	for _, row := range rows {
		v := metric(row)
		bars = append(bars, chart.Value{
			Label: row.Strategy,
			Value: v,
			Style: barStyle(r.Styles.Lookup(row.Strategy)),
		})
		maxV = math.Max(maxV, v)
	}
	var (
		rng   *chart.ContinuousRange
		ticks []chart.Tick
	)
	if percent {
		rng, ticks = percentAxis(maxV)
	} else {
		rng, ticks = zeroBasedRange(maxV)
	}
	barW := width / (2*len(bars) + 1)
	if barW > 90 {
		barW = 90
	}
	if barW < 16 {
		barW = 16
	}
	return &chart.BarChart{
		Title:      title,
		Width:      width,
		Height:     r.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10}},
		BarWidth:   barW,
		BarSpacing: barW / 2,
		YAxis: chart.YAxis{
			Name:           yName,
			Range:          rng,
			Ticks:          ticks,
			GridMajorStyle: gridStyle,
		},
		Bars: bars,
	}
}

// minPositive returns the smallest positive metric value, or fallback when
// there is none.
func minPositive(rows []types.MeasurementRow, metric func(types.MeasurementRow) float64, fallback float64) float64 {
	min := math.Inf(1)
	for _, r := range rows {
		if v := metric(r); v > 0 && v < min {
			min = v
		}
	}
	if math.IsInf(min, 1) {
		return fallback
	}
	return min
}
