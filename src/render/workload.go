package render

import (
	"fmt"

	"github.com/iafilius/BenchmarkPlotter/src/logging"
	"github.com/iafilius/BenchmarkPlotter/src/table"
	"github.com/iafilius/BenchmarkPlotter/src/types"
)

const multiplierAxisName = "Workload Multiplier"

// Workload writes the speedup, time and efficiency charts of a workload
// table. Every row must share one thread count; it is printed on each chart.
func (r *Renderer) Workload(tbl *types.MeasurementTable) ([]string, error) {
	threads, err := table.FixedThreads(tbl.Rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", tbl.Path, err)
	}
	if err := r.ensureDir(); err != nil {
		return nil, err
	}
	stem := Stem(tbl.Path)
	groups := table.GroupByStrategy(tbl.Rows, types.ModeWorkload)
	_, _, _, maxSpeedup := table.Bounds(groups, types.ModeWorkload, table.Speedup)
	_, _, _, maxTime := table.Bounds(groups, types.ModeWorkload, table.Time)
	_, _, _, maxEff := table.Bounds(groups, types.ModeWorkload, table.Efficiency)

	speedRange, speedTicks := zeroBasedRange(maxSpeedup)
	timeRange, timeTicks := zeroBasedRange(maxTime)
	effRange, effTicks := percentAxis(maxEff)
	note := fmt.Sprintf("Fixed threads: %d", threads)
	suffix := fmt.Sprintf(" (%d threads)", threads)

	lines := []struct {
		kind types.ChartKind
		spec lineSpec
	}{
		{types.ChartSpeedup, lineSpec{
			title:  "Speedup vs Workload" + suffix,
			xName:  multiplierAxisName,
			yName:  "Speedup",
			metric: table.Speedup,
			yRange: speedRange,
			yTicks: speedTicks,
		}},
		{types.ChartTime, lineSpec{
			title:  "Execution Time vs Workload" + suffix,
			xName:  multiplierAxisName,
			yName:  "Time (s)",
			metric: table.Time,
			yRange: timeRange,
			yTicks: timeTicks,
		}},
		{types.ChartEfficiency, lineSpec{
			title:  "Efficiency vs Workload" + suffix,
			xName:  multiplierAxisName,
			yName:  "Efficiency (%)",
			metric: table.Efficiency,
			yRange: effRange,
			yTicks: effTicks,
		}},
	}

	var out []string
	for _, l := range lines {
		img, err := renderImage(r.lineChart(groups, types.ModeWorkload, l.spec))
		if err != nil {
			return out, fmt.Errorf("render %s chart: %w", l.kind, err)
		}
		path := r.chartPath(stem, l.kind)
		if err := writeImage(path, drawNote(img, note)); err != nil {
			return out, err
		}
		logging.Infof("saved %s chart: %s", l.kind, path)
		out = append(out, path)
	}
	return out, nil
}
