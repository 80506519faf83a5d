// Package render turns a benchmark CSV into PNG charts. The file name selects
// the chart set: thread-scaling files get speedup, efficiency, time and a
// max-thread comparison; workload files get speedup, time and efficiency
// against the workload multiplier.
package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/iafilius/BenchmarkPlotter/src/config"
	"github.com/iafilius/BenchmarkPlotter/src/logging"
	"github.com/iafilius/BenchmarkPlotter/src/report"
	"github.com/iafilius/BenchmarkPlotter/src/table"
	"github.com/iafilius/BenchmarkPlotter/src/types"
)

// Result lists what a Render call produced.
type Result struct {
	Mode    types.Mode
	OutDir  string
	Charts  []string
	Summary string
}

// Render validates csvPath, loads it and writes the chart set for its mode.
// Nothing is written when the file is missing or its name is unrecognized.
func Render(csvPath string, opts config.Options) (*Result, error) {
	defer logging.TimeTrack(time.Now(), "render "+csvPath)
	if _, err := os.Stat(csvPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingFile, csvPath)
		}
		return nil, err
	}
	mode, err := DetectMode(csvPath)
	if err != nil {
		return nil, err
	}
	tbl, err := table.Load(csvPath, mode)
	if err != nil {
		return nil, err
	}
	outDir := opts.OutDir
	if outDir == "" {
		outDir = filepath.Join(filepath.Dir(csvPath), config.PlotsDirName)
	}
	r := NewRenderer(outDir, opts)
	res := &Result{Mode: mode, OutDir: outDir}
	switch mode {
	case types.ModeScaling:
		res.Charts, err = r.Scaling(tbl)
	case types.ModeWorkload:
		res.Charts, err = r.Workload(tbl)
	}
	if err != nil {
		return res, err
	}
	if opts.Summary {
		if res.Summary, err = report.Write(outDir, Stem(csvPath), tbl); err != nil {
			return res, err
		}
		logging.Infof("summary written to %s", res.Summary)
	}
	return res, nil
}

// Renderer draws charts of a fixed size into OutDir.
type Renderer struct {
	OutDir string
	Width  int
	Height int
	Styles types.StyleTable
}

// NewRenderer returns a Renderer using the report style table.
func NewRenderer(outDir string, opts config.Options) *Renderer {
	w, h := opts.Width, opts.Height
	if w <= 0 {
		w = config.DefaultWidth
	}
	if h <= 0 {
		h = config.DefaultHeight
	}
	return &Renderer{OutDir: outDir, Width: w, Height: h, Styles: types.ReportStyles}
}

func (r *Renderer) ensureDir() error {
	if err := os.MkdirAll(r.OutDir, 0o755); err != nil {
		return fmt.Errorf("create out dir: %w", err)
	}
	return nil
}

func (r *Renderer) chartPath(stem string, kind types.ChartKind) string {
	return filepath.Join(r.OutDir, types.ChartFileName(stem, kind))
}

// lineSpec describes one metric-vs-x chart.
type lineSpec struct {
	title  string
	xName  string
	yName  string
	metric func(types.MeasurementRow) float64
	logY   bool
	yRange *chart.ContinuousRange
	yTicks []chart.Tick
	refs   []chart.Series
}

// lineChart builds one series per strategy group followed by spec.refs.
func (r *Renderer) lineChart(groups []table.Group, mode types.Mode, spec lineSpec) *chart.Chart {
	var series []chart.Series
	var allX []float64
	for _, g := range groups {
		xs := g.XValues(mode)
		ys := g.Values(spec.metric)
		allX = append(allX, xs...)
		if spec.logY {
			xs, ys = logPoints(xs, ys)
		}
		if len(xs) == 0 {
			continue
		}
		if len(xs) == 1 {
			// a lone point still needs two values to form a series
			xs = append(xs, xs[0])
			ys = append(ys, ys[0])
		}
		series = append(series, chart.ContinuousSeries{
			Name:    g.Strategy,
			XValues: xs,
			YValues: ys,
			Style:   seriesStyle(r.Styles.Lookup(g.Strategy)),
		})
	}
	series = append(series, spec.refs...)
	ch := &chart.Chart{
		Title:      spec.title,
		Width:      r.Width,
		Height:     r.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      categoryAxis(spec.xName, allX),
		YAxis: chart.YAxis{
			Name:           spec.yName,
			Range:          spec.yRange,
			Ticks:          spec.yTicks,
			GridMajorStyle: gridStyle,
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(ch)}
	return ch
}

// referenceLine is a named straight segment from (x0,y0) to (x1,y1).
func referenceLine(name string, x0, y0, x1, y1 float64) chart.Series {
	return chart.ContinuousSeries{
		Name:    name,
		XValues: []float64{x0, x1},
		YValues: []float64{y0, y1},
		Style:   referenceStyle(),
	}
}

// percentAxis is [0,110] with ticks every 10, widened only when data
// exceeds it. The scaling efficiency line chart always uses [0,110].
func percentAxis(max float64) (*chart.ContinuousRange, []chart.Tick) {
	if max > 110 {
		return zeroBasedRange(max)
	}
	return &chart.ContinuousRange{Min: 0, Max: 110}, fixedTicks(0, 110, 10)
}
