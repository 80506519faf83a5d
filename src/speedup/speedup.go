// Package speedup draws the speedup-only charts for the conventional pair of
// benchmark files in a results directory:
//
//	thread_scaling_<n>gram.csv     -> scaling_speedup.png
//	workload_<n>gram_t<threads>.csv -> workload_speedup.png
//
// A file that does not exist is skipped with a warning.
package speedup

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/iafilius/BenchmarkPlotter/src/logging"
	"github.com/iafilius/BenchmarkPlotter/src/table"
	"github.com/iafilius/BenchmarkPlotter/src/types"
)

// Charts are 10x6 inches at 100 dpi.
const (
	figWidth  = 10 * vg.Inch
	figHeight = 6 * vg.Inch
	dpi       = 100
)

// Job is one input file and the chart drawn from it.
type Job struct {
	Mode   types.Mode
	CSV    string
	Output string
	Title  string
	XLabel string
}

// Jobs returns the scaling and workload jobs for an n-gram size and thread
// count, in that order.
func Jobs(ngram, threads int, resultsDir string) []Job {
	return []Job{
		{
			Mode:   types.ModeScaling,
			CSV:    filepath.Join(resultsDir, fmt.Sprintf("thread_scaling_%dgram.csv", ngram)),
			Output: filepath.Join(resultsDir, "scaling_speedup.png"),
			Title:  "Scaling Test: Speedup vs Threads",
			XLabel: "Number of Threads",
		},
		{
			Mode:   types.ModeWorkload,
			CSV:    filepath.Join(resultsDir, fmt.Sprintf("workload_%dgram_t%d.csv", ngram, threads)),
			Output: filepath.Join(resultsDir, "workload_speedup.png"),
			Title:  "Workload Test: Speedup vs Workload",
			XLabel: "Workload Multiplier",
		},
	}
}

// Run draws every job whose CSV exists and reports progress to w. It returns
// the paths written. Missing inputs are not an error; unreadable or malformed
// ones are.
func Run(ngram, threads int, resultsDir string, w io.Writer) ([]string, error) {
	defer logging.TimeTrack(time.Now(), "speedup charts")
	if ngram <= 0 || threads <= 0 {
		return nil, fmt.Errorf("ngram and threads must be positive, got %d and %d", ngram, threads)
	}
	var written []string
	for _, job := range Jobs(ngram, threads, resultsDir) {
		tbl, err := table.Load(job.CSV, job.Mode)
		if errors.Is(err, table.ErrMissingFile) {
			logging.Warnf("%s not found, skipping %s chart", job.CSV, job.Mode)
			fmt.Fprintf(w, "⚠ File %s not found, skipping the %s test.\n", job.CSV, job.Mode)
			continue
		}
		if err != nil {
			return written, err
		}
		if err := os.MkdirAll(resultsDir, 0o755); err != nil {
			return written, fmt.Errorf("create results dir: %w", err)
		}
		if err := Plot(tbl, job, types.SpeedupStyles); err != nil {
			return written, err
		}
		fmt.Fprintf(w, "✓ Speedup plot saved to: %s\n", job.Output)
		written = append(written, job.Output)
	}
	fmt.Fprintln(w, "✓ All speedup plots completed.")
	return written, nil
}

// Plot draws the speedup of every strategy in tbl against the job's x column
// and saves it as a PNG at job.Output.
func Plot(tbl *types.MeasurementTable, job Job, styles types.StyleTable) error {
	p := plot.New()
	p.Title.Text = job.Title
	p.X.Label.Text = job.XLabel
	p.Y.Label.Text = "Speedup"
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	p.Legend.Left = true

	for _, g := range table.GroupByStrategy(tbl.Rows, job.Mode) {
		xs := g.XValues(job.Mode)
		ys := g.Values(table.Speedup)
		pts := make(plotter.XYs, len(xs))
		for i := range xs {
			pts[i].X = xs[i]
			pts[i].Y = ys[i]
		}
		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return fmt.Errorf("%s series %q: %w", job.Mode, g.Strategy, err)
		}
		applyStyle(line, points, styles.Lookup(g.Strategy))
		p.Add(line, points)
		p.Legend.Add(g.Strategy, line, points)
	}
	return save(p, job.Output)
}

func save(p *plot.Plot, path string) error {
	c := vgimg.NewWith(vgimg.UseWH(figWidth, figHeight), vgimg.UseDPI(dpi))
	p.Draw(draw.New(c))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

var glyphs = map[types.Marker]draw.GlyphDrawer{
	types.MarkerCircle:   draw.CircleGlyph{},
	types.MarkerCross:    draw.CrossGlyph{},
	types.MarkerSquare:   draw.BoxGlyph{},
	types.MarkerTriangle: draw.TriangleGlyph{},
}

var dashes = map[types.LineStyle][]vg.Length{
	types.LineDashed:  {vg.Points(6), vg.Points(3)},
	types.LineDotted:  {vg.Points(1.5), vg.Points(2.5)},
	types.LineDashDot: {vg.Points(6), vg.Points(2), vg.Points(1.5), vg.Points(2)},
}

func applyStyle(line *plotter.Line, points *plotter.Scatter, s types.StrategyStyle) {
	col := s.RGBA()
	line.Color = col
	line.Width = vg.Points(1.5)
	line.Dashes = dashes[s.LineStyle]
	points.Color = col
	points.Radius = vg.Points(3)
	if g, ok := glyphs[s.Marker]; ok {
		points.Shape = g
	} else {
		points.Shape = draw.CircleGlyph{}
	}
}
