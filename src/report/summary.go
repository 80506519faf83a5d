// Package report writes a plain-text summary of a benchmark table: every row
// per strategy and the row with the best speedup.
package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/iafilius/BenchmarkPlotter/src/table"
	"github.com/iafilius/BenchmarkPlotter/src/types"
)

const rule = "==============================================="

// Write saves the summary of tbl as <dir>/<stem>_summary.txt and returns the
// path.
func Write(dir, stem string, tbl *types.MeasurementTable) (string, error) {
	var buf bytes.Buffer
	if err := Format(&buf, stem, tbl); err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create out dir: %w", err)
	}
	path := filepath.Join(dir, stem+"_summary.txt")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// Format writes the summary text to w.
func Format(w io.Writer, stem string, tbl *types.MeasurementTable) error {
	var b bytes.Buffer
	fmt.Fprintf(&b, "%s\nSUMMARY REPORT - %s (%s)\n%s\n", rule, stem, tbl.Mode, rule)
	for _, g := range table.GroupByStrategy(tbl.Rows, tbl.Mode) {
		fmt.Fprintf(&b, "\n--- %s ---\n", g.Strategy)
		best := g.Rows[0]
		for _, r := range g.Rows {
			if tbl.Mode == types.ModeWorkload {
				fmt.Fprintf(&b, "  Multiplier: %g | Threads: %2d", r.Multiplier, r.Threads)
			} else {
				fmt.Fprintf(&b, "  Threads: %2d", r.Threads)
			}
			fmt.Fprintf(&b, " | Time: %.4fs | Speedup: %.2f | Efficiency: %.1f%%\n", r.TimeSeconds, r.Speedup, r.EfficiencyPercent)
			if r.Speedup > best.Speedup {
				best = r
			}
		}
		if tbl.Mode == types.ModeWorkload {
			fmt.Fprintf(&b, "  → Best: multiplier %g (speedup: %.2fx)\n", best.Multiplier, best.Speedup)
		} else {
			fmt.Fprintf(&b, "  → Best: %d threads (speedup: %.2fx)\n", best.Threads, best.Speedup)
		}
	}
	_, err := w.Write(b.Bytes())
	return err
}
