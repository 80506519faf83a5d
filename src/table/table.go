// Package table loads benchmark CSV files into a MeasurementTable and provides
// the grouping and selection helpers the renderers need.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/iafilius/BenchmarkPlotter/src/logging"
	"github.com/iafilius/BenchmarkPlotter/src/types"
)

var (
	ErrMissingFile   = errors.New("file not found")
	ErrMissingColumn = errors.New("missing required column")
	ErrBadValue      = errors.New("malformed value")
	ErrEmptyTable    = errors.New("no data rows")
	ErrMixedThreads  = errors.New("workload rows do not share one thread count")
)

// Load reads the CSV at path. Columns are matched by header name, so order
// does not matter and extra columns are ignored.
func Load(path string, mode types.Mode) (*types.MeasurementTable, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingFile, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	rows, err := Parse(f, mode)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logging.Debugf("loaded %d %s rows from %s", len(rows), mode, path)
	return &types.MeasurementTable{Path: path, Mode: mode, Rows: rows}, nil
}

// Parse decodes CSV rows from r.
func Parse(r io.Reader, mode types.Mode) ([]types.MeasurementRow, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyTable
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := map[string]int{}
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		idx[strings.TrimSpace(h)] = i
	}
	for _, c := range mode.RequiredColumns() {
		if _, ok := idx[c]; !ok {
			return nil, fmt.Errorf("%w %q", ErrMissingColumn, c)
		}
	}

	var rows []types.MeasurementRow
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		cell := func(col string) (string, error) {
			i := idx[col]
			if i >= len(rec) {
				return "", fmt.Errorf("%w: line %d column %s: short record", ErrBadValue, line, col)
			}
			return strings.TrimSpace(rec[i]), nil
		}
		num := func(col string) (float64, error) {
			s, err := cell(col)
			if err != nil {
				return 0, err
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, fmt.Errorf("%w: line %d column %s: %q", ErrBadValue, line, col, s)
			}
			return v, nil
		}

		var row types.MeasurementRow
		if row.Strategy, err = cell(types.ColStrategy); err != nil {
			return nil, err
		}
		th, err := cell(types.ColThreads)
		if err != nil {
			return nil, err
		}
		if row.Threads, err = strconv.Atoi(th); err != nil || row.Threads <= 0 {
			return nil, fmt.Errorf("%w: line %d column %s: %q", ErrBadValue, line, types.ColThreads, th)
		}
		if mode == types.ModeWorkload {
			if row.Multiplier, err = num(types.ColMultiplier); err != nil {
				return nil, err
			}
		}
		if row.Speedup, err = num(types.ColSpeedup); err != nil {
			return nil, err
		}
		if row.EfficiencyPercent, err = num(types.ColEfficiency); err != nil {
			return nil, err
		}
		if row.TimeSeconds, err = num(types.ColTime); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyTable
	}
	return rows, nil
}

// Group is the rows of one strategy, ascending by the mode's x value.
type Group struct {
	Strategy string
	Rows     []types.MeasurementRow
}

// XValues returns the group's independent variable per row.
func (g Group) XValues(mode types.Mode) []float64 {
	xs := make([]float64, len(g.Rows))
	for i, r := range g.Rows {
		xs[i] = mode.XValue(r)
	}
	return xs
}

// Values returns one metric per row.
func (g Group) Values(metric func(types.MeasurementRow) float64) []float64 {
	ys := make([]float64, len(g.Rows))
	for i, r := range g.Rows {
		ys[i] = metric(r)
	}
	return ys
}

// GroupByStrategy splits rows by strategy in first-appearance order. Each
// group is a copy, stably sorted ascending by the mode's x value.
func GroupByStrategy(rows []types.MeasurementRow, mode types.Mode) []Group {
	var groups []Group
	pos := map[string]int{}
	for _, r := range rows {
		i, ok := pos[r.Strategy]
		if !ok {
			i = len(groups)
			pos[r.Strategy] = i
			groups = append(groups, Group{Strategy: r.Strategy})
		}
		groups[i].Rows = append(groups[i].Rows, r)
	}
	for _, g := range groups {
		sort.SliceStable(g.Rows, func(a, b int) bool {
			return mode.XValue(g.Rows[a]) < mode.XValue(g.Rows[b])
		})
	}
	return groups
}

// MaxThreads returns the largest thread count and the rows measured at it,
// in input order.
func MaxThreads(rows []types.MeasurementRow) (int, []types.MeasurementRow) {
	max := 0
	for _, r := range rows {
		if r.Threads > max {
			max = r.Threads
		}
	}
	var at []types.MeasurementRow
	for _, r := range rows {
		if r.Threads == max {
			at = append(at, r)
		}
	}
	return max, at
}

// FixedThreads returns the thread count shared by every row of a workload
// table.
func FixedThreads(rows []types.MeasurementRow) (int, error) {
	if len(rows) == 0 {
		return 0, ErrEmptyTable
	}
	n := rows[0].Threads
	for i, r := range rows[1:] {
		if r.Threads != n {
			return 0, fmt.Errorf("%w: row 1 has %d, row %d has %d", ErrMixedThreads, n, i+2, r.Threads)
		}
	}
	return n, nil
}

// Bounds returns min and max over all groups for xs and for ys of metric.
func Bounds(groups []Group, mode types.Mode, metric func(types.MeasurementRow) float64) (minX, maxX, minY, maxY float64) {
	first := true
	for _, g := range groups {
		for _, r := range g.Rows {
			x, y := mode.XValue(r), metric(r)
			if first {
				minX, maxX, minY, maxY = x, x, y, y
				first = false
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	return
}

// Metric accessors.
func Speedup(r types.MeasurementRow) float64    { return r.Speedup }
func Efficiency(r types.MeasurementRow) float64 { return r.EfficiencyPercent }
func Time(r types.MeasurementRow) float64       { return r.TimeSeconds }
