package render

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
)

// niceAxisBounds expands [min,max] by a small margin and rounds to "nice" numbers for readability.
func niceAxisBounds(min, max float64) (float64, float64) {
	if math.IsNaN(min) || math.IsNaN(max) {
		return min, max
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	pad := span * 0.05
	a := min - pad
	b := max + pad
	mag := math.Pow(10, math.Floor(math.Log10(span)))
	if !math.IsInf(mag, 0) && mag > 0 {
		a = math.Floor(a/mag) * mag
		b = math.Ceil(b/mag) * mag
	}
	return a, b
}

// zeroBasedRange anchors the axis at zero with a rounded top above max.
func zeroBasedRange(max float64) (*chart.ContinuousRange, []chart.Tick) {
	if max <= 0 || math.IsNaN(max) {
		max = 1
	}
	_, top := niceAxisBounds(0, max)
	ticks := niceTicks(0, top, 6)
	if n := len(ticks); n > 0 && ticks[n-1].Value > top {
		top = ticks[n-1].Value
	}
	return &chart.ContinuousRange{Min: 0, Max: top}, ticks
}

// niceTicks generates up to n desired tick marks between [min, max] using nice increments.
func niceTicks(min, max float64, n int) []chart.Tick {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) {
		return nil
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	// steps of 1, 2, 2.5, 5, 10 scaled by a power of 10
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	bestStep := mag
	bestScore := math.MaxFloat64
	for _, c := range []float64{1, 2, 2.5, 5, 10} {
		step := c * mag
		count := math.Ceil(span / step)
		if count < 2 {
			count = 2
		}
		if score := math.Abs(count - float64(n)); score < bestScore {
			bestScore = score
			bestStep = step
		}
	}
	start := math.Floor(min/bestStep) * bestStep
	end := math.Ceil(max/bestStep) * bestStep
	var ticks []chart.Tick
	for v := start; v <= end+bestStep/2; v += bestStep {
		ticks = append(ticks, chart.Tick{Value: v, Label: formatTick(v)})
		if len(ticks) > n+2 {
			break
		}
	}
	return ticks
}

// fixedTicks returns ticks every step over [min,max].
func fixedTicks(min, max, step float64) []chart.Tick {
	var ticks []chart.Tick
	for v := min; v <= max+step/2; v += step {
		ticks = append(ticks, chart.Tick{Value: v, Label: formatTick(v)})
	}
	return ticks
}

func formatTick(v float64) string {
	v = math.Round(v*1e9) / 1e9
	av := math.Abs(v)
	switch {
	case v == math.Trunc(v) || av >= 100:
		return fmt.Sprintf("%.0f", v)
	case av >= 10:
		return fmt.Sprintf("%.1f", v)
	case av >= 0.01:
		return trimZeros(fmt.Sprintf("%.2f", v))
	default:
		return strconv.FormatFloat(v, 'g', 2, 64)
	}
}

func trimZeros(s string) string {
	for len(s) > 1 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}

// categoryAxis places one labelled tick per distinct x value. go-chart takes
// the x range from the outermost ticks, so unlabelled ticks at both padded
// ends keep end points off the frame and give a single value some width.
func categoryAxis(name string, xs []float64) chart.XAxis {
	uniq := map[float64]bool{}
	var vals []float64
	for _, x := range xs {
		if !uniq[x] {
			uniq[x] = true
			vals = append(vals, x)
		}
	}
	sort.Float64s(vals)
	min, max := 0.0, 1.0
	if len(vals) > 0 {
		min, max = vals[0], vals[len(vals)-1]
	}
	pad := (max - min) * 0.04
	if pad == 0 {
		pad = 0.5
	}
	ticks := make([]chart.Tick, 0, len(vals)+2)
	ticks = append(ticks, chart.Tick{Value: min - pad})
	for _, v := range vals {
		ticks = append(ticks, chart.Tick{Value: v, Label: formatTick(v)})
	}
	ticks = append(ticks, chart.Tick{Value: max + pad})
	return chart.XAxis{
		Name:           name,
		Ticks:          ticks,
		Range:          &chart.ContinuousRange{Min: min - pad, Max: max + pad},
		GridMajorStyle: gridStyle,
	}
}

// logAxis maps positive values onto log10 space. Range is whole decades; when
// the data spans at most two decades the 2x and 5x marks are ticked as well.
// Ticks are labelled with the untransformed value.
func logAxis(min, max float64) (*chart.ContinuousRange, []chart.Tick) {
	if min <= 0 || math.IsNaN(min) {
		min = max
	}
	if max <= 0 || math.IsNaN(max) {
		return &chart.ContinuousRange{Min: 0, Max: 1}, []chart.Tick{{Value: 0, Label: "1"}, {Value: 1, Label: "10"}}
	}
	lo := math.Floor(math.Log10(min))
	hi := math.Ceil(math.Log10(max))
	if hi <= lo {
		hi = lo + 1
	}
	dense := hi-lo <= 2
	var ticks []chart.Tick
	for d := lo; d <= hi; d++ {
		base := math.Pow(10, d)
		ticks = append(ticks, chart.Tick{Value: d, Label: formatTick(base)})
		if dense && d < hi {
			for _, m := range []float64{2, 5} {
				ticks = append(ticks, chart.Tick{Value: math.Log10(m * base), Label: formatTick(m * base)})
			}
		}
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}, ticks
}

// logPoints keeps the points with a positive y and maps y to log10 for a
// logAxis.
func logPoints(xs, ys []float64) ([]float64, []float64) {
	var ox, oy []float64
	for i, y := range ys {
		if y > 0 {
			ox = append(ox, xs[i])
			oy = append(oy, math.Log10(y))
		}
	}
	return ox, oy
}
