// Package types holds the shared data model: benchmark rows as loaded from
// CSV, the rendering mode derived from a file name and the static per-strategy
// chart styles.
package types

import (
	"image/color"
	"strconv"
	"strings"
)

// Column names as written by the benchmark driver.
const (
	ColStrategy   = "Strategy"
	ColThreads    = "Threads"
	ColMultiplier = "Multiplier"
	ColSpeedup    = "Speedup"
	ColEfficiency = "Efficiency_percent"
	ColTime       = "Time_seconds"
)

// MeasurementRow is one CSV record. Multiplier is zero for scaling files.
type MeasurementRow struct {
	Strategy          string
	Threads           int
	Multiplier        float64
	Speedup           float64
	EfficiencyPercent float64
	TimeSeconds       float64
}

// MeasurementTable is the ordered set of rows of one CSV file.
type MeasurementTable struct {
	Path string
	Mode Mode
	Rows []MeasurementRow
}

// Mode selects the rendering path for a table.
type Mode int

const (
	ModeUnknown Mode = iota
	ModeScaling
	ModeWorkload
)

func (m Mode) String() string {
	switch m {
	case ModeScaling:
		return "scaling"
	case ModeWorkload:
		return "workload"
	}
	return "unknown"
}

// RequiredColumns lists the header columns a file of this mode must carry.
func (m Mode) RequiredColumns() []string {
	cols := []string{ColStrategy, ColThreads, ColSpeedup, ColEfficiency, ColTime}
	if m == ModeWorkload {
		cols = append(cols, ColMultiplier)
	}
	return cols
}

// XValue returns the independent variable of r for this mode.
func (m Mode) XValue(r MeasurementRow) float64 {
	if m == ModeWorkload {
		return r.Multiplier
	}
	return float64(r.Threads)
}

// ChartKind names one rendered artifact; it is also the file name suffix.
type ChartKind string

const (
	ChartSpeedup    ChartKind = "speedup"
	ChartEfficiency ChartKind = "efficiency"
	ChartTime       ChartKind = "time"
	ChartComparison ChartKind = "comparison"
)

// ChartFileName returns "<stem>_<kind>.png".
func ChartFileName(stem string, kind ChartKind) string {
	return stem + "_" + string(kind) + ".png"
}

// Marker is the point glyph drawn at each data point.
type Marker string

const (
	MarkerCircle   Marker = "o"
	MarkerCross    Marker = "x"
	MarkerSquare   Marker = "s"
	MarkerTriangle Marker = "^"
)

// LineStyle is the stroke pattern of a series.
type LineStyle string

const (
	LineSolid   LineStyle = "-"
	LineDashed  LineStyle = "--"
	LineDotted  LineStyle = ":"
	LineDashDot LineStyle = "-."
)

// StrategyStyle is the fixed look of one strategy's series. Color is a
// "#rrggbb" hex string so both chart backends can consume it.
type StrategyStyle struct {
	Color     string
	Marker    Marker
	LineStyle LineStyle
}

// RGBA parses Color. Malformed values yield opaque black.
func (s StrategyStyle) RGBA() color.RGBA {
	return HexColor(s.Color)
}

// HexColor parses "#rrggbb" (the "#" is optional). Malformed values yield
// opaque black.
func HexColor(hex string) color.RGBA {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || len(hex) != 6 {
		return color.RGBA{A: 255}
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

// DefaultStyle is used for strategies missing from a style table.
var DefaultStyle = StrategyStyle{Color: "#000000", Marker: MarkerCircle, LineStyle: LineSolid}

// StyleTable maps strategy names to styles. It is never mutated after init.
type StyleTable map[string]StrategyStyle

// Lookup returns the style for strategy, or DefaultStyle.
func (t StyleTable) Lookup(strategy string) StrategyStyle {
	if s, ok := t[strings.TrimSpace(strategy)]; ok {
		return s
	}
	return DefaultStyle
}

// Matplotlib "tab:" palette, which the original charts used.
const (
	TabBlue   = "#1f77b4"
	TabOrange = "#ff7f0e"
	TabGreen  = "#2ca02c"
	TabRed    = "#d62728"
	TabPurple = "#9467bd"
	TabGray   = "#7f7f7f"
)

// ReportStyles is the style table of the full report charts.
var ReportStyles = StyleTable{
	"Sequential":           {Color: TabGray, Marker: MarkerSquare, LineStyle: LineDashDot},
	"Hybrid-TLS":           {Color: TabBlue, Marker: MarkerCircle, LineStyle: LineSolid},
	"Chunk-based-TLS":      {Color: TabOrange, Marker: MarkerTriangle, LineStyle: LineDashed},
	"Document-level-TLS":   {Color: TabPurple, Marker: MarkerCircle, LineStyle: LineDotted},
	"Fine-grained-locking": {Color: TabGreen, Marker: MarkerCross, LineStyle: LineDotted},
}

// SpeedupStyles is the smaller table used by the standalone speedup charts.
var SpeedupStyles = StyleTable{
	"Hybrid-TLS":           {Color: TabBlue, Marker: MarkerCircle, LineStyle: LineSolid},
	"Document-level-TLS":   {Color: TabPurple, Marker: MarkerCircle, LineStyle: LineDotted},
	"Fine-grained-locking": {Color: TabGreen, Marker: MarkerCross, LineStyle: LineDotted},
}
