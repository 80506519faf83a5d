package render

import (
	"image"
	_ "image/png" // register PNG decoder
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iafilius/BenchmarkPlotter/src/config"
	"github.com/iafilius/BenchmarkPlotter/src/types"
)

const scalingCSV = `Strategy,Threads,Time_seconds,Speedup,Efficiency_percent
Hybrid-TLS,8,0.300000,6.000000,75.000000
Hybrid-TLS,1,1.800000,1.000000,100.000000
Hybrid-TLS,4,0.500000,3.600000,90.000000
Hybrid-TLS,2,0.950000,1.894737,94.736842
`

const multiStrategyCSV = `Strategy,Threads,Time_seconds,Speedup,Efficiency_percent
Hybrid-TLS,1,1.800000,1.000000,100.000000
Hybrid-TLS,2,0.950000,1.894737,94.736842
Hybrid-TLS,4,0.500000,3.600000,90.000000
Fine-grained-locking,4,1.000000,1.800000,45.000000
Fine-grained-locking,1,1.800000,1.000000,100.000000
Lock-free,4,0.200000,9.000000,225.000000
`

const workloadCSV = `Strategy,Multiplier,Threads,Time_seconds,Speedup,Efficiency_percent
Fine-grained-locking,4,8,3.200000,2.400000,30.000000
Fine-grained-locking,1,8,0.900000,2.000000,25.000000
Fine-grained-locking,2,8,1.700000,2.200000,27.500000
`

func testOptions() config.Options {
	o := config.Defaults()
	o.Width = 640
	o.Height = 400
	return o
}

func writeCSV(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

// pngNames lists the PNG files in dir, sorted.
func pngNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".png" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

func decodeSize(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, _, err := image.Decode(f)
	require.NoError(t, err, "decode %s", path)
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestRenderScalingWritesFourCharts(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeCSV(t, dir, "thread_scaling_2gram.csv", scalingCSV)

	res, err := Render(csvPath, testOptions())
	require.NoError(t, err)
	assert.Equal(t, types.ModeScaling, res.Mode)
	assert.Equal(t, filepath.Join(dir, "plots"), res.OutDir)
	require.Len(t, res.Charts, 4)

	assert.Equal(t, []string{
		"thread_scaling_2gram_comparison.png",
		"thread_scaling_2gram_efficiency.png",
		"thread_scaling_2gram_speedup.png",
		"thread_scaling_2gram_time.png",
	}, pngNames(t, res.OutDir))

	for _, p := range res.Charts {
		w, h := decodeSize(t, p)
		assert.Equal(t, 640, w, filepath.Base(p))
		assert.Equal(t, 400, h, filepath.Base(p))
	}
	assert.Empty(t, res.Summary)
}

func TestRenderScalingSeveralStrategies(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeCSV(t, dir, "thread_scaling_3gram.csv", multiStrategyCSV)
	res, err := Render(csvPath, testOptions())
	require.NoError(t, err)
	assert.Len(t, pngNames(t, res.OutDir), 4)
}

func TestRenderScalingSingleThreadCount(t *testing.T) {
	dir := t.TempDir()
	body := "Strategy,Threads,Time_seconds,Speedup,Efficiency_percent\n" +
		"Hybrid-TLS,1,1.800000,1.000000,100.000000\n" +
		"Fine-grained-locking,1,1.900000,0.950000,95.000000\n"
	csvPath := writeCSV(t, dir, "thread_scaling_1gram.csv", body)

	res, err := Render(csvPath, testOptions())
	require.NoError(t, err)
	require.Len(t, res.Charts, 4)
	for _, p := range res.Charts {
		w, h := decodeSize(t, p)
		assert.Equal(t, 640, w, filepath.Base(p))
		assert.Equal(t, 400, h, filepath.Base(p))
	}
}

func TestRenderWorkloadSingleMultiplier(t *testing.T) {
	dir := t.TempDir()
	body := "Strategy,Multiplier,Threads,Time_seconds,Speedup,Efficiency_percent\n" +
		"Hybrid-TLS,1,8,0.300000,6.000000,75.000000\n"
	csvPath := writeCSV(t, dir, "workload_2gram_t8.csv", body)

	res, err := Render(csvPath, testOptions())
	require.NoError(t, err)
	assert.Len(t, pngNames(t, res.OutDir), 3)
	for _, p := range res.Charts {
		w, h := decodeSize(t, p)
		assert.Equal(t, 640, w, filepath.Base(p))
		assert.Equal(t, 400, h, filepath.Base(p))
	}
}

func TestComparisonUsesMaxThreadRows(t *testing.T) {
	rows := []types.MeasurementRow{
		{Strategy: "Hybrid-TLS", Threads: 1, Speedup: 1, EfficiencyPercent: 100},
		{Strategy: "Hybrid-TLS", Threads: 8, Speedup: 6, EfficiencyPercent: 75},
		{Strategy: "Fine-grained-locking", Threads: 2, Speedup: 1.8, EfficiencyPercent: 90},
		{Strategy: "Sequential", Threads: 8, Speedup: 1, EfficiencyPercent: 12.5},
	}
	r := NewRenderer(t.TempDir(), testOptions())
	panels := r.comparisonPanels(rows)
	require.Len(t, panels, 2)
	assert.Equal(t, "Speedup at 8 threads", panels[0].Title)
	assert.Equal(t, "Efficiency at 8 threads", panels[1].Title)

	bars := func(c int) map[string]float64 {
		out := map[string]float64{}
		for _, b := range panels[c].Bars {
			out[b.Label] = b.Value
		}
		return out
	}
	assert.Equal(t, map[string]float64{"Hybrid-TLS": 6, "Sequential": 1}, bars(0))
	assert.Equal(t, map[string]float64{"Hybrid-TLS": 75, "Sequential": 12.5}, bars(1))
	assert.Equal(t, 320, panels[0].Width)
}

func TestRenderWorkloadWritesThreeCharts(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeCSV(t, dir, "workload_2gram_t8.csv", workloadCSV)

	res, err := Render(csvPath, testOptions())
	require.NoError(t, err)
	assert.Equal(t, types.ModeWorkload, res.Mode)
	assert.Equal(t, []string{
		"workload_2gram_t8_efficiency.png",
		"workload_2gram_t8_speedup.png",
		"workload_2gram_t8_time.png",
	}, pngNames(t, res.OutDir))
	for _, p := range res.Charts {
		w, h := decodeSize(t, p)
		assert.Equal(t, 640, w)
		assert.Equal(t, 400, h)
	}
}

func TestRenderMissingFileWritesNothing(t *testing.T) {
	dir := t.TempDir()
	_, err := Render(filepath.Join(dir, "thread_scaling_9gram.csv"), testOptions())
	require.ErrorIs(t, err, ErrMissingFile)
	_, statErr := os.Stat(filepath.Join(dir, "plots"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRenderUnrecognizedName(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeCSV(t, dir, "results_2gram.csv", scalingCSV)
	_, err := Render(csvPath, testOptions())
	require.ErrorIs(t, err, ErrUnrecognizedMode)
	_, statErr := os.Stat(filepath.Join(dir, "plots"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRenderWorkloadRejectsMixedThreads(t *testing.T) {
	dir := t.TempDir()
	body := strings.Replace(workloadCSV, "Fine-grained-locking,2,8,", "Fine-grained-locking,2,4,", 1)
	csvPath := writeCSV(t, dir, "workload_2gram_t8.csv", body)
	_, err := Render(csvPath, testOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "thread count")
	_, statErr := os.Stat(filepath.Join(dir, "plots"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRenderTwiceOverwrites(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeCSV(t, dir, "thread_scaling_2gram.csv", scalingCSV)
	first, err := Render(csvPath, testOptions())
	require.NoError(t, err)
	second, err := Render(csvPath, testOptions())
	require.NoError(t, err)
	assert.Equal(t, first.Charts, second.Charts)
	assert.Len(t, pngNames(t, second.OutDir), 4)
}

func TestRenderOutDirAndSummary(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeCSV(t, dir, "workload_2gram_t8.csv", workloadCSV)
	opts := testOptions()
	opts.OutDir = filepath.Join(dir, "custom", "out")
	opts.Summary = true

	res, err := Render(csvPath, opts)
	require.NoError(t, err)
	assert.Equal(t, opts.OutDir, res.OutDir)
	assert.Len(t, pngNames(t, opts.OutDir), 3)
	assert.Equal(t, filepath.Join(opts.OutDir, "workload_2gram_t8_summary.txt"), res.Summary)
	assert.FileExists(t, res.Summary)
}

func TestDetectMode(t *testing.T) {
	cases := []struct {
		path string
		want types.Mode
		err  bool
	}{
		{"results/thread_scaling_2gram.csv", types.ModeScaling, false},
		{"Thread_SCALING.csv", types.ModeScaling, false},
		{"results/workload_2gram_t8.csv", types.ModeWorkload, false},
		{"workload_scaling_3gram.csv", types.ModeWorkload, false},
		{"scaling/summary.csv", types.ModeUnknown, true},
		{"bench.csv", types.ModeUnknown, true},
	}
	for _, tc := range cases {
		got, err := DetectMode(tc.path)
		assert.Equal(t, tc.want, got, tc.path)
		if tc.err {
			assert.ErrorIs(t, err, ErrUnrecognizedMode, tc.path)
		} else {
			assert.NoError(t, err, tc.path)
		}
	}
}

func TestStem(t *testing.T) {
	assert.Equal(t, "thread_scaling_2gram", Stem("/tmp/results/thread_scaling_2gram.csv"))
	assert.Equal(t, "workload", Stem("workload"))
}
