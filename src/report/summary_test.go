package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iafilius/BenchmarkPlotter/src/types"
)

func TestFormatScalingPicksBestSpeedup(t *testing.T) {
	tbl := &types.MeasurementTable{Mode: types.ModeScaling, Rows: []types.MeasurementRow{
		{Strategy: "Hybrid-TLS", Threads: 4, TimeSeconds: 0.5, Speedup: 3.6, EfficiencyPercent: 90},
		{Strategy: "Hybrid-TLS", Threads: 1, TimeSeconds: 1.8, Speedup: 1, EfficiencyPercent: 100},
		{Strategy: "Hybrid-TLS", Threads: 8, TimeSeconds: 0.6, Speedup: 3.0, EfficiencyPercent: 37.5},
	}}
	var buf bytes.Buffer
	require.NoError(t, Format(&buf, "thread_scaling_2gram", tbl))
	out := buf.String()

	assert.Contains(t, out, "SUMMARY REPORT - thread_scaling_2gram (scaling)")
	assert.Contains(t, out, "--- Hybrid-TLS ---")
	assert.Contains(t, out, "  Threads:  1 | Time: 1.8000s | Speedup: 1.00 | Efficiency: 100.0%")
	assert.Contains(t, out, "→ Best: 4 threads (speedup: 3.60x)")
	// rows are listed ascending by threads
	assert.Less(t, strings.Index(out, "Threads:  1"), strings.Index(out, "Threads:  4"))
	assert.Less(t, strings.Index(out, "Threads:  4"), strings.Index(out, "Threads:  8"))
}

func TestWriteWorkloadSummary(t *testing.T) {
	tbl := &types.MeasurementTable{Mode: types.ModeWorkload, Rows: []types.MeasurementRow{
		{Strategy: "Fine-grained-locking", Threads: 8, Multiplier: 2, TimeSeconds: 2, Speedup: 2.5, EfficiencyPercent: 31.25},
		{Strategy: "Fine-grained-locking", Threads: 8, Multiplier: 1, TimeSeconds: 1, Speedup: 2.1, EfficiencyPercent: 26.25},
	}}
	dir := filepath.Join(t.TempDir(), "plots")
	path, err := Write(dir, "workload_2gram_t8", tbl)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "workload_2gram_t8_summary.txt"), path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(b)
	assert.Contains(t, out, "Multiplier: 1 | Threads:  8")
	assert.Contains(t, out, "→ Best: multiplier 2 (speedup: 2.50x)")
}
