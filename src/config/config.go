// Package config holds the render options shared by the benchplot commands.
// Options start from Defaults, may be overlaid by a YAML file, and finally by
// command-line flags the user set explicitly.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Options controls chart geometry and output placement.
type Options struct {
	// OutDir overrides the "plots" directory next to the input CSV.
	OutDir string `yaml:"out_dir"`
	// Width and Height of single charts in pixels. The comparison chart is
	// two panels of Width/2 each.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// Summary also writes <stem>_summary.txt.
	Summary  bool   `yaml:"summary"`
	LogLevel string `yaml:"log_level"`
	// ResultsDir is where the speedup command finds CSVs and writes charts.
	ResultsDir string `yaml:"results_dir"`
}

const (
	DefaultWidth      = 1000
	DefaultHeight     = 600
	DefaultResultsDir = "results"
	PlotsDirName      = "plots"
	minWidth          = 320
	minHeight         = 200
)

// Defaults returns the built-in options.
func Defaults() Options {
	return Options{
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		LogLevel:   "info",
		ResultsDir: DefaultResultsDir,
	}
}

// LoadFile overlays the YAML file at path onto base. Keys absent from the
// file keep their base value.
func LoadFile(path string, base Options) (Options, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read options file: %w", err)
	}
	out := base
	if err := yaml.Unmarshal(b, &out); err != nil {
		return base, fmt.Errorf("parse options file %s: %w", path, err)
	}
	return out, out.Validate()
}

// Validate rejects geometry too small to lay out axes and legends.
func (o Options) Validate() error {
	if o.Width < minWidth || o.Height < minHeight {
		return fmt.Errorf("chart size %dx%d below minimum %dx%d", o.Width, o.Height, minWidth, minHeight)
	}
	return nil
}
