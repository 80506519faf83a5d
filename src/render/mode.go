package render

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/iafilius/BenchmarkPlotter/src/table"
	"github.com/iafilius/BenchmarkPlotter/src/types"
)

var (
	// ErrMissingFile is returned when the input CSV does not exist.
	ErrMissingFile = table.ErrMissingFile
	// ErrUnrecognizedMode is returned for file names that are neither a
	// thread-scaling nor a workload result.
	ErrUnrecognizedMode = errors.New("unrecognized file")
)

// Stem returns the file name of path without directory and extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// DetectMode picks the rendering path from the file stem. "workload" wins over
// "scaling" when both appear.
func DetectMode(path string) (types.Mode, error) {
	stem := strings.ToLower(Stem(path))
	switch {
	case strings.Contains(stem, "scaling") && !strings.Contains(stem, "workload"):
		return types.ModeScaling, nil
	case strings.Contains(stem, "workload"):
		return types.ModeWorkload, nil
	}
	return types.ModeUnknown, fmt.Errorf("%w: %s (expected a name containing \"scaling\" or \"workload\")", ErrUnrecognizedMode, filepath.Base(path))
}
