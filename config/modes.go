// Research depth modes.
//
// A mode trades thoroughness against wall-clock time: quick runs skip the
// deep mechanism stage and shrink per-agent iteration caps, deep runs give
// every agent more room to investigate.

package config

import (
	"fmt"
	"strings"
)

// Mode describes a research depth setting.
type Mode struct {
	Name             string
	Description      string
	SkipDeepAnalysis bool
	// IterationScale multiplies each agent's iteration cap.
	IterationScale float64
	EstimatedTime  string
}

var modes = map[string]Mode{
	"quick": {
		Name:             "quick",
		Description:      "Fast overview: skips the deep mechanism stage",
		SkipDeepAnalysis: true,
		IterationScale:   0.6,
		EstimatedTime:    "2-4 minutes",
	},
	"standard": {
		Name:           "standard",
		Description:    "Full four-stage pipeline with default iteration caps",
		IterationScale: 1.0,
		EstimatedTime:  "5-10 minutes",
	},
	"deep": {
		Name:           "deep",
		Description:    "Full pipeline with extended iteration caps for exhaustive research",
		IterationScale: 1.5,
		EstimatedTime:  "10-20 minutes",
	},
}

// ModeFor returns the named research mode.
func ModeFor(name string) (Mode, error) {
	mode, ok := modes[strings.ToLower(name)]
	if !ok {
		return Mode{}, fmt.Errorf("unknown research mode: %q (expected quick, standard, or deep)", name)
	}
	return mode, nil
}

// DefaultMode returns the standard research mode.
func DefaultMode() Mode {
	return modes["standard"]
}

// ModeNames returns the supported mode names in depth order.
func ModeNames() []string {
	return []string{"quick", "standard", "deep"}
}

// ScaleIterations applies the mode's iteration scale to a base cap,
// never dropping below one iteration.
func (m Mode) ScaleIterations(base int) int {
	scaled := int(float64(base) * m.IterationScale)
	if scaled < 1 {
		return 1
	}
	return scaled
}
