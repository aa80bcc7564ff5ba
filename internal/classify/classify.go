// Package classify computes per-cell coverage confidence and demand
// classes. Every function here is a pure, total function over its
// inputs; the only failure mode is input validation.
package classify

import (
	"github.com/rotisserie/eris"

	"github.com/ridgeline-comms/meshplan/internal/model"
)

// Confidence classification thresholds on the 0-4 score.
const (
	highScoreMin = 3
	medScore     = 2
)

// ConfidenceScore computes the coverage confidence score from the four
// boolean attributes. Each input must be exactly 0 or 1; anything else
// is a validation error, never coerced. High clutter reduces
// confidence, so it enters inverted.
func ConfidenceScore(elevAdv, tallStruct, backboneLOS, clutterHigh int) (int, error) {
	for _, a := range []struct {
		name string
		val  int
	}{
		{"elev_adv_avail", elevAdv},
		{"tall_struct_avail", tallStruct},
		{"backbone_los_likely", backboneLOS},
		{"clutter_high", clutterHigh},
	} {
		if a.val != 0 && a.val != 1 {
			return 0, eris.Errorf("classify: %s must be 0 or 1 (got %d)", a.name, a.val)
		}
	}
	return elevAdv + tallStruct + backboneLOS + (1 - clutterHigh), nil
}

// ConfidenceClassFor buckets a confidence score.
func ConfidenceClassFor(score int) model.ConfidenceClass {
	switch {
	case score >= highScoreMin:
		return model.ConfidenceHigh
	case score == medScore:
		return model.ConfidenceMed
	default:
		return model.ConfidenceLow
	}
}
