package classify

import (
	"github.com/rotisserie/eris"

	"github.com/ridgeline-comms/meshplan/internal/model"
)

// Tier C demand weighting and thresholds.
const (
	popDriverWeight      = 0.6
	criticalDriverWeight = 0.4
	lowConfidenceBoost   = 0.25
	demandHighMin        = 0.70
	demandMedMin         = 0.40
)

// TierBRequirement is the advisory Tier B site demand for one cell.
type TierBRequirement struct {
	Required  int
	Alternate int
}

// TierBRequirementFor maps a confidence class to its Tier B demand.
// Lower confidence means more sites and an alternate for redundancy.
func TierBRequirementFor(class model.ConfidenceClass) TierBRequirement {
	switch class {
	case model.ConfidenceHigh:
		return TierBRequirement{Required: 1, Alternate: 0}
	case model.ConfidenceMed:
		return TierBRequirement{Required: 1, Alternate: 1}
	default:
		return TierBRequirement{Required: 2, Alternate: 1}
	}
}

// PriorityScore blends population and critical-infrastructure weights
// into a Tier C demand driver, boosted for low-confidence cells. Both
// weights must lie in [0,1].
func PriorityScore(class model.ConfidenceClass, popWeight, criticalWeight float64) (float64, error) {
	for _, w := range []struct {
		name string
		val  float64
	}{
		{"pop_weight", popWeight},
		{"critical_weight", criticalWeight},
	} {
		if w.val < 0 || w.val > 1 {
			return 0, eris.Errorf("classify: %s must be in [0,1] (got %g)", w.name, w.val)
		}
	}

	driver := popDriverWeight*popWeight + criticalDriverWeight*criticalWeight
	if class == model.ConfidenceLow {
		driver += lowConfidenceBoost
	}
	return driver, nil
}

// DemandClassFor buckets a priority score into a Tier C demand class.
func DemandClassFor(score float64) model.DemandClass {
	switch {
	case score >= demandHighMin:
		return model.DemandHigh
	case score >= demandMedMin:
		return model.DemandMed
	default:
		return model.DemandLow
	}
}
