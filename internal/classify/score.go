package classify

import (
	"github.com/rotisserie/eris"

	"github.com/ridgeline-comms/meshplan/internal/model"
)

// ScoreCell returns a copy of the cell with all derived fields
// computed: confidence score and class, Tier B requirement, priority
// score, and Tier C demand class. The input cell is not modified.
// Because every derived field is a pure function of the input
// attributes, rescoring an already-scored cell yields the same result.
func ScoreCell(c model.Cell) (model.Cell, error) {
	for _, a := range []struct {
		name string
		val  *int
	}{
		{"elev_adv_avail", c.ElevAdvAvail},
		{"tall_struct_avail", c.TallStructAvail},
		{"backbone_los_likely", c.BackboneLOSLikely},
		{"clutter_high", c.ClutterHigh},
	} {
		if a.val == nil {
			return c, eris.Errorf("classify: %s is unset", a.name)
		}
	}
	if c.PopWeight == nil || c.CriticalWeight == nil {
		return c, eris.New("classify: pop_weight and critical_weight must be set")
	}

	score, err := ConfidenceScore(*c.ElevAdvAvail, *c.TallStructAvail, *c.BackboneLOSLikely, *c.ClutterHigh)
	if err != nil {
		return c, err
	}
	class := ConfidenceClassFor(score)

	priority, err := PriorityScore(class, *c.PopWeight, *c.CriticalWeight)
	if err != nil {
		return c, err
	}
	req := TierBRequirementFor(class)

	c.ConfidenceScore = &score
	c.ConfidenceClass = class
	c.TierBRequired = &req.Required
	c.TierBAlternate = &req.Alternate
	c.PriorityScore = &priority
	c.TierCDemandClass = DemandClassFor(priority)
	return c, nil
}

// ScoreCells scores every cell. Cells that fail validation are passed
// through unscored and flagged; they never abort the batch.
func ScoreCells(cells []model.Cell) ([]model.Cell, []model.Issue) {
	out := make([]model.Cell, 0, len(cells))
	var issues []model.Issue

	for _, c := range cells {
		scored, err := ScoreCell(c)
		if err != nil {
			issues = append(issues, model.Issue{
				Kind:     model.IssueValue,
				Layer:    "cells",
				RecordID: c.CellID,
				Reason:   err.Error(),
			})
			out = append(out, c)
			continue
		}
		out = append(out, scored)
	}
	return out, issues
}
