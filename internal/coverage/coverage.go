// Package coverage credits Tier A coverage against Tier B required
// sites through the cell adjacency relation.
package coverage

import (
	"sort"

	"github.com/ridgeline-comms/meshplan/internal/adjacency"
	"github.com/ridgeline-comms/meshplan/internal/model"
)

// Result summarizes one satisfier pass.
type Result struct {
	// Satisfied is the number of Tier B required sites transitioned
	// from PENDING to SATISFIED in this pass. Reruns over already
	// satisfied data report zero.
	Satisfied int
	// TierAUsed is the number of Tier A sites that satisfied at least
	// one site in this pass.
	TierAUsed int
	// Skipped flags Tier A sites that could not be processed.
	Skipped []model.Issue
}

// Apply walks every Tier A site in ascending site_id order and marks
// Tier B required sites within its coverage set (home cell plus ring-1
// neighbors) as satisfied, recording which Tier A site and corridor
// provided the coverage.
//
// The input slice is not modified; the returned slice is a copy with
// only the affected sites changed. The pass is idempotent and
// deterministic: already-SATISFIED sites are never rewritten, Tier B
// alternates are never touched, and when several Tier A sites cover
// the same cell the one with the smallest site_id wins.
func Apply(sites []model.Site, ix adjacency.Index) ([]model.Site, Result) {
	out := make([]model.Site, len(sites))
	copy(out, sites)

	// Index pending Tier B required sites by home cell, each cell's
	// candidates ordered by site_id so satisfaction order is stable.
	byCell := make(map[string][]int)
	for i := range out {
		s := &out[i]
		if !s.RequiredTierB() || s.CellID == "" {
			continue
		}
		byCell[s.CellID] = append(byCell[s.CellID], i)
	}
	for _, idxs := range byCell {
		sort.Slice(idxs, func(a, b int) bool {
			return out[idxs[a]].SiteID < out[idxs[b]].SiteID
		})
	}

	var tierA []int
	for i := range out {
		if out[i].Tier == model.TierA {
			tierA = append(tierA, i)
		}
	}
	sort.Slice(tierA, func(a, b int) bool {
		return out[tierA[a]].SiteID < out[tierA[b]].SiteID
	})

	var res Result
	for _, ai := range tierA {
		a := &out[ai]
		if a.CellID == "" {
			res.Skipped = append(res.Skipped, model.Issue{
				Kind:     model.IssueSchema,
				Layer:    "sites",
				RecordID: a.SiteID,
				Reason:   "coverage: tier A site has no resolvable cell_id",
			})
			continue
		}

		used := false
		for _, cell := range ix.CoverageSet(a.CellID) {
			for _, bi := range byCell[cell] {
				b := &out[bi]
				if b.Status != model.StatusPending {
					continue
				}
				b.Status = model.StatusSatisfied
				b.SatisfiedBy = a.SiteID
				b.SatisfiedCorridorID = a.CorridorID
				res.Satisfied++
				used = true
			}
		}
		if used {
			res.TierAUsed++
		}
	}
	return out, res
}
