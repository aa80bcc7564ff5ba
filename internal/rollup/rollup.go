// Package rollup aggregates per-zone site counts before and after
// coverage satisfaction. Pure aggregation; nothing here mutates sites.
package rollup

import (
	"sort"

	"github.com/ridgeline-comms/meshplan/internal/model"
)

// Row is the rollup for one zone.
type Row struct {
	ZoneID string
	// RequiredBefore counts Tier B required sites regardless of
	// status: the demand the zone started with.
	RequiredBefore int
	// RequiredAfter counts Tier B required sites still PENDING.
	RequiredAfter int
	// AltTotal counts Tier B alternates, which coverage never touches.
	AltTotal int
	// TierASites counts Tier A sites in the zone.
	TierASites int
}

// Compute aggregates sites into one row per zone, sorted by zone_id.
// Sites without a zone_id are not attributable and are excluded.
func Compute(sites []model.Site) []Row {
	byZone := make(map[string]*Row)
	row := func(zoneID string) *Row {
		r := byZone[zoneID]
		if r == nil {
			r = &Row{ZoneID: zoneID}
			byZone[zoneID] = r
		}
		return r
	}

	for i := range sites {
		s := &sites[i]
		if s.ZoneID == "" {
			continue
		}
		switch {
		case s.Tier == model.TierA:
			row(s.ZoneID).TierASites++
		case s.Tier == model.TierB && s.Alternate():
			row(s.ZoneID).AltTotal++
		case s.Tier == model.TierB:
			r := row(s.ZoneID)
			r.RequiredBefore++
			if s.Status != model.StatusSatisfied {
				r.RequiredAfter++
			}
		}
	}

	rows := make([]Row, 0, len(byZone))
	for _, r := range byZone {
		rows = append(rows, *r)
	}
	sort.Slice(rows, func(a, b int) bool { return rows[a].ZoneID < rows[b].ZoneID })
	return rows
}
