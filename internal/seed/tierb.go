// Package seed materializes candidate sites from scored cells and
// corridor targets. Output is deterministic: ids are assigned in input
// order and sample points are computed, never drawn.
package seed

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"

	"github.com/ridgeline-comms/meshplan/internal/hexgrid"
	"github.com/ridgeline-comms/meshplan/internal/model"
)

// candidateStep is the offset between co-located candidate points in
// degrees, just enough to keep same-cell candidates distinct on a map.
const candidateStep = 0.0003

// ZoneRequirement aggregates Tier B demand per zone.
type ZoneRequirement struct {
	ZoneID    string
	Required  int
	Alternate int
	Total     int
}

// TierB seeds Tier B candidate sites for every scored cell according
// to its required/alternate counts. Unscored cells and cells without a
// zone are flagged and skipped. Returns the seeded sites, the per-zone
// requirement rollup (sorted by zone_id), and any issues.
func TierB(cells []model.Cell) ([]model.Site, []ZoneRequirement, []model.Issue) {
	var sites []model.Site
	var issues []model.Issue
	byZone := make(map[string]*ZoneRequirement)

	seq := 1
	for i := range cells {
		c := &cells[i]
		if c.ZoneID == "" {
			issues = append(issues, model.Issue{
				Kind: model.IssueSchema, Layer: "cells", RecordID: c.CellID,
				Reason: "seed: cell has no zone_id; run zone assignment first",
			})
			continue
		}
		if c.TierBRequired == nil || c.TierBAlternate == nil {
			issues = append(issues, model.Issue{
				Kind: model.IssueSchema, Layer: "cells", RecordID: c.CellID,
				Reason: "seed: cell has no Tier B requirement; run score first",
			})
			continue
		}

		required := *c.TierBRequired
		alternate := *c.TierBAlternate
		total := required + alternate

		r := byZone[c.ZoneID]
		if r == nil {
			r = &ZoneRequirement{ZoneID: c.ZoneID}
			byZone[c.ZoneID] = r
		}
		r.Required += required
		r.Alternate += alternate
		r.Total += total

		if total == 0 {
			continue
		}

		centroid, err := hexgrid.RingCentroid(c.Geometry)
		if err != nil {
			issues = append(issues, model.Issue{
				Kind: model.IssueGeometry, Layer: "cells", RecordID: c.CellID,
				Reason: err.Error(),
			})
			continue
		}

		points := candidatePoints(centroid, total)
		for j := 0; j < total; j++ {
			notes := ""
			if j >= required {
				notes = model.NotesAlt
			}
			sites = append(sites, model.Site{
				SiteID:   fmt.Sprintf("S_B_%04d", seq),
				SiteName: fmt.Sprintf("Tier B %s #%02d", c.CellID, j+1),
				Tier:     model.TierB,
				Status:   model.StatusPending,
				Notes:    notes,
				ZoneID:   c.ZoneID,
				CellID:   c.CellID,
				Point:    points[j],
			})
			seq++
		}
	}

	rows := make([]ZoneRequirement, 0, len(byZone))
	for _, r := range byZone {
		rows = append(rows, *r)
	}
	sort.Slice(rows, func(a, b int) bool { return rows[a].ZoneID < rows[b].ZoneID })
	return sites, rows, issues
}

// candidatePoints spreads n candidate points around a center on a tiny
// 3x3 grid, extending east when a cell needs more than nine.
func candidatePoints(center geom.Coord, n int) []geom.Coord {
	if n <= 1 {
		return []geom.Coord{center}
	}
	baseOffsets := [][2]float64{
		{-1, -1}, {0, -1}, {1, -1},
		{-1, 0}, {0, 0}, {1, 0},
		{-1, 1}, {0, 1}, {1, 1},
	}
	points := make([]geom.Coord, 0, n)
	for i := 0; i < n && i < len(baseOffsets); i++ {
		o := baseOffsets[i]
		points = append(points, geom.Coord{
			center.X() + o[0]*candidateStep,
			center.Y() + o[1]*candidateStep,
		})
	}
	for i := len(baseOffsets); i < n; i++ {
		points = append(points, geom.Coord{
			center.X() + float64(i-len(baseOffsets)+1)*candidateStep,
			center.Y(),
		})
	}
	return points
}

// WriteRequirementsCSV writes the per-zone Tier B requirement rollup.
func WriteRequirementsCSV(w io.Writer, rows []ZoneRequirement) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"zone_id", "tierB_sites_required", "tierB_alternate_required", "total"}); err != nil {
		return eris.Wrap(err, "seed: write requirements header")
	}
	for _, r := range rows {
		record := []string{r.ZoneID, strconv.Itoa(r.Required), strconv.Itoa(r.Alternate), strconv.Itoa(r.Total)}
		if err := cw.Write(record); err != nil {
			return eris.Wrapf(err, "seed: write requirements row %s", r.ZoneID)
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "seed: flush requirements CSV")
}
