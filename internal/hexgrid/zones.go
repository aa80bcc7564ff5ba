package hexgrid

import (
	"sort"

	"github.com/ridgeline-comms/meshplan/internal/model"
)

// AssignStats summarizes one zone-assignment pass.
type AssignStats struct {
	ByCentroid int
	ByVertex   int
	Unassigned int
}

// AssignZones assigns each cell to a zone: first by centroid
// containment, then by a vertex-touch vote for cells whose centroid
// falls outside every zone (edge cells). The zone containing the most
// vertices wins; ties break by ascending zone_id so the result is
// deterministic. Cells matching no zone keep a blank zone_id.
//
// The input slice is not modified.
func AssignZones(cells []model.Cell, zones []model.Zone) ([]model.Cell, AssignStats) {
	out := make([]model.Cell, len(cells))
	copy(out, cells)

	var stats AssignStats

	for i := range out {
		c := &out[i]
		if c.Geometry == nil {
			stats.Unassigned++
			continue
		}

		if zid := zoneByCentroid(c, zones); zid != "" {
			c.ZoneID = zid
			stats.ByCentroid++
			continue
		}
		if zid := zoneByVertexVote(c, zones); zid != "" {
			c.ZoneID = zid
			stats.ByVertex++
			continue
		}
		c.ZoneID = ""
		stats.Unassigned++
	}
	return out, stats
}

func zoneByCentroid(c *model.Cell, zones []model.Zone) string {
	centroid, err := RingCentroid(c.Geometry)
	if err != nil {
		return ""
	}
	for i := range zones {
		if PointInGeometry(zones[i].Geometry, centroid) {
			return zones[i].ZoneID
		}
	}
	return ""
}

func zoneByVertexVote(c *model.Cell, zones []model.Zone) string {
	verts := outerRingVertices(c.Geometry)
	if len(verts) == 0 {
		return ""
	}

	hits := make(map[string]int)
	for i := range zones {
		z := &zones[i]
		for _, v := range verts {
			if PointInGeometry(z.Geometry, v) {
				hits[z.ZoneID]++
			}
		}
	}
	if len(hits) == 0 {
		return ""
	}

	zoneIDs := make([]string, 0, len(hits))
	for zid := range hits {
		zoneIDs = append(zoneIDs, zid)
	}
	sort.Slice(zoneIDs, func(a, b int) bool {
		if hits[zoneIDs[a]] != hits[zoneIDs[b]] {
			return hits[zoneIDs[a]] > hits[zoneIDs[b]]
		}
		return zoneIDs[a] < zoneIDs[b]
	})
	return zoneIDs[0]
}
