package hexgrid

import (
	"strings"

	"github.com/twpayne/go-geom"

	"github.com/ridgeline-comms/meshplan/internal/model"
)

const unknownZoneTag = "zone_id missing/unknown; cell_radius_mi left default"

// SetRadius applies a per-zone cell radius profile. Cells in zones
// absent from the profile keep their current radius and are annotated
// once in notes. Returns the updated cells plus changed/unknown counts.
// The input slice is not modified.
func SetRadius(cells []model.Cell, radiusByZone map[string]float64) ([]model.Cell, int, int) {
	out := make([]model.Cell, len(cells))
	copy(out, cells)

	var changed, unknown int
	for i := range out {
		c := &out[i]
		r, ok := radiusByZone[c.ZoneID]
		if !ok {
			unknown++
			if !strings.Contains(c.Notes, unknownZoneTag) {
				if c.Notes != "" {
					c.Notes += "; "
				}
				c.Notes += unknownZoneTag
			}
			continue
		}
		if c.RadiusMi != r {
			c.RadiusMi = r
			changed++
		}
	}
	return out, changed, unknown
}

// outerRingVertices returns the outer-ring vertices of a polygon
// without the closing coordinate. Multipolygons contribute every
// polygon's outer ring.
func outerRingVertices(g geom.T) []geom.Coord {
	var rings []*geom.LinearRing

	switch poly := g.(type) {
	case *geom.Polygon:
		if poly.NumLinearRings() > 0 {
			rings = append(rings, poly.LinearRing(0))
		}
	case *geom.MultiPolygon:
		for i := 0; i < poly.NumPolygons(); i++ {
			if p := poly.Polygon(i); p.NumLinearRings() > 0 {
				rings = append(rings, p.LinearRing(0))
			}
		}
	}

	var verts []geom.Coord
	for _, r := range rings {
		flat := r.FlatCoords()
		stride := r.Stride()
		n := len(flat) / stride
		if n > 1 && flat[0] == flat[(n-1)*stride] && flat[1] == flat[(n-1)*stride+1] {
			n--
		}
		for i := 0; i < n; i++ {
			verts = append(verts, geom.Coord{flat[i*stride], flat[i*stride+1]})
		}
	}
	return verts
}
