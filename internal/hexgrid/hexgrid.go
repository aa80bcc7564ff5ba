// Package hexgrid generates the planning hex lattice and assigns grid
// cells to zones. Geometry here is planning-grade: degree/mile
// conversions use the ~69 miles-per-degree approximation rather than a
// projected CRS, matching the rest of the pipeline's tolerance.
package hexgrid

import (
	"fmt"
	"math"

	"github.com/twpayne/go-geom"

	"github.com/ridgeline-comms/meshplan/internal/model"
)

// BBox is a lon/lat bounding box for grid generation.
type BBox struct {
	MinLon, MinLat, MaxLon, MaxLat float64
}

const milesPerDegLat = 69.0

func milesToDegLat(mi float64) float64 {
	return mi / milesPerDegLat
}

func milesToDegLon(mi, latDeg float64) float64 {
	return mi / (milesPerDegLat * math.Cos(latDeg*math.Pi/180))
}

// hexRing builds a closed flat-top hexagon ring around a center point.
func hexRing(centerLon, centerLat, radiusMi float64) *geom.Polygon {
	rLat := milesToDegLat(radiusMi)
	rLon := milesToDegLon(radiusMi, centerLat)
	h := rLat * math.Sqrt(3) / 2

	flat := []float64{
		centerLon + rLon, centerLat,
		centerLon + rLon/2, centerLat + h,
		centerLon - rLon/2, centerLat + h,
		centerLon - rLon, centerLat,
		centerLon - rLon/2, centerLat - h,
		centerLon + rLon/2, centerLat - h,
		centerLon + rLon, centerLat, // close ring
	}
	return geom.NewPolygonFlat(geom.XY, flat, []int{len(flat)})
}

// Generate lays a flat-top hex lattice over the bounding box at the
// given cell radius. Rows are offset by three-quarters of the cell
// width so adjacent rows interlock. Cell ids are assigned in scan
// order as H_%06d, so generation is deterministic.
func Generate(bbox BBox, radiusMi float64) []model.Cell {
	var cells []model.Cell
	idx := 0

	rLat := milesToDegLat(radiusMi)
	latStep := math.Sqrt(3) * rLat

	lat := bbox.MinLat
	row := 0
	for lat <= bbox.MaxLat {
		rLon := milesToDegLon(radiusMi, lat)
		lonStep := 1.5 * rLon

		lon := bbox.MinLon
		if row%2 == 1 {
			lon += 0.75 * rLon
		}

		for lon <= bbox.MaxLon {
			idx++
			cells = append(cells, model.Cell{
				CellID:   fmt.Sprintf("H_%06d", idx),
				RadiusMi: radiusMi,
				Geometry: hexRing(lon, lat, radiusMi),
			})
			lon += lonStep
		}

		lat += latStep
		row++
	}
	return cells
}
