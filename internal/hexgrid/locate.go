package hexgrid

import (
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"

	"github.com/ridgeline-comms/meshplan/internal/model"
)

// PointInGeometry reports whether a point lies inside a polygon or
// multipolygon outer ring. Interior holes are ignored; the planning
// layers do not carry them.
func PointInGeometry(g geom.T, p geom.Coord) bool {
	switch poly := g.(type) {
	case *geom.Polygon:
		return pointInPolygon(poly, p)
	case *geom.MultiPolygon:
		for i := 0; i < poly.NumPolygons(); i++ {
			if pointInPolygon(poly.Polygon(i), p) {
				return true
			}
		}
	}
	return false
}

func pointInPolygon(poly *geom.Polygon, p geom.Coord) bool {
	if poly == nil || poly.NumLinearRings() == 0 {
		return false
	}
	return xy.IsPointInRing(poly.Layout(), p, poly.LinearRing(0).FlatCoords())
}

// RingCentroid returns the vertex mean of a polygon's outer ring. For
// a multipolygon the largest ring by shoelace area is used, so the
// result is stable across runs. This is the planning-grade centroid
// the original site-seeding used, not an area-weighted centroid.
func RingCentroid(g geom.T) (geom.Coord, error) {
	var ring *geom.LinearRing

	switch poly := g.(type) {
	case *geom.Polygon:
		if poly.NumLinearRings() > 0 {
			ring = poly.LinearRing(0)
		}
	case *geom.MultiPolygon:
		best := -1.0
		for i := 0; i < poly.NumPolygons(); i++ {
			p := poly.Polygon(i)
			if p.NumLinearRings() == 0 {
				continue
			}
			r := p.LinearRing(0)
			if a := ringArea(r); a > best {
				best = a
				ring = r
			}
		}
	default:
		return nil, eris.Errorf("hexgrid: unsupported geometry type %T", g)
	}

	if ring == nil {
		return nil, eris.New("hexgrid: geometry has no rings")
	}

	flat := ring.FlatCoords()
	stride := ring.Stride()
	n := len(flat) / stride
	if n > 1 && flat[0] == flat[(n-1)*stride] && flat[1] == flat[(n-1)*stride+1] {
		n-- // ignore the closing vertex
	}
	if n == 0 {
		return nil, eris.New("hexgrid: ring has no vertices")
	}

	var sx, sy float64
	for i := 0; i < n; i++ {
		sx += flat[i*stride]
		sy += flat[i*stride+1]
	}
	return geom.Coord{sx / float64(n), sy / float64(n)}, nil
}

// ringArea is the absolute shoelace area of a ring in squared degrees.
func ringArea(r *geom.LinearRing) float64 {
	flat := r.FlatCoords()
	stride := r.Stride()
	n := len(flat) / stride
	if n < 3 {
		return 0
	}
	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += flat[i*stride]*flat[j*stride+1] - flat[j*stride]*flat[i*stride+1]
	}
	if area < 0 {
		area = -area
	}
	return area / 2
}

// Locate returns the first cell, in input order, whose polygon
// contains the point, or nil if none does.
func Locate(cells []model.Cell, p geom.Coord) *model.Cell {
	for i := range cells {
		if PointInGeometry(cells[i].Geometry, p) {
			return &cells[i]
		}
	}
	return nil
}
