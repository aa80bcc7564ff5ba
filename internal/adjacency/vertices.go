package adjacency

import (
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
)

// boundaryVertices extracts the distinct boundary vertices of a cell
// polygon. A polygon whose outer ring has fewer than three distinct
// vertices, or whose ring self-intersects, is malformed.
func boundaryVertices(g geom.T) ([]vertex, error) {
	if g == nil {
		return nil, eris.New("adjacency: cell has no geometry")
	}

	var rings [][]float64
	stride := 2

	switch p := g.(type) {
	case *geom.Polygon:
		stride = p.Stride()
		for i := 0; i < p.NumLinearRings(); i++ {
			rings = append(rings, p.LinearRing(i).FlatCoords())
		}
	case *geom.MultiPolygon:
		stride = p.Stride()
		for i := 0; i < p.NumPolygons(); i++ {
			poly := p.Polygon(i)
			for j := 0; j < poly.NumLinearRings(); j++ {
				rings = append(rings, poly.LinearRing(j).FlatCoords())
			}
		}
	default:
		return nil, eris.Errorf("adjacency: unsupported geometry type %T", g)
	}

	seen := make(map[vertex]struct{})
	var verts []vertex
	for _, flat := range rings {
		for i := 0; i+stride <= len(flat); i += stride {
			v := vertex{x: flat[i], y: flat[i+1]}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			verts = append(verts, v)
		}
	}

	if len(verts) < 3 {
		return nil, eris.Errorf("adjacency: polygon has %d distinct vertices, need at least 3", len(verts))
	}

	for _, flat := range rings {
		if ringSelfIntersects(flat, stride) {
			return nil, eris.New("adjacency: polygon ring self-intersects")
		}
	}
	return verts, nil
}

// ringSelfIntersects reports whether any two non-adjacent segments of
// a closed ring cross. Hex rings have six segments, so the quadratic
// check is cheap.
func ringSelfIntersects(flat []float64, stride int) bool {
	n := len(flat) / stride
	if n < 4 {
		return false
	}
	// Drop the closing vertex if the ring repeats its first point.
	if flat[0] == flat[(n-1)*stride] && flat[1] == flat[(n-1)*stride+1] {
		n--
	}
	if n < 4 {
		return false
	}

	pt := func(i int) (float64, float64) {
		i = i % n
		return flat[i*stride], flat[i*stride+1]
	}

	for i := 0; i < n; i++ {
		for j := i + 2; j < n; j++ {
			// Adjacent segments share an endpoint; skip them,
			// including the first/last pair.
			if i == 0 && j == n-1 {
				continue
			}
			ax, ay := pt(i)
			bx, by := pt(i + 1)
			cx, cy := pt(j)
			dx, dy := pt(j + 1)
			if segmentsCross(ax, ay, bx, by, cx, cy, dx, dy) {
				return true
			}
		}
	}
	return false
}

// segmentsCross reports proper intersection of segments AB and CD.
func segmentsCross(ax, ay, bx, by, cx, cy, dx, dy float64) bool {
	d1 := orient(cx, cy, dx, dy, ax, ay)
	d2 := orient(cx, cy, dx, dy, bx, by)
	d3 := orient(ax, ay, bx, by, cx, cy)
	d4 := orient(ax, ay, bx, by, dx, dy)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

func orient(ax, ay, bx, by, px, py float64) float64 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}
