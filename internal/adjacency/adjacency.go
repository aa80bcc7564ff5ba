// Package adjacency builds the ring-1 neighbor relation between hex
// cells. Two cells are neighbors iff their boundaries share at least
// one vertex coordinate; touching at a single point counts, and
// edge-sharing is the common case of two shared vertices.
//
// Vertices are compared by exact float64 value, not by tolerance.
// Exact matching avoids false positives from near-miss geometry, but
// grids generated with floating-point drift or mixed precision across
// layers will produce missed adjacencies. That is a known limitation
// of this strategy; callers needing drift tolerance must snap their
// source geometry first.
package adjacency

import (
	"sort"

	"github.com/ridgeline-comms/meshplan/internal/model"
)

// Index maps a cell_id to the set of its neighboring cell_ids. The
// relation is symmetric and irreflexive: a cell is never its own
// neighbor.
type Index map[string]map[string]struct{}

// Neighbors returns the neighbor ids of a cell in ascending order.
// Unknown cells have no neighbors.
func (ix Index) Neighbors(cellID string) []string {
	set := ix[cellID]
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// CoverageSet returns the cell itself plus its neighbors, ascending.
// This is the set of cells a Tier A site at cellID covers.
func (ix Index) CoverageSet(cellID string) []string {
	out := append([]string{cellID}, ix.Neighbors(cellID)...)
	sort.Strings(out)
	return out
}

type vertex struct {
	x, y float64
}

// Build constructs the index from cell geometries via a vertex-keyed
// multimap, so construction is near-linear in the number of cells
// rather than quadratic all-pairs. Cells with malformed geometry are
// excluded from the index and flagged; they are never fatal.
func Build(cells []model.Cell) (Index, []model.Issue) {
	var issues []model.Issue

	vertexCells := make(map[vertex][]string)
	cellVertices := make(map[string][]vertex, len(cells))

	for i := range cells {
		c := &cells[i]
		verts, err := boundaryVertices(c.Geometry)
		if err != nil {
			issues = append(issues, model.Issue{
				Kind:     model.IssueGeometry,
				Layer:    "cells",
				RecordID: c.CellID,
				Reason:   err.Error(),
			})
			continue
		}
		cellVertices[c.CellID] = verts
		for _, v := range verts {
			vertexCells[v] = append(vertexCells[v], c.CellID)
		}
	}

	ix := make(Index, len(cellVertices))
	for cellID, verts := range cellVertices {
		neighbors := make(map[string]struct{})
		for _, v := range verts {
			for _, other := range vertexCells[v] {
				if other != cellID {
					neighbors[other] = struct{}{}
				}
			}
		}
		ix[cellID] = neighbors
	}
	return ix, issues
}
