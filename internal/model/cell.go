// Package model holds the planning domain records shared by every
// pipeline stage: zones, corridors, hex cells, and sites.
package model

import "github.com/twpayne/go-geom"

// ConfidenceClass buckets a cell's coverage confidence score.
type ConfidenceClass string

const (
	ConfidenceHigh ConfidenceClass = "HIGH"
	ConfidenceMed  ConfidenceClass = "MED"
	ConfidenceLow  ConfidenceClass = "LOW"
)

// DemandClass buckets a cell's Tier C demand priority.
type DemandClass string

const (
	DemandHigh DemandClass = "HIGH"
	DemandMed  DemandClass = "MED"
	DemandLow  DemandClass = "LOW"
)

// Cell is one hexagonal grid cell. The four boolean attributes and the
// two weights are inputs; the remaining derived fields are written only
// by the scoring stage and are nil until a cell has been scored.
//
// Boolean attributes are modeled as *int rather than bool: the source
// layers distinguish 0, 1, and unset (scaffolding fills unset values
// from zone defaults), and out-of-domain values must be reportable
// rather than silently coerced.
type Cell struct {
	CellID   string
	ZoneID   string
	RadiusMi float64
	Geometry geom.T

	ElevAdvAvail      *int
	TallStructAvail   *int
	BackboneLOSLikely *int
	ClutterHigh       *int

	PopWeight      *float64
	CriticalWeight *float64

	ConfidenceScore  *int
	ConfidenceClass  ConfidenceClass
	TierBRequired    *int
	TierBAlternate   *int
	PriorityScore    *float64
	TierCDemandClass DemandClass

	Notes string

	// Extra preserves properties this tool does not interpret so that a
	// round-trip through the layer files keeps them intact.
	Extra map[string]any
}

// Scored reports whether the cell carries derived scoring fields.
func (c *Cell) Scored() bool {
	return c.ConfidenceScore != nil && c.ConfidenceClass != ""
}
