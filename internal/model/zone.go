package model

import "github.com/twpayne/go-geom"

// Zone is a planning partition. Zones are immutable once loaded and are
// used for rollup aggregation and for zone-default attribute profiles.
type Zone struct {
	ZoneID   string
	Name     string
	Geometry geom.T
}

// Corridor is a long-range backbone route. Tier A candidate sites are
// sampled along its line between the min and max target counts.
type Corridor struct {
	CorridorID string
	Name       string
	Line       *geom.LineString
	TargetMin  int
	TargetMax  int
}
