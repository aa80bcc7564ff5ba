package classify

import "github.com/ridgeline-comms/meshplan/internal/model"

// Defaults is a zone attribute profile used to scaffold cells whose
// input attributes were never surveyed.
type Defaults struct {
	ElevAdvAvail      int
	TallStructAvail   int
	BackboneLOSLikely int
	ClutterHigh       int
	PopWeight         float64
	CriticalWeight    float64
}

// Scaffold fills unset boolean attributes and weights from the zone
// profile. Explicit values are never overwritten: a surveyed 0 is a
// valid decision, not a blank. Returns the updated cells and the
// number of fields filled. The input slice is not modified.
func Scaffold(cells []model.Cell, byZone map[string]Defaults) ([]model.Cell, int) {
	out := make([]model.Cell, len(cells))
	copy(out, cells)

	filled := 0
	for i := range out {
		c := &out[i]
		d, ok := byZone[c.ZoneID]
		if !ok {
			continue
		}
		for _, attr := range []struct {
			dest **int
			def  int
		}{
			{&c.ElevAdvAvail, d.ElevAdvAvail},
			{&c.TallStructAvail, d.TallStructAvail},
			{&c.BackboneLOSLikely, d.BackboneLOSLikely},
			{&c.ClutterHigh, d.ClutterHigh},
		} {
			if *attr.dest == nil {
				v := attr.def
				*attr.dest = &v
				filled++
			}
		}
		for _, attr := range []struct {
			dest **float64
			def  float64
		}{
			{&c.PopWeight, d.PopWeight},
			{&c.CriticalWeight, d.CriticalWeight},
		} {
			if *attr.dest == nil {
				v := attr.def
				*attr.dest = &v
				filled++
			}
		}
	}
	return out, filled
}
