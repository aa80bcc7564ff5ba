package layer

import (
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/ridgeline-comms/meshplan/internal/model"
)

var siteKnownKeys = map[string]struct{}{
	"site_id": {}, "site_name": {}, "tier": {}, "status": {}, "notes": {},
	"zone_id": {}, "cell_id": {}, "corridor_id": {},
	"satisfied_by": {}, "satisfied_corridor_id": {},
}

// DecodeSites converts the sites layer into domain records. Records
// with a missing or duplicate site_id, an unknown tier, or an unknown
// status are excluded and flagged. A Tier B site without a status
// defaults to PENDING.
func DecodeSites(fc *geojson.FeatureCollection) ([]model.Site, []model.Issue) {
	var sites []model.Site
	var issues []model.Issue
	seen := make(map[string]struct{})

	for _, f := range fc.Features {
		props := f.Properties
		if props == nil {
			props = map[string]any{}
		}
		id := propString(props, "site_id")
		if id == "" {
			issues = append(issues, schemaIssue("sites", "", "missing site_id"))
			continue
		}
		if _, dup := seen[id]; dup {
			issues = append(issues, schemaIssue("sites", id, "duplicate site_id"))
			continue
		}
		seen[id] = struct{}{}

		tier := model.Tier(propString(props, "tier"))
		if tier != model.TierA && tier != model.TierB {
			issues = append(issues, schemaIssue("sites", id, "tier must be A or B"))
			continue
		}

		status := model.SiteStatus(propString(props, "status"))
		if status == "" {
			status = model.StatusPending
		}
		if status != model.StatusPending && status != model.StatusSatisfied {
			issues = append(issues, schemaIssue("sites", id, "status must be PENDING or SATISFIED"))
			continue
		}

		s := model.Site{
			SiteID:              id,
			SiteName:            propString(props, "site_name"),
			Tier:                tier,
			Status:              status,
			Notes:               propString(props, "notes"),
			ZoneID:              propString(props, "zone_id"),
			CellID:              propString(props, "cell_id"),
			CorridorID:          propString(props, "corridor_id"),
			SatisfiedBy:         propString(props, "satisfied_by"),
			SatisfiedCorridorID: propString(props, "satisfied_corridor_id"),
			Extra:               extraProps(props, siteKnownKeys),
		}
		if pt, ok := f.Geometry.(*geom.Point); ok {
			s.Point = pt.Coords()
		}
		sites = append(sites, s)
	}
	return sites, issues
}

// EncodeSites converts domain sites back into a FeatureCollection in
// input order.
func EncodeSites(sites []model.Site) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{}
	for i := range sites {
		s := &sites[i]
		props := map[string]any{
			"site_id": s.SiteID,
			"tier":    string(s.Tier),
			"status":  string(s.Status),
		}
		putString(props, "site_name", s.SiteName)
		putString(props, "notes", s.Notes)
		putString(props, "zone_id", s.ZoneID)
		putString(props, "cell_id", s.CellID)
		putString(props, "corridor_id", s.CorridorID)
		putString(props, "satisfied_by", s.SatisfiedBy)
		putString(props, "satisfied_corridor_id", s.SatisfiedCorridorID)
		mergeExtra(props, s.Extra)

		var g geom.T
		if s.Point != nil {
			g = geom.NewPointFlat(geom.XY, []float64{s.Point.X(), s.Point.Y()})
		}
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry:   g,
			Properties: props,
		})
	}
	return fc
}
