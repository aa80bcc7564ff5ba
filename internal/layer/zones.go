package layer

import (
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/ridgeline-comms/meshplan/internal/model"
)

// DecodeZones converts the zones layer into domain records. Zones with
// a missing or duplicate zone_id or non-polygon geometry are excluded
// and flagged.
func DecodeZones(fc *geojson.FeatureCollection) ([]model.Zone, []model.Issue) {
	var zones []model.Zone
	var issues []model.Issue
	seen := make(map[string]struct{})

	for _, f := range fc.Features {
		props := f.Properties
		if props == nil {
			props = map[string]any{}
		}
		id := propString(props, "zone_id")
		if id == "" {
			issues = append(issues, schemaIssue("zones", "", "missing zone_id"))
			continue
		}
		if _, dup := seen[id]; dup {
			issues = append(issues, schemaIssue("zones", id, "duplicate zone_id"))
			continue
		}
		seen[id] = struct{}{}

		switch f.Geometry.(type) {
		case *geom.Polygon, *geom.MultiPolygon:
		default:
			issues = append(issues, model.Issue{
				Kind: model.IssueGeometry, Layer: "zones", RecordID: id,
				Reason: "zone geometry is not a polygon",
			})
			continue
		}

		zones = append(zones, model.Zone{
			ZoneID:   id,
			Name:     propString(props, "zone_name"),
			Geometry: f.Geometry,
		})
	}
	return zones, issues
}

// EncodeZones converts domain zones into a FeatureCollection.
func EncodeZones(zones []model.Zone) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{}
	for i := range zones {
		z := &zones[i]
		props := map[string]any{"zone_id": z.ZoneID}
		putString(props, "zone_name", z.Name)
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry:   z.Geometry,
			Properties: props,
		})
	}
	return fc
}

// DecodeCorridors converts the corridors layer into domain records.
// Corridors must carry a unique corridor_id and LineString geometry.
func DecodeCorridors(fc *geojson.FeatureCollection) ([]model.Corridor, []model.Issue) {
	var corridors []model.Corridor
	var issues []model.Issue
	seen := make(map[string]struct{})

	for _, f := range fc.Features {
		props := f.Properties
		if props == nil {
			props = map[string]any{}
		}
		id := propString(props, "corridor_id")
		if id == "" {
			issues = append(issues, schemaIssue("corridors", "", "missing corridor_id"))
			continue
		}
		if _, dup := seen[id]; dup {
			issues = append(issues, schemaIssue("corridors", id, "duplicate corridor_id"))
			continue
		}
		seen[id] = struct{}{}

		line, ok := f.Geometry.(*geom.LineString)
		if !ok {
			issues = append(issues, model.Issue{
				Kind: model.IssueGeometry, Layer: "corridors", RecordID: id,
				Reason: "corridor geometry is not a LineString",
			})
			continue
		}

		c := model.Corridor{
			CorridorID: id,
			Name:       propString(props, "corridor_name"),
			Line:       line,
		}
		if v, err := propInt(props, "tierA_target_sites_min"); err == nil && v != nil {
			c.TargetMin = *v
		}
		if v, err := propInt(props, "tierA_target_sites_max"); err == nil && v != nil {
			c.TargetMax = *v
		}
		corridors = append(corridors, c)
	}
	return corridors, issues
}
