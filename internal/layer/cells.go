package layer

import (
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/ridgeline-comms/meshplan/internal/model"
)

// cellKnownKeys are the properties the cells layer owns. Anything else
// is preserved verbatim through Extra.
var cellKnownKeys = map[string]struct{}{
	"cell_id": {}, "zone_id": {}, "cell_radius_mi": {},
	"elev_adv_avail": {}, "tall_struct_avail": {},
	"backbone_los_likely": {}, "clutter_high": {},
	"pop_weight": {}, "critical_weight": {},
	"confidence_score": {}, "confidence_class": {},
	"tierB_sites_required": {}, "tierB_alternate_required": {},
	"priority_score": {}, "tierC_demand_class": {},
	"notes": {},
}

// DecodeCells converts the cells layer into domain records. Records
// with missing or duplicate cell_id, or with non-polygon geometry, are
// excluded and flagged; attribute value errors are flagged but the
// cell is kept so geometry-only stages can still use it.
func DecodeCells(fc *geojson.FeatureCollection) ([]model.Cell, []model.Issue) {
	var cells []model.Cell
	var issues []model.Issue
	seen := make(map[string]struct{})

	for _, f := range fc.Features {
		props := f.Properties
		if props == nil {
			props = map[string]any{}
		}
		id := propString(props, "cell_id")
		if id == "" {
			issues = append(issues, schemaIssue("cells", "", "missing cell_id"))
			continue
		}
		if _, dup := seen[id]; dup {
			issues = append(issues, schemaIssue("cells", id, "duplicate cell_id"))
			continue
		}
		seen[id] = struct{}{}

		switch f.Geometry.(type) {
		case *geom.Polygon, *geom.MultiPolygon:
		default:
			issues = append(issues, model.Issue{
				Kind: model.IssueGeometry, Layer: "cells", RecordID: id,
				Reason: "cell geometry is not a polygon",
			})
			continue
		}

		c := model.Cell{
			CellID:   id,
			ZoneID:   propString(props, "zone_id"),
			Geometry: f.Geometry,
			Notes:    propString(props, "notes"),
		}
		if r, err := propFloat(props, "cell_radius_mi"); err == nil && r != nil {
			c.RadiusMi = *r
		}

		var valueErr error
		for _, attr := range []struct {
			key  string
			dest **int
		}{
			{"elev_adv_avail", &c.ElevAdvAvail},
			{"tall_struct_avail", &c.TallStructAvail},
			{"backbone_los_likely", &c.BackboneLOSLikely},
			{"clutter_high", &c.ClutterHigh},
			{"confidence_score", &c.ConfidenceScore},
			{"tierB_sites_required", &c.TierBRequired},
			{"tierB_alternate_required", &c.TierBAlternate},
		} {
			v, err := propInt(props, attr.key)
			if err != nil {
				valueErr = err
				continue
			}
			*attr.dest = v
		}
		for _, attr := range []struct {
			key  string
			dest **float64
		}{
			{"pop_weight", &c.PopWeight},
			{"critical_weight", &c.CriticalWeight},
			{"priority_score", &c.PriorityScore},
		} {
			v, err := propFloat(props, attr.key)
			if err != nil {
				valueErr = err
				continue
			}
			*attr.dest = v
		}
		if valueErr != nil {
			issues = append(issues, model.Issue{
				Kind: model.IssueValue, Layer: "cells", RecordID: id,
				Reason: valueErr.Error(),
			})
		}

		c.ConfidenceClass = model.ConfidenceClass(propString(props, "confidence_class"))
		c.TierCDemandClass = model.DemandClass(propString(props, "tierC_demand_class"))

		c.Extra = extraProps(props, cellKnownKeys)
		cells = append(cells, c)
	}
	return cells, issues
}

// EncodeCells converts domain cells back into a FeatureCollection in
// input order, including preserved unknown properties.
func EncodeCells(cells []model.Cell) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{}
	for i := range cells {
		c := &cells[i]
		props := map[string]any{
			"cell_id":        c.CellID,
			"zone_id":        c.ZoneID,
			"cell_radius_mi": c.RadiusMi,
			"notes":          c.Notes,
		}
		putInt(props, "elev_adv_avail", c.ElevAdvAvail)
		putInt(props, "tall_struct_avail", c.TallStructAvail)
		putInt(props, "backbone_los_likely", c.BackboneLOSLikely)
		putInt(props, "clutter_high", c.ClutterHigh)
		putFloat(props, "pop_weight", c.PopWeight)
		putFloat(props, "critical_weight", c.CriticalWeight)
		putInt(props, "confidence_score", c.ConfidenceScore)
		putString(props, "confidence_class", string(c.ConfidenceClass))
		putInt(props, "tierB_sites_required", c.TierBRequired)
		putInt(props, "tierB_alternate_required", c.TierBAlternate)
		putFloat(props, "priority_score", c.PriorityScore)
		putString(props, "tierC_demand_class", string(c.TierCDemandClass))
		mergeExtra(props, c.Extra)

		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry:   c.Geometry,
			Properties: props,
		})
	}
	return fc
}

func schemaIssue(layerName, id, reason string) model.Issue {
	return model.Issue{Kind: model.IssueSchema, Layer: layerName, RecordID: id, Reason: reason}
}

func putInt(props map[string]any, key string, v *int) {
	if v != nil {
		props[key] = *v
	} else {
		props[key] = nil
	}
}

func putFloat(props map[string]any, key string, v *float64) {
	if v != nil {
		props[key] = *v
	} else {
		props[key] = nil
	}
}

func putString(props map[string]any, key, v string) {
	if v != "" {
		props[key] = v
	} else {
		props[key] = nil
	}
}

func extraProps(props map[string]any, known map[string]struct{}) map[string]any {
	var extra map[string]any
	for k, v := range props {
		if _, ok := known[k]; ok {
			continue
		}
		if extra == nil {
			extra = make(map[string]any)
		}
		extra[k] = v
	}
	return extra
}

func mergeExtra(props, extra map[string]any) {
	for k, v := range extra {
		if _, ok := props[k]; !ok {
			props[k] = v
		}
	}
}
