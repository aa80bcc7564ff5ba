package layer

import (
	"fmt"

	"github.com/ridgeline-comms/meshplan/internal/model"
)

// CheckSiteRefs validates site foreign keys against the loaded zones,
// cells, and corridors. Broken references are flagged, never fatal:
// downstream stages skip unresolvable records individually.
func CheckSiteRefs(sites []model.Site, zones []model.Zone, cells []model.Cell, corridors []model.Corridor) []model.Issue {
	zoneIDs := make(map[string]struct{}, len(zones))
	for i := range zones {
		zoneIDs[zones[i].ZoneID] = struct{}{}
	}
	cellIDs := make(map[string]struct{}, len(cells))
	for i := range cells {
		cellIDs[cells[i].CellID] = struct{}{}
	}
	corridorIDs := make(map[string]struct{}, len(corridors))
	for i := range corridors {
		corridorIDs[corridors[i].CorridorID] = struct{}{}
	}

	var issues []model.Issue
	flag := func(id, reason string) {
		issues = append(issues, schemaIssue("sites", id, reason))
	}

	for i := range sites {
		s := &sites[i]
		if s.ZoneID != "" && len(zoneIDs) > 0 {
			if _, ok := zoneIDs[s.ZoneID]; !ok {
				flag(s.SiteID, fmt.Sprintf("unknown zone_id %q", s.ZoneID))
			}
		}
		if s.CellID != "" && len(cellIDs) > 0 {
			if _, ok := cellIDs[s.CellID]; !ok {
				flag(s.SiteID, fmt.Sprintf("unknown cell_id %q", s.CellID))
			}
		}
		if s.CorridorID != "" && len(corridorIDs) > 0 {
			if _, ok := corridorIDs[s.CorridorID]; !ok {
				flag(s.SiteID, fmt.Sprintf("unknown corridor_id %q", s.CorridorID))
			}
		}
	}
	return issues
}

// CheckCellRefs validates cell zone references. Cells with a blank
// zone_id are legal before zone assignment has run.
func CheckCellRefs(cells []model.Cell, zones []model.Zone) []model.Issue {
	zoneIDs := make(map[string]struct{}, len(zones))
	for i := range zones {
		zoneIDs[zones[i].ZoneID] = struct{}{}
	}

	var issues []model.Issue
	for i := range cells {
		c := &cells[i]
		if c.ZoneID == "" {
			continue
		}
		if _, ok := zoneIDs[c.ZoneID]; !ok {
			issues = append(issues, schemaIssue("cells", c.CellID,
				fmt.Sprintf("unknown zone_id %q", c.ZoneID)))
		}
	}
	return issues
}
