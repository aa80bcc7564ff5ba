package seed

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"

	"github.com/ridgeline-comms/meshplan/internal/hexgrid"
	"github.com/ridgeline-comms/meshplan/internal/model"
)

// CorridorTarget aggregates Tier A targets per corridor.
type CorridorTarget struct {
	CorridorID string
	Required   int
	Alternate  int
	Total      int
}

// TierA seeds Tier A candidate sites by sampling points at equal
// arc-length fractions along each corridor line, then resolving the
// home cell (and through it the zone) for every sample by
// point-in-polygon lookup. Samples falling outside the grid are
// flagged and skipped, never fatal. Returns the seeded sites, the
// per-corridor target rollup (sorted by corridor_id), and any issues.
func TierA(corridors []model.Corridor, cells []model.Cell) ([]model.Site, []CorridorTarget, []model.Issue) {
	var sites []model.Site
	var issues []model.Issue
	byCorridor := make(map[string]*CorridorTarget)

	seq := 1
	for i := range corridors {
		c := &corridors[i]

		required := c.TargetMin
		if required < 0 {
			required = 0
		}
		alternate := c.TargetMax - c.TargetMin
		if alternate < 0 {
			alternate = 0
		}
		total := required + alternate

		t := byCorridor[c.CorridorID]
		if t == nil {
			t = &CorridorTarget{CorridorID: c.CorridorID}
			byCorridor[c.CorridorID] = t
		}
		t.Required += required
		t.Alternate += alternate
		t.Total += total

		if total == 0 || c.Line == nil {
			continue
		}

		points := samplePoints(c.Line, total)
		for j := 0; j < total; j++ {
			cell := hexgrid.Locate(cells, points[j])
			if cell == nil {
				issues = append(issues, model.Issue{
					Kind: model.IssueSchema, Layer: "corridors", RecordID: c.CorridorID,
					Reason: fmt.Sprintf("seed: sample %d falls outside the cell grid", j+1),
				})
				continue
			}

			notes := ""
			if j >= required {
				notes = model.NotesAlt
			}
			sites = append(sites, model.Site{
				SiteID:     fmt.Sprintf("S_A_%04d", seq),
				SiteName:   fmt.Sprintf("Tier A %s #%02d", c.CorridorID, j+1),
				Tier:       model.TierA,
				Status:     model.StatusPending,
				Notes:      notes,
				ZoneID:     cell.ZoneID,
				CellID:     cell.CellID,
				CorridorID: c.CorridorID,
				Point:      points[j],
			})
			seq++
		}
	}

	rows := make([]CorridorTarget, 0, len(byCorridor))
	for _, t := range byCorridor {
		rows = append(rows, *t)
	}
	sort.Slice(rows, func(a, b int) bool { return rows[a].CorridorID < rows[b].CorridorID })
	return sites, rows, issues
}

// samplePoints places n points along a line at equal arc-length
// fractions, excluding the endpoints: sample i sits at fraction
// i/(n+1). A single sample sits at the midpoint by distance.
func samplePoints(line *geom.LineString, n int) []geom.Coord {
	if n <= 0 {
		return nil
	}

	total := lineLengthMi(line)
	if total <= 0 {
		// Degenerate line: repeat the first coordinate.
		first := line.Coord(0)
		points := make([]geom.Coord, n)
		for i := range points {
			points[i] = geom.Coord{first.X(), first.Y()}
		}
		return points
	}

	if n == 1 {
		return []geom.Coord{pointAtDistance(line, total/2)}
	}

	points := make([]geom.Coord, 0, n)
	for i := 1; i <= n; i++ {
		points = append(points, pointAtDistance(line, total*float64(i)/float64(n+1)))
	}
	return points
}

// lineLengthMi is the planning-grade line length in miles, converting
// degree deltas at the local latitude.
func lineLengthMi(line *geom.LineString) float64 {
	var total float64
	for i := 0; i+1 < line.NumCoords(); i++ {
		total += segmentLengthMi(line.Coord(i), line.Coord(i+1))
	}
	return total
}

func segmentLengthMi(a, b geom.Coord) float64 {
	midLat := (a.Y() + b.Y()) / 2
	mx := (b.X() - a.X()) * 69.0 * math.Cos(midLat*math.Pi/180)
	my := (b.Y() - a.Y()) * 69.0
	return math.Sqrt(mx*mx + my*my)
}

// pointAtDistance walks the line to the given arc length and
// interpolates within the containing segment. Distances past the end
// clamp to the final coordinate.
func pointAtDistance(line *geom.LineString, distMi float64) geom.Coord {
	walked := 0.0
	for i := 0; i+1 < line.NumCoords(); i++ {
		a, b := line.Coord(i), line.Coord(i+1)
		seg := segmentLengthMi(a, b)
		if walked+seg >= distMi {
			t := 0.0
			if seg > 0 {
				t = (distMi - walked) / seg
			}
			return geom.Coord{
				a.X() + (b.X()-a.X())*t,
				a.Y() + (b.Y()-a.Y())*t,
			}
		}
		walked += seg
	}
	last := line.Coord(line.NumCoords() - 1)
	return geom.Coord{last.X(), last.Y()}
}

// WriteTargetsCSV writes the per-corridor Tier A target rollup.
func WriteTargetsCSV(w io.Writer, rows []CorridorTarget) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"corridor_id", "required", "alternate", "total"}); err != nil {
		return eris.Wrap(err, "seed: write targets header")
	}
	for _, r := range rows {
		record := []string{r.CorridorID, strconv.Itoa(r.Required), strconv.Itoa(r.Alternate), strconv.Itoa(r.Total)}
		if err := cw.Write(record); err != nil {
			return eris.Wrapf(err, "seed: write targets row %s", r.CorridorID)
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "seed: flush targets CSV")
}
