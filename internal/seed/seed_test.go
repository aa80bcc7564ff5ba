package seed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/ridgeline-comms/meshplan/internal/model"
)

func intp(v int) *int { return &v }

func squareCell(id, zoneID string, x, y float64, required, alternate int) model.Cell {
	flat := []float64{x, y, x + 1, y, x + 1, y + 1, x, y + 1, x, y}
	return model.Cell{
		CellID:         id,
		ZoneID:         zoneID,
		Geometry:       geom.NewPolygonFlat(geom.XY, flat, []int{len(flat)}),
		TierBRequired:  intp(required),
		TierBAlternate: intp(alternate),
	}
}

func TestTierB(t *testing.T) {
	t.Parallel()

	t.Run("seeds required then alternates", func(t *testing.T) {
		t.Parallel()
		cells := []model.Cell{squareCell("H_000001", "Z-01", 0, 0, 2, 1)}
		sites, rows, issues := TierB(cells)
		require.Empty(t, issues)
		require.Len(t, sites, 3)

		assert.Equal(t, "S_B_0001", sites[0].SiteID)
		assert.Equal(t, "S_B_0002", sites[1].SiteID)
		assert.Equal(t, "S_B_0003", sites[2].SiteID)
		assert.False(t, sites[0].Alternate())
		assert.False(t, sites[1].Alternate())
		assert.True(t, sites[2].Alternate())
		for _, s := range sites {
			assert.Equal(t, model.TierB, s.Tier)
			assert.Equal(t, model.StatusPending, s.Status)
			assert.Equal(t, "H_000001", s.CellID)
			assert.Equal(t, "Z-01", s.ZoneID)
		}

		require.Len(t, rows, 1)
		assert.Equal(t, ZoneRequirement{ZoneID: "Z-01", Required: 2, Alternate: 1, Total: 3}, rows[0])
	})

	t.Run("ids continue across cells", func(t *testing.T) {
		t.Parallel()
		cells := []model.Cell{
			squareCell("H_000001", "Z-01", 0, 0, 1, 0),
			squareCell("H_000002", "Z-01", 2, 0, 1, 1),
		}
		sites, _, issues := TierB(cells)
		require.Empty(t, issues)
		require.Len(t, sites, 3)
		assert.Equal(t, "S_B_0003", sites[2].SiteID)
		assert.Equal(t, "H_000002", sites[2].CellID)
	})

	t.Run("deterministic", func(t *testing.T) {
		t.Parallel()
		cells := []model.Cell{squareCell("H_000001", "Z-01", 0, 0, 2, 1)}
		a, _, _ := TierB(cells)
		b, _, _ := TierB(cells)
		require.Equal(t, a, b)
	})

	t.Run("candidate points distinct within a cell", func(t *testing.T) {
		t.Parallel()
		cells := []model.Cell{squareCell("H_000001", "Z-01", 0, 0, 2, 1)}
		sites, _, _ := TierB(cells)
		seen := make(map[[2]float64]struct{})
		for _, s := range sites {
			key := [2]float64{s.Point.X(), s.Point.Y()}
			_, dup := seen[key]
			assert.False(t, dup, "duplicate candidate point")
			seen[key] = struct{}{}
		}
	})

	t.Run("cell without zone flagged and skipped", func(t *testing.T) {
		t.Parallel()
		cells := []model.Cell{squareCell("H_000001", "", 0, 0, 1, 0)}
		sites, rows, issues := TierB(cells)
		assert.Empty(t, sites)
		assert.Empty(t, rows)
		require.Len(t, issues, 1)
		assert.Contains(t, issues[0].Reason, "zone_id")
	})

	t.Run("unscored cell flagged and skipped", func(t *testing.T) {
		t.Parallel()
		c := squareCell("H_000001", "Z-01", 0, 0, 0, 0)
		c.TierBRequired = nil
		sites, _, issues := TierB([]model.Cell{c})
		assert.Empty(t, sites)
		require.Len(t, issues, 1)
		assert.Contains(t, issues[0].Reason, "score")
	})

	t.Run("zero requirement still counted in rollup", func(t *testing.T) {
		t.Parallel()
		cells := []model.Cell{squareCell("H_000001", "Z-01", 0, 0, 0, 0)}
		sites, rows, issues := TierB(cells)
		assert.Empty(t, sites)
		require.Empty(t, issues)
		require.Len(t, rows, 1)
		assert.Zero(t, rows[0].Total)
	})
}

func TestTierA(t *testing.T) {
	t.Parallel()

	// Three unit cells in a row along y in [0,1]; the corridor runs
	// horizontally through them at y=0.5.
	cells := []model.Cell{
		squareCell("H_000001", "Z-01", 0, 0, 0, 0),
		squareCell("H_000002", "Z-01", 1, 0, 0, 0),
		squareCell("H_000003", "Z-02", 2, 0, 0, 0),
	}
	line := geom.NewLineStringFlat(geom.XY, []float64{0, 0.5, 3, 0.5})

	t.Run("samples resolve home cell and zone", func(t *testing.T) {
		t.Parallel()
		corridors := []model.Corridor{{CorridorID: "CORR-1", Line: line, TargetMin: 2, TargetMax: 3}}
		sites, rows, issues := TierA(corridors, cells)
		require.Empty(t, issues)
		require.Len(t, sites, 3)

		// Samples at fractions 1/4, 2/4, 3/4 of a 3-degree line land
		// in cells one, two, and three.
		assert.Equal(t, "H_000001", sites[0].CellID)
		assert.Equal(t, "H_000002", sites[1].CellID)
		assert.Equal(t, "H_000003", sites[2].CellID)
		assert.Equal(t, "Z-02", sites[2].ZoneID)

		assert.Equal(t, "S_A_0001", sites[0].SiteID)
		assert.False(t, sites[0].Alternate())
		assert.False(t, sites[1].Alternate())
		assert.True(t, sites[2].Alternate())
		for _, s := range sites {
			assert.Equal(t, model.TierA, s.Tier)
			assert.Equal(t, "CORR-1", s.CorridorID)
		}

		require.Len(t, rows, 1)
		assert.Equal(t, CorridorTarget{CorridorID: "CORR-1", Required: 2, Alternate: 1, Total: 3}, rows[0])
	})

	t.Run("single sample at midpoint", func(t *testing.T) {
		t.Parallel()
		corridors := []model.Corridor{{CorridorID: "CORR-1", Line: line, TargetMin: 1, TargetMax: 1}}
		sites, _, issues := TierA(corridors, cells)
		require.Empty(t, issues)
		require.Len(t, sites, 1)
		assert.Equal(t, "H_000002", sites[0].CellID)
		assert.InDelta(t, 1.5, sites[0].Point.X(), 1e-9)
	})

	t.Run("sample outside grid flagged and skipped", func(t *testing.T) {
		t.Parallel()
		far := geom.NewLineStringFlat(geom.XY, []float64{50, 50, 53, 50})
		corridors := []model.Corridor{{CorridorID: "CORR-2", Line: far, TargetMin: 1, TargetMax: 1}}
		sites, _, issues := TierA(corridors, cells)
		assert.Empty(t, sites)
		require.Len(t, issues, 1)
		assert.Equal(t, "CORR-2", issues[0].RecordID)
		assert.Contains(t, issues[0].Reason, "outside")
	})

	t.Run("negative and inverted targets clamp to zero", func(t *testing.T) {
		t.Parallel()
		corridors := []model.Corridor{{CorridorID: "CORR-3", Line: line, TargetMin: 3, TargetMax: 1}}
		sites, rows, issues := TierA(corridors, cells)
		require.Empty(t, issues)
		assert.Len(t, sites, 3, "max below min yields no alternates")
		require.Len(t, rows, 1)
		assert.Zero(t, rows[0].Alternate)
	})

	t.Run("deterministic", func(t *testing.T) {
		t.Parallel()
		corridors := []model.Corridor{{CorridorID: "CORR-1", Line: line, TargetMin: 2, TargetMax: 4}}
		a, _, _ := TierA(corridors, cells)
		b, _, _ := TierA(corridors, cells)
		require.Equal(t, a, b)
	})
}

func TestWriteCSVs(t *testing.T) {
	t.Parallel()

	t.Run("requirements", func(t *testing.T) {
		t.Parallel()
		var buf strings.Builder
		rows := []ZoneRequirement{{ZoneID: "Z-01", Required: 2, Alternate: 1, Total: 3}}
		require.NoError(t, WriteRequirementsCSV(&buf, rows))

		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "zone_id,tierB_sites_required,tierB_alternate_required,total", lines[0])
		assert.Equal(t, "Z-01,2,1,3", lines[1])
	})

	t.Run("targets", func(t *testing.T) {
		t.Parallel()
		var buf strings.Builder
		rows := []CorridorTarget{{CorridorID: "CORR-1", Required: 2, Alternate: 1, Total: 3}}
		require.NoError(t, WriteTargetsCSV(&buf, rows))

		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "corridor_id,required,alternate,total", lines[0])
		assert.Equal(t, "CORR-1,2,1,3", lines[1])
	})
}
