package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/ridgeline-comms/meshplan/internal/config"
	"github.com/ridgeline-comms/meshplan/internal/layer"
	"github.com/ridgeline-comms/meshplan/internal/model"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	prev := cfg
	t.Cleanup(func() { cfg = prev })
	cfg = &config.Config{
		Layers: config.LayersConfig{
			Zones:     filepath.Join(dir, "zones.geojson"),
			Corridors: filepath.Join(dir, "corridors.geojson"),
			Cells:     filepath.Join(dir, "hex_cells.geojson"),
			Sites:     filepath.Join(dir, "sites.geojson"),
		},
		Validate: config.ValidateConfig{MaxFailureRate: 0.25},
		Store:    config.StoreConfig{Path: filepath.Join(dir, "meshplan.db")},
	}
	return cfg
}

func unitSquare(x, y float64) *geom.Polygon {
	flat := []float64{x, y, x + 1, y, x + 1, y + 1, x, y + 1, x, y}
	return geom.NewPolygonFlat(geom.XY, flat, []int{len(flat)})
}

func TestRunCoverageApply(t *testing.T) {
	c := testConfig(t)

	// C2 touches C1 at the single corner (1,1); C3 shares nothing.
	cells := []model.Cell{
		{CellID: "C1", ZoneID: "Z-01", Geometry: unitSquare(0, 0)},
		{CellID: "C2", ZoneID: "Z-01", Geometry: unitSquare(1, 1)},
		{CellID: "C3", ZoneID: "Z-01", Geometry: unitSquare(5, 5)},
	}
	require.NoError(t, layer.Write(c.Layers.Cells, layer.EncodeCells(cells)))

	sites := []model.Site{
		{SiteID: "S_B_0001", Tier: model.TierB, Status: model.StatusPending, ZoneID: "Z-01", CellID: "C1"},
		{SiteID: "S_B_0002", Tier: model.TierB, Status: model.StatusPending, ZoneID: "Z-01", CellID: "C2"},
		{SiteID: "S_B_0003", Tier: model.TierB, Status: model.StatusPending, ZoneID: "Z-01", CellID: "C3"},
		{SiteID: "S_B_0004", Tier: model.TierB, Status: model.StatusPending, ZoneID: "Z-01", CellID: "C2", Notes: model.NotesAlt},
		{SiteID: "S_A_0001", Tier: model.TierA, Status: model.StatusPending, ZoneID: "Z-01", CellID: "C1", CorridorID: "CORR-1"},
	}
	require.NoError(t, layer.Write(c.Layers.Sites, layer.EncodeSites(sites)))

	rollupPath := filepath.Join(t.TempDir(), "rollup.csv")
	require.NoError(t, coverageApplyCmd.Flags().Set("rollup-csv", rollupPath))
	require.NoError(t, coverageApplyCmd.Flags().Set("no-record", "true"))

	require.NoError(t, runCoverageApply(coverageApplyCmd, nil))

	fc, err := layer.Read(c.Layers.Sites)
	require.NoError(t, err)
	got, issues := layer.DecodeSites(fc)
	require.Empty(t, issues)
	require.Len(t, got, 5)

	byID := make(map[string]model.Site)
	for _, s := range got {
		byID[s.SiteID] = s
	}
	assert.Equal(t, model.StatusSatisfied, byID["S_B_0001"].Status)
	assert.Equal(t, "S_A_0001", byID["S_B_0001"].SatisfiedBy)
	assert.Equal(t, "CORR-1", byID["S_B_0001"].SatisfiedCorridorID)
	assert.Equal(t, model.StatusSatisfied, byID["S_B_0002"].Status, "vertex-touching neighbor covered")
	assert.Equal(t, "CORR-1", byID["S_B_0002"].SatisfiedCorridorID)
	assert.Equal(t, model.StatusPending, byID["S_B_0003"].Status, "isolated cell not covered")
	assert.Equal(t, model.StatusPending, byID["S_B_0004"].Status, "alternate untouched")

	data, err := os.ReadFile(rollupPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "zone_id,tierB_required_before,tierB_required_after,tierB_alt_total,tierA_sites")
	assert.Contains(t, string(data), "Z-01,3,1,1,1")
}

func TestRunCoverageApplyIdempotent(t *testing.T) {
	c := testConfig(t)

	cells := []model.Cell{{CellID: "C1", ZoneID: "Z-01", Geometry: unitSquare(0, 0)}}
	require.NoError(t, layer.Write(c.Layers.Cells, layer.EncodeCells(cells)))

	sites := []model.Site{
		{SiteID: "S_B_0001", Tier: model.TierB, Status: model.StatusPending, ZoneID: "Z-01", CellID: "C1"},
		{SiteID: "S_A_0001", Tier: model.TierA, Status: model.StatusPending, ZoneID: "Z-01", CellID: "C1"},
	}
	require.NoError(t, layer.Write(c.Layers.Sites, layer.EncodeSites(sites)))

	rollupPath := filepath.Join(t.TempDir(), "rollup.csv")
	require.NoError(t, coverageApplyCmd.Flags().Set("rollup-csv", rollupPath))
	require.NoError(t, coverageApplyCmd.Flags().Set("no-record", "true"))

	require.NoError(t, runCoverageApply(coverageApplyCmd, nil))
	first, err := os.ReadFile(c.Layers.Sites)
	require.NoError(t, err)

	require.NoError(t, runCoverageApply(coverageApplyCmd, nil))
	second, err := os.ReadFile(c.Layers.Sites)
	require.NoError(t, err)

	assert.Equal(t, first, second, "rerun leaves the sites layer byte-identical")
}
