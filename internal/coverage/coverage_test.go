package coverage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridgeline-comms/meshplan/internal/adjacency"
	"github.com/ridgeline-comms/meshplan/internal/model"
)

// index builds an adjacency index directly from neighbor pairs.
func index(pairs ...[2]string) adjacency.Index {
	ix := make(adjacency.Index)
	add := func(a, b string) {
		if ix[a] == nil {
			ix[a] = make(map[string]struct{})
		}
		ix[a][b] = struct{}{}
	}
	for _, p := range pairs {
		add(p[0], p[1])
		add(p[1], p[0])
	}
	return ix
}

func tierB(id, cellID, notes string) model.Site {
	return model.Site{
		SiteID: id,
		Tier:   model.TierB,
		Status: model.StatusPending,
		Notes:  notes,
		ZoneID: "Z-01",
		CellID: cellID,
	}
}

func tierA(id, cellID, corridorID string) model.Site {
	return model.Site{
		SiteID:     id,
		Tier:       model.TierA,
		Status:     model.StatusPending,
		ZoneID:     "Z-01",
		CellID:     cellID,
		CorridorID: corridorID,
	}
}

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("satisfies home cell and ring one", func(t *testing.T) {
		t.Parallel()
		ix := index([2]string{"C1", "C2"})
		sites := []model.Site{
			tierB("S_B_0001", "C1", ""),
			tierB("S_B_0002", "C2", ""),
			tierB("S_B_0003", "C3", ""),
			tierA("S_A_0001", "C1", "CORR-1"),
		}

		out, res := Apply(sites, ix)
		assert.Equal(t, 2, res.Satisfied)
		assert.Equal(t, 1, res.TierAUsed)
		assert.Empty(t, res.Skipped)

		assert.Equal(t, model.StatusSatisfied, out[0].Status)
		assert.Equal(t, "S_A_0001", out[0].SatisfiedBy)
		assert.Equal(t, "CORR-1", out[0].SatisfiedCorridorID)
		assert.Equal(t, model.StatusSatisfied, out[1].Status)
		assert.Equal(t, model.StatusPending, out[2].Status, "ring-2 cell untouched")
	})

	t.Run("alternates never touched", func(t *testing.T) {
		t.Parallel()
		ix := index()
		sites := []model.Site{
			tierB("S_B_0001", "C1", model.NotesAlt),
			tierA("S_A_0001", "C1", "CORR-1"),
		}

		out, res := Apply(sites, ix)
		assert.Zero(t, res.Satisfied)
		assert.Zero(t, res.TierAUsed)
		assert.Equal(t, model.StatusPending, out[0].Status)
		assert.Empty(t, out[0].SatisfiedBy)
	})

	t.Run("idempotent", func(t *testing.T) {
		t.Parallel()
		ix := index()
		sites := []model.Site{
			tierB("S_B_0001", "C1", ""),
			tierA("S_A_0001", "C1", "CORR-1"),
		}

		once, res1 := Apply(sites, ix)
		assert.Equal(t, 1, res1.Satisfied)

		twice, res2 := Apply(once, ix)
		assert.Zero(t, res2.Satisfied, "rerun is a no-op")
		assert.Zero(t, res2.TierAUsed)
		assert.Equal(t, once, twice)
	})

	t.Run("smallest tier A site_id wins ties", func(t *testing.T) {
		t.Parallel()
		ix := index()
		// Declared out of order; ascending site_id decides.
		sites := []model.Site{
			tierA("S_A_0002", "C1", "CORR-2"),
			tierA("S_A_0001", "C1", "CORR-1"),
			tierB("S_B_0001", "C1", ""),
		}

		out, res := Apply(sites, ix)
		assert.Equal(t, 1, res.Satisfied)
		assert.Equal(t, 1, res.TierAUsed)
		assert.Equal(t, "S_A_0001", out[2].SatisfiedBy)
		assert.Equal(t, "CORR-1", out[2].SatisfiedCorridorID)
	})

	t.Run("satisfied provenance never rewritten", func(t *testing.T) {
		t.Parallel()
		ix := index()
		sites := []model.Site{
			tierB("S_B_0001", "C1", ""),
			tierA("S_A_0001", "C1", "CORR-1"),
		}
		out, _ := Apply(sites, ix)

		out = append(out, tierA("S_A_0000", "C1", "CORR-0"))
		again, res := Apply(out, ix)
		assert.Zero(t, res.Satisfied)
		assert.Equal(t, "S_A_0001", again[0].SatisfiedBy)
	})

	t.Run("tier A without cell_id skipped and flagged", func(t *testing.T) {
		t.Parallel()
		ix := index()
		sites := []model.Site{
			tierB("S_B_0001", "C1", ""),
			tierA("S_A_0001", "", "CORR-1"),
		}

		out, res := Apply(sites, ix)
		assert.Zero(t, res.Satisfied)
		require.Len(t, res.Skipped, 1)
		assert.Equal(t, model.IssueSchema, res.Skipped[0].Kind)
		assert.Equal(t, "S_A_0001", res.Skipped[0].RecordID)
		assert.Equal(t, model.StatusPending, out[0].Status)
	})

	t.Run("input slice not modified", func(t *testing.T) {
		t.Parallel()
		ix := index()
		sites := []model.Site{
			tierB("S_B_0001", "C1", ""),
			tierA("S_A_0001", "C1", "CORR-1"),
		}
		_, _ = Apply(sites, ix)
		assert.Equal(t, model.StatusPending, sites[0].Status)
	})

	t.Run("no tier A sites", func(t *testing.T) {
		t.Parallel()
		sites := []model.Site{tierB("S_B_0001", "C1", "")}
		out, res := Apply(sites, index())
		assert.Zero(t, res.Satisfied)
		assert.Equal(t, model.StatusPending, out[0].Status)
	})
}

// TestApplyScenario walks a three-cell corridor: the Tier A site in C2
// satisfies required sites in C1, C2, and C3 through ring-1 adjacency.
func TestApplyScenario(t *testing.T) {
	t.Parallel()

	ix := index([2]string{"C1", "C2"}, [2]string{"C2", "C3"})
	sites := []model.Site{
		tierB("S_B_0001", "C1", ""),
		tierB("S_B_0002", "C2", ""),
		tierB("S_B_0003", "C2", model.NotesAlt),
		tierB("S_B_0004", "C3", ""),
		tierA("S_A_0001", "C2", "CORR-1"),
	}

	out, res := Apply(sites, ix)
	assert.Equal(t, 3, res.Satisfied)
	assert.Equal(t, 1, res.TierAUsed)

	for _, i := range []int{0, 1, 3} {
		assert.Equal(t, model.StatusSatisfied, out[i].Status, out[i].SiteID)
		assert.Equal(t, "S_A_0001", out[i].SatisfiedBy)
		assert.Equal(t, "CORR-1", out[i].SatisfiedCorridorID)
	}
	assert.Equal(t, model.StatusPending, out[2].Status, "alternate stays pending")
}
