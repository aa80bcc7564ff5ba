package layer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

func hexPoly() *geom.Polygon {
	flat := []float64{0, 0, 2, 0, 3, 1, 2, 2, 0, 2, -1, 1, 0, 0}
	return geom.NewPolygonFlat(geom.XY, flat, []int{len(flat)})
}

func TestReadWrite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cells.geojson")
	fc := &geojson.FeatureCollection{
		Features: []*geojson.Feature{{
			Geometry:   hexPoly(),
			Properties: map[string]any{"cell_id": "H_000001"},
		}},
	}

	require.NoError(t, Write(path, fc))

	got, err := Read(path)
	require.NoError(t, err)
	require.Len(t, got.Features, 1)
	assert.Equal(t, "H_000001", got.Features[0].Properties["cell_id"])

	t.Run("stable formatting", func(t *testing.T) {
		first, err := os.ReadFile(path)
		require.NoError(t, err)
		require.NoError(t, Write(path, got))
		second, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("missing file is fatal", func(t *testing.T) {
		t.Parallel()
		_, err := Read(filepath.Join(t.TempDir(), "absent.geojson"))
		assert.Error(t, err)
	})

	t.Run("unparseable file is fatal", func(t *testing.T) {
		t.Parallel()
		bad := filepath.Join(t.TempDir(), "bad.geojson")
		require.NoError(t, os.WriteFile(bad, []byte("not json"), 0o644))
		_, err := Read(bad)
		assert.Error(t, err)
	})
}

func TestCheckFailureRate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		failed  int
		total   int
		maxRate float64
		wantErr bool
	}{
		{"no failures", 0, 100, 0.25, false},
		{"under threshold", 20, 100, 0.25, false},
		{"at threshold", 25, 100, 0.25, false},
		{"over threshold", 26, 100, 0.25, true},
		{"empty layer", 0, 0, 0.25, false},
		{"all failed", 3, 3, 0.25, true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := CheckFailureRate("cells", tt.failed, tt.total, tt.maxRate)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPropHelpers(t *testing.T) {
	t.Parallel()

	props := map[string]any{
		"s":        "text",
		"f":        1.5,
		"i":        3.0,
		"frac":     3.7,
		"null":     nil,
		"wrongtyp": "nope",
	}

	t.Run("string", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "text", propString(props, "s"))
		assert.Empty(t, propString(props, "missing"))
		assert.Empty(t, propString(props, "f"))
	})

	t.Run("float", func(t *testing.T) {
		t.Parallel()
		v, err := propFloat(props, "f")
		require.NoError(t, err)
		require.NotNil(t, v)
		assert.Equal(t, 1.5, *v)

		v, err = propFloat(props, "null")
		require.NoError(t, err)
		assert.Nil(t, v)

		_, err = propFloat(props, "wrongtyp")
		assert.Error(t, err)
	})

	t.Run("int", func(t *testing.T) {
		t.Parallel()
		v, err := propInt(props, "i")
		require.NoError(t, err)
		require.NotNil(t, v)
		assert.Equal(t, 3, *v)

		_, err = propInt(props, "frac")
		assert.Error(t, err, "fractional values never truncated")
	})
}
