package main

import (
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

func TestShpPolygonToMultiPolygon(t *testing.T) {
	t.Parallel()

	t.Run("single part", func(t *testing.T) {
		t.Parallel()
		p := &shp.Polygon{
			NumParts:  1,
			NumPoints: 5,
			Parts:     []int32{0},
			Points: []shp.Point{
				{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}, {X: 0, Y: 0},
			},
		}

		g := shpPolygonToMultiPolygon(p)
		require.NotNil(t, g)
		mp, ok := g.(*geom.MultiPolygon)
		require.True(t, ok)
		require.Equal(t, 1, mp.NumPolygons())
		assert.Equal(t, 10, len(mp.Polygon(0).LinearRing(0).FlatCoords()))
	})

	t.Run("multiple parts become separate polygons", func(t *testing.T) {
		t.Parallel()
		p := &shp.Polygon{
			NumParts:  2,
			NumPoints: 10,
			Parts:     []int32{0, 5},
			Points: []shp.Point{
				{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 0, Y: 0},
				{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 6, Y: 6}, {X: 5, Y: 6}, {X: 5, Y: 5},
			},
		}

		g := shpPolygonToMultiPolygon(p)
		require.NotNil(t, g)
		mp := g.(*geom.MultiPolygon)
		assert.Equal(t, 2, mp.NumPolygons())
	})

	t.Run("empty shapes rejected", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, shpPolygonToMultiPolygon(nil))
		assert.Nil(t, shpPolygonToMultiPolygon(&shp.Polygon{}))
	})
}
