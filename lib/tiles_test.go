package lib

import "testing"

import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

func TestVisibleTiles(t *testing.T) {
	v := newTestViewport(t, sanFrancisco)
	tiles, err := v.VisibleTiles()
	require.NoError(t, err)
	expected := []TileCoord{
		{X: 326, Y: 791, Zoom: 11}, {X: 327, Y: 791, Zoom: 11}, {X: 328, Y: 791, Zoom: 11},
		{X: 326, Y: 792, Zoom: 11}, {X: 327, Y: 792, Zoom: 11}, {X: 328, Y: 792, Zoom: 11},
	}
	assert.Equal(t, expected, tiles)
	assert.Equal(t, "11/326/791", tiles[0].String())
}

func TestVisibleTilesWholeWorld(t *testing.T) {
	v := newTestViewport(t, ViewportProps{Width: 2048, Height: 2048, Zoom: 0.5})
	tiles, err := v.VisibleTiles()
	require.NoError(t, err)
	assert.Equal(t, []TileCoord{{X: 0, Y: 0, Zoom: 0}}, tiles)
}

func TestVisibleTilesAcrossAntimeridian(t *testing.T) {
	v := newTestViewport(t, ViewportProps{Width: 400, Height: 200, Longitude: 180, Zoom: 3})
	tiles, err := v.VisibleTiles()
	require.NoError(t, err)
	columns := make(map[int]bool)
	for _, tile := range tiles {
		assert.Equal(t, 3, tile.Zoom)
		assert.True(t, tile.X >= 0 && tile.X < 8, tile)
		columns[tile.X] = true
	}
	assert.True(t, columns[7])
	assert.True(t, columns[0])
}
