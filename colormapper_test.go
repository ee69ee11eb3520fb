package wld

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaedenn/wld/internal/fixture"
)

func TestColorMapper_ActiveTileWins(t *testing.T) {
	m := NewColorMapper()
	tile := &Tile{IsActive: true, Type: 0, Wall: 1, Liquid: LiquidWater, LiquidAmount: 255}
	l := m.TileToLookup(tile, 0, 0, 100, 0, 0, LookupOptions{})
	assert.Equal(t, TableTile, l.Table)
	assert.Equal(t, int(0), l.Index)

	c, ok := m.ResolveColor(l)
	require.True(t, ok)
	assert.Equal(t, RGB{151, 107, 75}, c)
}

func TestColorMapper_LiquidBeatsWallWhenTileInactive(t *testing.T) {
	m := NewColorMapper()
	tile := &Tile{IsActive: false, Wall: 1, Liquid: LiquidWater, LiquidAmount: 255}
	l := m.TileToLookup(tile, 0, 0, 100, 0, 0, LookupOptions{})
	assert.Equal(t, TableLiquid, l.Table)
	assert.Equal(t, int(LiquidWater), l.Index)
}

func TestColorMapper_LiquidAtThresholdFallsThroughToWall(t *testing.T) {
	m := NewColorMapper()
	tile := &Tile{IsActive: false, Wall: 1, Liquid: LiquidWater, LiquidAmount: liquidAmountThreshold}
	l := m.TileToLookup(tile, 0, 0, 100, 0, 0, LookupOptions{})
	assert.Equal(t, TableWall, l.Table)
}

func TestColorMapper_NoActiveTileOrLiquidOrWall_FallsBackToBackground(t *testing.T) {
	m := NewColorMapper()
	tile := &Tile{}
	l := m.TileToLookup(tile, 0, 0, 700, 100, 300, LookupOptions{})
	assert.Equal(t, TableSky, l.Table)

	l = m.TileToLookup(tile, 0, 150, 700, 100, 300, LookupOptions{})
	assert.Equal(t, TableDirt, l.Table)

	l = m.TileToLookup(tile, 0, 400, 700, 100, 300, LookupOptions{})
	assert.Equal(t, TableRock, l.Table)
	assert.Equal(t, 0, l.Option)

	l = m.TileToLookup(tile, 0, 699, 700, 100, 300, LookupOptions{})
	assert.Equal(t, TableRock, l.Table)
	assert.Equal(t, 1, l.Option)
}

func TestColorMapper_RockGradientVariesByOption(t *testing.T) {
	m := NewColorMapper()
	top, ok := m.ResolveColor(Lookup{Table: TableRock, Option: 0})
	require.True(t, ok)
	bottom, ok := m.ResolveColor(Lookup{Table: TableRock, Option: 1})
	require.True(t, ok)
	assert.NotEqual(t, top, bottom)
}

func TestColorMapper_Options_SuppressLayers(t *testing.T) {
	m := NewColorMapper()
	tile := &Tile{IsActive: true, Type: 0}
	l := m.TileToLookup(tile, 0, 0, 100, 0, 0, LookupOptions{NoTiles: true, NoWalls: true, NoLiquid: true, NoBG: true})
	assert.Equal(t, TableNone, l.Table)
	_, ok := m.ResolveColor(l)
	assert.False(t, ok)
}

func TestColorMapper_MissingTileFallsThrough(t *testing.T) {
	m := NewColorMapper()
	tile := &Tile{IsActive: true, Type: 0xfff0, Wall: 1}
	l := m.TileToLookup(tile, 0, 0, 100, 0, 0, LookupOptions{})
	assert.NotEqual(t, TableTile, l.Table)
}

func TestColorMapper_WallPlankedAlternatesByColumnParity(t *testing.T) {
	m := NewColorMapper()
	tile := &Tile{Wall: wallPlanked}
	even := m.TileToLookup(tile, 0, 0, 100, 0, 0, LookupOptions{})
	odd := m.TileToLookup(tile, 1, 0, 100, 0, 0, LookupOptions{})
	assert.Equal(t, 0, even.Option)
	assert.Equal(t, 1, odd.Option)
}

func TestColorMapper_RenderImage_ProducesWorldSizedImage(t *testing.T) {
	buf := fixture.MinimalWorld(4, 3, "Canvas")
	model, err := Decode(buf)
	require.NoError(t, err)

	m := NewColorMapper()
	img := m.RenderImage(model, LookupOptions{})
	bounds := img.Bounds()
	assert.Equal(t, model.Width, bounds.Dx())
	assert.Equal(t, model.Height, bounds.Dy())

	// Every pixel should have been touched by a background band since
	// MinimalWorld's cells are all inactive with no wall/liquid.
	c := img.At(0, 0)
	_, _, _, a := c.RGBA()
	assert.NotZero(t, a)
}
