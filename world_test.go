package wld

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaedenn/wld/internal/fixture"
)

func TestDecode_MinimalWorld(t *testing.T) {
	buf := fixture.MinimalWorld(4, 3, "Meadow")
	diag := &Diagnostics{}

	model, err := Decode(buf, WithDiagnostics(diag))
	require.NoError(t, err)
	require.False(t, diag.HasWarnings(), "%v", diag.Warnings)

	assert.Equal(t, "Meadow", model.Flags.Title)
	assert.Equal(t, 4, model.Width)
	assert.Equal(t, 3, model.Height)
	assert.Empty(t, model.Chests)
	assert.Empty(t, model.Signs)
	assert.Empty(t, model.NPCs)
	assert.True(t, model.FooterLoaded)
	assert.Equal(t, "Meadow", model.FooterTitle)

	for pt, tile := range model.Tiles() {
		require.NotNil(t, tile)
		assert.False(t, tile.IsActive, "tile at %v should be inactive", pt)
	}
}

func TestDecode_TileAtOutOfBounds(t *testing.T) {
	buf := fixture.MinimalWorld(2, 2, "Bounds")
	model, err := Decode(buf)
	require.NoError(t, err)
	assert.Nil(t, model.TileAt(-1, 0))
	assert.Nil(t, model.TileAt(0, -1))
	assert.Nil(t, model.TileAt(2, 0))
	assert.Nil(t, model.TileAt(0, 2))
	assert.NotNil(t, model.TileAt(0, 0))
}

func TestDecode_NilDiagnosticsIsSafe(t *testing.T) {
	buf := fixture.MinimalWorld(1, 1, "Solo")
	_, err := Decode(buf) // no WithDiagnostics option
	require.NoError(t, err)
}

func TestDecodeTileGrid_MutableVsSharedPointers(t *testing.T) {
	// RLE extends only down a column, so a 2x2 grid needs one tile
	// record per column, each with rle=1 (height-1) to cover both rows.
	writeColumn := func(w *fixture.Writer) {
		header1 := uint8(2 << shiftRLE) // rle type 2, i16 count follows
		w.U8(header1)
		w.I16(1) // rle=1 -> covers 2 rows
	}

	w := fixture.New()
	writeColumn(w)
	writeColumn(w)
	s := NewByteStream(w.Bytes())

	model := &WorldModel{Width: 2, Height: 2}
	require.NoError(t, decodeTileGrid(s, model, nil, false))
	assert.Same(t, model.tiles[0], model.tiles[1])   // column x=0: y=0,1 share
	assert.Same(t, model.tiles[2], model.tiles[3])   // column x=1: y=0,1 share
	assert.NotSame(t, model.tiles[0], model.tiles[2]) // different columns

	w2 := fixture.New()
	writeColumn(w2)
	writeColumn(w2)
	s2 := NewByteStream(w2.Bytes())
	model2 := &WorldModel{Width: 2, Height: 2}
	require.NoError(t, decodeTileGrid(s2, model2, nil, true))
	assert.NotSame(t, model2.tiles[0], model2.tiles[1])
	assert.Equal(t, *model2.tiles[0], *model2.tiles[1])
}

func TestDecode_ChestAndSignLookup(t *testing.T) {
	buf := fixture.MinimalWorld(2, 2, "Lookups")
	model, err := Decode(buf)
	require.NoError(t, err)

	_, ok := model.ChestAt(99, 99)
	assert.False(t, ok)
	_, ok = model.SignAt(99, 99)
	assert.False(t, ok)
	_, ok = model.TileEntityByID(1)
	assert.False(t, ok)
}

func TestWorldModel_KillCounts(t *testing.T) {
	model := &WorldModel{Flags: &WorldFlags{KilledMobs: []uint32{0, 5, 10}}}
	counts := model.KillCounts()
	require.Len(t, counts, 3)
	assert.Equal(t, KillCount{BannerID: 1, Count: 5}, counts[1])
	assert.Equal(t, KillCount{BannerID: 2, Count: 10}, counts[2])
}
