package wld

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaedenn/wld/internal/fixture"
)

func TestDecodeMapCells_EmptySectionTwoColumns(t *testing.T) {
	w := fixture.New()
	// Each column: header1 selects MapSectionEmpty, rle type 2 (i16), rle=1
	// covers both rows of a 2x2 grid.
	header1 := uint8(2 << mapShiftRLE)
	w.U8(header1)
	w.I16(1)
	w.U8(header1)
	w.I16(1)

	model := &MapModel{Header: &MapHeader{TilesX: 2, TilesY: 2}}
	require.NoError(t, decodeMapCells(w.Bytes(), model))
	require.Len(t, model.Cells, 4)
	for _, c := range model.Cells {
		assert.Equal(t, uint8(MapSectionEmpty), c.Section)
		assert.Equal(t, uint8(255), c.Light)
	}
}

func TestDecodeMapCells_TileSectionExplicitType(t *testing.T) {
	w := fixture.New()
	header1 := uint8(MapSectionTile<<mapShiftSection) | mapBitType16
	w.U8(header1)
	w.U16(42) // explicit 16-bit type index

	model := &MapModel{Header: &MapHeader{TilesX: 1, TilesY: 1}}
	require.NoError(t, decodeMapCells(w.Bytes(), model))
	require.Len(t, model.Cells, 1)
	assert.Equal(t, uint16(42), model.Cells[0].TypeIndex)
}

func TestDecodeMapCells_LightByteWhenFlagSet(t *testing.T) {
	w := fixture.New()
	header1 := uint8(mapBitLight)
	w.U8(header1)
	w.U8(128) // light level

	model := &MapModel{Header: &MapHeader{TilesX: 1, TilesY: 1}}
	require.NoError(t, decodeMapCells(w.Bytes(), model))
	assert.Equal(t, uint8(128), model.Cells[0].Light)
}

func TestMapModel_AtOutOfBounds(t *testing.T) {
	model := &MapModel{Header: &MapHeader{TilesX: 2, TilesY: 2}, Cells: make([]MapCell, 4)}
	assert.Equal(t, MapCell{}, model.At(-1, 0))
	assert.Equal(t, MapCell{}, model.At(0, 2))
}

func buildMinimalMapBuffer(t *testing.T, tilesX, tilesY int32) []byte {
	t.Helper()

	bodyW := fixture.New()
	header1 := uint8(2 << mapShiftRLE)
	for x := int32(0); x < tilesX; x++ {
		bodyW.U8(header1)
		bodyW.I16(int16(tilesY - 1))
	}
	compressed := fixture.RawDeflate(bodyW.Bytes())

	w := fixture.New()
	w.U32(CompatibleVersion)
	w.U64(relogicMagic | uint64(fileTypeMap)<<56)
	w.U32(0) // revision
	w.U64(0) // world bits
	w.U16(0) // n_sections
	w.BitArrayPrefixed(nil)

	w.String("Minimap")
	w.I32(1) // world id
	w.I32(tilesY)
	w.I32(tilesX)
	w.I16(0) // NumTileOpts
	w.I16(0) // NumWallOpts
	w.I16(0) // NumLiquidOpts
	w.I16(0) // NumSkyOpts
	w.I16(0) // NumDirtOpts
	w.I16(0) // NumRockOpts
	// customTile/customWall bit arrays: zero-length, nothing to write

	w.Raw(compressed)
	return w.Bytes()
}

func TestDecodeMap_EndToEnd(t *testing.T) {
	buf := buildMinimalMapBuffer(t, 2, 2)
	diag := &Diagnostics{}
	model, err := DecodeMap(buf, WithDiagnostics(diag))
	require.NoError(t, err)

	assert.Equal(t, "Minimap", model.Header.WorldName)
	assert.Equal(t, int32(2), model.Header.TilesX)
	assert.Equal(t, int32(2), model.Header.TilesY)
	require.Len(t, model.Cells, 4)
	// option-table size mismatches against the historical constants are
	// expected here (this fixture uses 0, not 419/225/...) and reported
	// as warnings, not failures.
	assert.True(t, diag.HasWarnings())

	cell := model.At(0, 0)
	assert.Equal(t, uint8(MapSectionEmpty), cell.Section)
}
