package wld

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaedenn/wld/internal/fixture"
)

func buildHeaderBytes(version uint32, fileType uint8, nSections int) []byte {
	w := fixture.New()
	w.U32(version)
	w.U64(relogicMagic | uint64(fileType)<<56)
	w.U32(0) // revision
	w.U64(0) // world bits
	w.U16(uint16(nSections))
	for i := 0; i < nSections; i++ {
		w.U32(uint32(i * 100))
	}
	w.BitArrayPrefixed(nil)
	return w.Bytes()
}

func TestReadWorldHeader_Valid(t *testing.T) {
	buf := buildHeaderBytes(CompatibleVersion, fileTypeWorld, 7)
	s := NewByteStream(buf)
	h, err := readWorldHeader(s, fileTypeWorld)
	require.NoError(t, err)
	assert.Equal(t, uint32(CompatibleVersion), h.Version)
	assert.Len(t, h.SectionPointers, 7)
	assert.Empty(t, h.ImportantTiles)
}

func TestReadWorldHeader_WrongFileType(t *testing.T) {
	buf := buildHeaderBytes(CompatibleVersion, fileTypeMap, 7)
	s := NewByteStream(buf)
	_, err := readWorldHeader(s, fileTypeWorld)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFile)
}

func TestReadWorldHeader_VersionTooOld(t *testing.T) {
	buf := buildHeaderBytes(CompatibleVersion-1, fileTypeWorld, 7)
	s := NewByteStream(buf)
	_, err := readWorldHeader(s, fileTypeWorld)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestWorldHeader_FooterPointer_PreAndPost140(t *testing.T) {
	old := &WorldHeader{
		Version:         Version101,
		SectionPointers: []uint32{0, 1, 2, 3, 4, 500, 0},
	}
	assert.Equal(t, 500, old.FooterPointer())
	assert.Equal(t, -1, old.TileEntitiesPointer())

	modern := &WorldHeader{
		Version:         Version140,
		SectionPointers: []uint32{0, 1, 2, 3, 4, 600, 700},
	}
	assert.Equal(t, 600, modern.TileEntitiesPointer())
	assert.Equal(t, 700, modern.FooterPointer())
}
