package wld

import (
	"io"

	"github.com/klauspost/compress/flate"
)

// Historical option-table sizes the minimap format has always shipped
// with; MapDecoder asserts against them as a sanity check, matching
// MapFile.py's hard-coded constants.
const (
	expectedTileOpts   = 419
	expectedWallOpts   = 225
	expectedLiquidOpts = 3
	expectedSkyOpts    = 256
	expectedDirtOpts   = 256
	expectedRockOpts   = 256
)

// Map cell section kinds (bits 1-3 of the first per-cell header byte).
const (
	MapSectionEmpty = iota
	MapSectionTile
	MapSectionWall
	MapSectionWater
	MapSectionLava
	MapSectionHoney
	MapSectionHeavenHell
	MapSectionBackground
)

const (
	mapBitMoreHeader = 0b00000001
	mapMaskSection   = 0b00001110
	mapShiftSection  = 1
	mapBitType16     = 0b00010000
	mapBitLight      = 0b00100000
	mapMaskRLE       = 0b11000000
	mapShiftRLE      = 6
)

// MapHeader carries the minimap-specific fields that follow the common
// WorldHeader prefix.
type MapHeader struct {
	*WorldHeader
	WorldName string
	WorldID   int32
	TilesY    int32
	TilesX    int32

	NumTileOpts, NumWallOpts, NumLiquidOpts     int16
	NumSkyOpts, NumDirtOpts, NumRockOpts        int16

	CustomTileOpts []bool
	CustomWallOpts []bool

	// TileOptionCounts[type] and WallOptionCounts[type] hold the
	// per-customized-type option count read
	// from the option tables (step 4 of §4.4); only entries whose bit
	// was set in CustomTileOpts/CustomWallOpts are populated.
	TileOptionCounts map[int]uint8
	WallOptionCounts map[int]uint8
}

// MapCell is one decoded minimap grid cell, as emitted by the per-cell
// header/body the compressed body unpacks into.
type MapCell struct {
	Section   uint8
	TypeIndex uint16
	Light     uint8
	Variant   uint8
}

// MapModel is the decoded minimap: its header and the full cell grid,
// column-major in (x outer, y inner) order to match the world tile
// grid's own walk (see decodeTileGrid).
type MapModel struct {
	Header *MapHeader
	Cells  []MapCell // index = x*TilesY + y
}

// At returns the cell at (x, y), or the zero MapCell if out of bounds.
func (m *MapModel) At(x, y int) MapCell {
	h := m.Header
	if x < 0 || y < 0 || x >= int(h.TilesX) || y >= int(h.TilesY) {
		return MapCell{}
	}
	return m.Cells[x*int(h.TilesY)+y]
}

// DecodeMap parses a complete minimap file buffer into a MapModel.
func DecodeMap(buf []byte, opts ...DecodeOption) (*MapModel, error) {
	cfg := newDecodeConfig(opts)
	diag := cfg.diagnostics

	s := NewByteStream(buf)
	base, err := readWorldHeader(s, fileTypeMap)
	if err != nil {
		return nil, err
	}

	worldName, err := s.ReadString()
	if err != nil {
		return nil, err
	}
	worldID, err := s.ReadI32()
	if err != nil {
		return nil, err
	}
	tilesY, err := s.ReadI32()
	if err != nil {
		return nil, err
	}
	tilesX, err := s.ReadI32()
	if err != nil {
		return nil, err
	}

	counts := make([]int16, 6)
	for i := range counts {
		v, err := s.ReadI16()
		if err != nil {
			return nil, err
		}
		counts[i] = v
	}

	h := &MapHeader{
		WorldHeader: base,
		WorldName:   worldName,
		WorldID:     worldID,
		TilesY:      tilesY,
		TilesX:      tilesX,
		NumTileOpts: counts[0], NumWallOpts: counts[1], NumLiquidOpts: counts[2],
		NumSkyOpts: counts[3], NumDirtOpts: counts[4], NumRockOpts: counts[5],
	}

	for label, pair := range map[string][2]int16{
		"tile opts":   {expectedTileOpts, h.NumTileOpts},
		"wall opts":   {expectedWallOpts, h.NumWallOpts},
		"liquid opts": {expectedLiquidOpts, h.NumLiquidOpts},
		"sky opts":    {expectedSkyOpts, h.NumSkyOpts},
		"dirt opts":   {expectedDirtOpts, h.NumDirtOpts},
		"rock opts":   {expectedRockOpts, h.NumRockOpts},
	} {
		expected, actual := pair[0], pair[1]
		if actual != expected {
			diag.warn(WarnUnknownFlag, s.Tell(), "%s count %d differs from historical constant %d", label, actual, expected)
		}
	}

	customTile, err := s.ReadBitArray(int(h.NumTileOpts))
	if err != nil {
		return nil, err
	}
	customWall, err := s.ReadBitArray(int(h.NumWallOpts))
	if err != nil {
		return nil, err
	}
	h.CustomTileOpts, h.CustomWallOpts = customTile, customWall

	h.TileOptionCounts = make(map[int]uint8)
	for i, set := range customTile {
		if !set {
			continue
		}
		n, err := s.ReadU8()
		if err != nil {
			return nil, err
		}
		h.TileOptionCounts[i] = n
	}
	h.WallOptionCounts = make(map[int]uint8)
	for i, set := range customWall {
		if !set {
			continue
		}
		n, err := s.ReadU8()
		if err != nil {
			return nil, err
		}
		h.WallOptionCounts[i] = n
	}

	body, err := inflateRemainder(s)
	if err != nil {
		return nil, err
	}

	model := &MapModel{Header: h}
	if err := decodeMapCells(body, model); err != nil {
		return nil, err
	}
	return model, nil
}

// inflateRemainder decompresses everything left in s as a raw deflate
// stream (no zlib header, matching the source's wbits=-15 mode).
func inflateRemainder(s *ByteStream) ([]byte, error) {
	rest, err := s.take(s.Remaining())
	if err != nil {
		return nil, err
	}
	zr := flate.NewReader(&byteReader{rest})
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, decodeErrorf(s.Tell(), ErrTruncated, "inflating map body: %v", err)
	}
	return out, nil
}

type byteReader struct{ b []byte }

func (r *byteReader) Read(p []byte) (int, error) {
	n := copy(p, r.b)
	if n == 0 {
		return 0, io.EOF
	}
	r.b = r.b[n:]
	return n, nil
}

// decodeMapCells walks the inflated per-cell stream and expands each
// record's RLE run into model.Cells. Cells of the tile, wall and
// background sections always read an explicit type index; cells of the
// other sections read none and keep TypeIndex 0, so no cell takes its
// index from a previous cell.
func decodeMapCells(body []byte, model *MapModel) error {
	s := NewByteStream(body)
	h := model.Header
	width, height := int(h.TilesX), int(h.TilesY)
	cells := make([]MapCell, width*height)

	var lastTileType, lastWallType, lastBGType uint16

	for x := 0; x < width; x++ {
		for y := 0; y < height; {
			header1, err := s.ReadU8()
			if err != nil {
				return err
			}
			var header2 uint8
			if header1&mapBitMoreHeader != 0 {
				header2, err = s.ReadU8()
				if err != nil {
					return err
				}
			}

			section := (header1 & mapMaskSection) >> mapShiftSection
			cell := MapCell{Section: section}

			hasExplicitType := section == MapSectionTile || section == MapSectionWall || section == MapSectionBackground
			if hasExplicitType {
				if header1&mapBitType16 != 0 {
					v, err := s.ReadU16()
					if err != nil {
						return err
					}
					cell.TypeIndex = v
				} else {
					v, err := s.ReadU8()
					if err != nil {
						return err
					}
					cell.TypeIndex = uint16(v)
				}
				switch section {
				case MapSectionTile:
					lastTileType = cell.TypeIndex
				case MapSectionWall:
					lastWallType = cell.TypeIndex
				case MapSectionBackground:
					lastBGType = cell.TypeIndex
				}
			} else {
				switch section {
				case MapSectionTile:
					cell.TypeIndex = lastTileType
				case MapSectionWall:
					cell.TypeIndex = lastWallType
				case MapSectionBackground:
					cell.TypeIndex = lastBGType
				}
			}

			cell.Light = 255
			if header1&mapBitLight != 0 {
				l, err := s.ReadU8()
				if err != nil {
					return err
				}
				cell.Light = l
			}

			if header2 != 0 {
				cell.Variant = (header2 >> 1) & 0x1f
			}

			rleType := (header1 & mapMaskRLE) >> mapShiftRLE
			rle := 0
			switch {
			case rleType == 1:
				v, err := s.ReadU8()
				if err != nil {
					return err
				}
				rle = int(v)
			case rleType != 0:
				v, err := s.ReadI16()
				if err != nil {
					return err
				}
				rle = int(v)
			}

			for k := 0; k <= rle && y < height; k++ {
				cells[x*height+y] = cell
				y++
			}
		}
	}

	model.Cells = cells
	return nil
}
