package wld

import (
	"iter"
	"image"

	"github.com/kelindar/intmap"
)

// DecodeOption configures a World/Map decode. Mirrors the teacher's
// functional-options pattern (uofile.Option, uop.Option) rather than a
// config struct, since every option here is independently optional.
type DecodeOption func(*decodeConfig)

type decodeConfig struct {
	diagnostics *Diagnostics
	mutableTiles bool
}

// WithDiagnostics routes non-fatal warnings into d instead of discarding
// them (the zero value decodes silently).
func WithDiagnostics(d *Diagnostics) DecodeOption {
	return func(c *decodeConfig) { c.diagnostics = d }
}

// WithMutableTiles makes every RLE-expanded cell its own Tile instance
// instead of sharing one pointer across the run, trading memory for the
// ability to mutate a single cell without affecting its siblings.
func WithMutableTiles() DecodeOption {
	return func(c *decodeConfig) { c.mutableTiles = true }
}

func newDecodeConfig(opts []DecodeOption) *decodeConfig {
	c := &decodeConfig{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WorldModel is the fully decoded, in-memory representation of a world
// file: header, flags, tile grid, and every entity section. It owns all
// of the decoded data; the ByteStream and WorldDecoder that produced it
// are not retained.
type WorldModel struct {
	Header *WorldHeader
	Flags  *WorldFlags

	Width, Height int
	tiles         []*Tile // column-major: index = x*Height + y

	Chests []Chest
	Signs  []Sign

	NPCs []NPCEntity
	Mobs []MobEntity

	TileEntities []TileEntity

	FooterLoaded bool
	FooterTitle  string
	FooterWorldID int32

	Diagnostics *Diagnostics

	chestByPos *intmap.Map
	signByPos  *intmap.Map
	entityByID *intmap.Map
}

func packXY(x, y int32) uint32 {
	return uint32(x)<<16 ^ uint32(uint16(y))
}

// TileAt returns the tile at (x, y), or nil if out of bounds.
func (m *WorldModel) TileAt(x, y int) *Tile {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return nil
	}
	return m.tiles[x*m.Height+y]
}

// Tiles iterates every cell of the grid in row-major pixel order
// (suitable for driving an image writer), yielding the coordinate and
// the tile occupying it. Ported from World.EachTile.
func (m *WorldModel) Tiles() iter.Seq2[image.Point, *Tile] {
	return func(yield func(image.Point, *Tile) bool) {
		for y := 0; y < m.Height; y++ {
			for x := 0; x < m.Width; x++ {
				if !yield(image.Pt(x, y), m.tiles[x*m.Height+y]) {
					return
				}
			}
		}
	}
}

// TileCounts tallies active tiles by type across the whole grid.
// Ported from World.CountTiles.
func (m *WorldModel) TileCounts() map[uint16]int {
	counts := make(map[uint16]int)
	for _, t := range m.tiles {
		if t != nil && t.IsActive {
			counts[t.Type]++
		}
	}
	return counts
}

// KillCount pairs a WorldFlags.KilledMobs slot with its banner index.
type KillCount struct {
	BannerID int
	Count    uint32
}

// KillCounts exposes WorldFlags.KilledMobs as (banner id, count) pairs,
// ported from WorldFile.py's --kills report.
func (m *WorldModel) KillCounts() []KillCount {
	out := make([]KillCount, 0, len(m.Flags.KilledMobs))
	for i, c := range m.Flags.KilledMobs {
		out = append(out, KillCount{BannerID: i, Count: c})
	}
	return out
}

// ChestAt returns the chest at (x, y), if any.
func (m *WorldModel) ChestAt(x, y int32) (*Chest, bool) {
	idx, ok := m.chestByPos.Load(packXY(x, y))
	if !ok {
		return nil, false
	}
	return &m.Chests[idx], true
}

// SignAt returns the sign at (x, y), if any.
func (m *WorldModel) SignAt(x, y int32) (*Sign, bool) {
	idx, ok := m.signByPos.Load(packXY(x, y))
	if !ok {
		return nil, false
	}
	return &m.Signs[idx], true
}

// TileEntityByID returns the tile entity with the given id, if any.
func (m *WorldModel) TileEntityByID(id int32) (*TileEntity, bool) {
	idx, ok := m.entityByID.Load(uint32(id))
	if !ok {
		return nil, false
	}
	return &m.TileEntities[idx], true
}

// Decode parses a complete world file buffer into a WorldModel, driving
// every section in World.py's documented order and asserting section
// boundaries along the way. Boundary drift is reported as a warning
// (not fatal); magic/version failures and truncation are fatal.
func Decode(buf []byte, opts ...DecodeOption) (*WorldModel, error) {
	cfg := newDecodeConfig(opts)
	diag := cfg.diagnostics

	s := NewByteStream(buf)

	header, err := readWorldHeader(s, fileTypeWorld)
	if err != nil {
		return nil, err
	}
	if len(header.SectionPointers) <= SectionTiles {
		return nil, decodeErrorf(s.Tell(), ErrInvalidFile, "section pointer table too short")
	}

	if err := s.SeekSet(int(header.SectionPointers[SectionFlags])); err != nil {
		return nil, err
	}
	flags, err := readWorldFlags(s, header.Version, int(header.SectionPointers[SectionTiles]), diag)
	if err != nil {
		return nil, err
	}

	model := &WorldModel{
		Header:      header,
		Flags:       flags,
		Width:       int(flags.TilesWide),
		Height:      int(flags.TilesHigh),
		Diagnostics: diag,
	}

	if err := s.SeekSet(int(header.SectionPointers[SectionTiles])); err != nil {
		return nil, err
	}
	if err := decodeTileGrid(s, model, header.ImportantTiles, cfg.mutableTiles); err != nil {
		return nil, err
	}
	if got, want := s.Tell(), int(header.SectionPointers[SectionChests]); got != want {
		diag.warn(WarnTileTypeOutOfRange, got, "tile grid ended at %d, expected chests pointer %d", got, want)
		if err := s.SeekSet(want); err != nil {
			return nil, err
		}
	}

	chests, err := readChests(s, diag)
	if err != nil {
		return nil, err
	}
	model.Chests = chests
	model.chestByPos = intmap.New(len(chests)*2+8, .9)
	for i, c := range chests {
		model.chestByPos.Store(packXY(c.X, c.Y), uint32(i))
	}

	if got, want := s.Tell(), int(header.SectionPointers[SectionSigns]); got != want {
		diag.warn(WarnTileTypeOutOfRange, got, "chests ended at %d, expected signs pointer %d", got, want)
		if err := s.SeekSet(want); err != nil {
			return nil, err
		}
	}
	signs, err := readSigns(s)
	if err != nil {
		return nil, err
	}
	model.Signs = signs
	model.signByPos = intmap.New(len(signs)*2+8, .9)
	for i, sg := range signs {
		model.signByPos.Store(packXY(sg.X, sg.Y), uint32(i))
	}

	if got, want := s.Tell(), int(header.SectionPointers[SectionNPCs]); got != want {
		diag.warn(WarnTileTypeOutOfRange, got, "signs ended at %d, expected npcs pointer %d", got, want)
		if err := s.SeekSet(want); err != nil {
			return nil, err
		}
	}
	npcs, mobs, err := readNPCs(s, header.Version)
	if err != nil {
		return nil, err
	}
	model.NPCs, model.Mobs = npcs, mobs

	model.entityByID = intmap.New(8, .9)
	if header.Version >= Version140 {
		tentsPtr := header.TileEntitiesPointer()
		if got := s.Tell(); got != tentsPtr {
			diag.warn(WarnTileTypeOutOfRange, got, "npcs ended at %d, expected tile-entities pointer %d", got, tentsPtr)
			if err := s.SeekSet(tentsPtr); err != nil {
				return nil, err
			}
		}
		entities, err := readTileEntities(s, diag)
		if err != nil {
			return nil, err
		}
		model.TileEntities = entities
		model.entityByID = intmap.New(len(entities)*2+8, .9)
		for i, e := range entities {
			model.entityByID.Store(uint32(e.ID), uint32(i))
		}
	}

	footerPtr := header.FooterPointer()
	if got := s.Tell(); got != footerPtr {
		diag.warn(WarnTileTypeOutOfRange, got, "entities section ended at %d, expected footer pointer %d", got, footerPtr)
		if err := s.SeekSet(footerPtr); err != nil {
			return nil, err
		}
	}
	loaded, err := s.ReadBool()
	if err != nil {
		return nil, err
	}
	title, err := s.ReadString()
	if err != nil {
		return nil, err
	}
	worldID, err := s.ReadI32()
	if err != nil {
		return nil, err
	}
	model.FooterLoaded, model.FooterTitle, model.FooterWorldID = loaded, title, worldID
	if title != flags.Title || uint32(worldID) != flags.WorldID {
		diag.warn(WarnUnknownFlag, s.Tell(), "footer title/id (%q, %d) disagree with header flags (%q, %d)", title, worldID, flags.Title, flags.WorldID)
	}

	return model, nil
}

// decodeTileGrid reads the RLE tile stream column by column (x outer, y
// inner, the order the file stores tiles in) and expands each record
// into rle+1 grid cells down the column. In read-only
// mode (the default) those cells share one *Tile pointer; WithMutableTiles
// clones a distinct Tile per cell instead.
func decodeTileGrid(s *ByteStream, model *WorldModel, importantTiles []bool, mutable bool) error {
	width, height := model.Width, model.Height
	grid := make([]*Tile, width*height)

	for x := 0; x < width; x++ {
		for y := 0; y < height; {
			t, rle, err := decodeTile(s, importantTiles)
			if err != nil {
				return err
			}
			shared := t
			for k := 0; k <= rle && y < height; k++ {
				idx := x*height + y
				if mutable {
					cp := shared
					grid[idx] = &cp
				} else {
					grid[idx] = &shared
				}
				y++
			}
		}
	}

	model.tiles = grid
	return nil
}
