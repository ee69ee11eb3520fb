package wld

import (
	"image"

	"github.com/kaedenn/wld/internal/bitmap"
)

// Hard-coded gradient endpoints for the three background bands, per §6.
var (
	skyGradient  = [2]RGB{{50, 40, 255}, {145, 185, 255}}
	dirtGradient = [2]RGB{{88, 61, 46}, {37, 78, 123}}
	rockGradient = [2]RGB{{74, 67, 60}, {53, 70, 97}}
)

// wallPlanked is the one wall type whose color alternates by column
// parity instead of resolving to a fixed option.
const wallPlanked = 7

// liquidAmountThreshold is the liquid_amount a cell must exceed to be
// rendered as liquid; at or below it the cell falls through to the
// wall/background layers beneath it.
const liquidAmountThreshold = 32

// Table identifies which of the closed set of color tables a Lookup
// resolves against.
type Table int

const (
	TableNone Table = iota
	TableTile
	TableLiquid
	TableWall
	TableSky
	TableDirt
	TableRock
)

// Lookup is the descriptor TileToLookup resolves a grid cell to: which
// table to consult, the type/liquid/band index into it, and the option
// variant within that index.
type Lookup struct {
	Table  Table
	Index  int
	Option int
}

// LookupOptions are the four transparency toggles TileToLookup accepts.
type LookupOptions struct {
	NoTiles, NoWalls, NoLiquid, NoBG bool
}

// ColorMapper resolves (Tile, coordinates) to a color table lookup and
// then to an RGB triple, backed by the embedded CSV tables and the
// per-type option rules in rules.go. It holds no mutable state past
// construction, so one instance can be shared across goroutines.
type ColorMapper struct {
	tables *parsedColorTables
}

// NewColorMapper returns a ColorMapper backed by the module's embedded
// color tables.
func NewColorMapper() *ColorMapper {
	return &ColorMapper{tables: globalColorTables}
}

// TileToLookup implements the §4.5 decision order: active tile, then
// liquid, then wall, then vertical background band, then none. height,
// groundLevel and rockLevel come from the owning WorldModel's flags.
func (m *ColorMapper) TileToLookup(t *Tile, i, j int, height int, groundLevel, rockLevel float64, opts LookupOptions) Lookup {
	if t != nil && t.IsActive && !opts.NoTiles && !m.tables.missingTile(t.Type) {
		option := resolveOption(t.Type, t.U, t.V, j)
		return Lookup{Table: TableTile, Index: int(t.Type), Option: option}
	}

	if t != nil && t.Liquid != LiquidNone && t.LiquidAmount > liquidAmountThreshold && !opts.NoLiquid {
		return Lookup{Table: TableLiquid, Index: int(t.Liquid), Option: 0}
	}

	if t != nil && t.Wall != 0 && !opts.NoWalls && !m.tables.missingWall(uint16(t.Wall)) {
		option := 0
		if t.Wall == wallPlanked {
			option = i % 2
		}
		return Lookup{Table: TableWall, Index: int(t.Wall), Option: option}
	}

	if !opts.NoBG {
		switch {
		case float64(j) < groundLevel:
			return Lookup{Table: TableSky}
		case float64(j) < rockLevel:
			return Lookup{Table: TableDirt}
		case j < height-204:
			return Lookup{Table: TableRock, Option: 0}
		default:
			return Lookup{Table: TableRock, Option: 1}
		}
	}

	return Lookup{Table: TableNone}
}

// ResolveColor turns a Lookup descriptor into an RGB triple. The bool
// result is false only for TableNone or an out-of-bounds index/option,
// matching the totality property (§8.9) that every in-range lookup
// resolves.
func (m *ColorMapper) ResolveColor(l Lookup) (RGB, bool) {
	switch l.Table {
	case TableTile:
		c, ok := m.tables.tiles[tileColorKey{typ: uint16(l.Index), option: l.Option}]
		return c, ok
	case TableWall:
		c, ok := m.tables.walls[tileColorKey{typ: uint16(l.Index), option: l.Option}]
		return c, ok
	case TableLiquid:
		// The liquid table is keyed 0 (water) to 2 (honey); Index holds
		// the LiquidType, which starts at 1 for water.
		c, ok := m.tables.liquids[uint8(l.Index-1)]
		return c, ok
	case TableSky:
		return gradientEndpoint(skyGradient, l.Option), true
	case TableDirt:
		return gradientEndpoint(dirtGradient, l.Option), true
	case TableRock:
		return gradientEndpoint(rockGradient, l.Option), true
	default:
		return RGB{}, false
	}
}

func gradientEndpoint(g [2]RGB, index int) RGB {
	if index == 1 {
		return g[1]
	}
	return g[0]
}

// RenderImage walks every cell of model via WorldModel.Tiles and writes
// its resolved color into an RGBA32 the size of the world grid, the
// same one-pixel-per-tile rendering World.py's --image option produces.
// Cells with no resolvable lookup are left fully transparent.
func (m *ColorMapper) RenderImage(model *WorldModel, opts LookupOptions) *bitmap.RGBA32 {
	img := bitmap.NewRGBA32(image.Rect(0, 0, model.Width, model.Height))
	for pt, t := range model.Tiles() {
		lookup := m.TileToLookup(t, pt.X, pt.Y, model.Height, model.Flags.GroundLevel, model.Flags.RockLevel, opts)
		rgb, ok := m.ResolveColor(lookup)
		if !ok {
			continue
		}
		img.SetRGB(pt.X, pt.Y, rgb.R, rgb.G, rgb.B)
	}
	return img
}
