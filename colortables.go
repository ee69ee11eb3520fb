package wld

import (
	_ "embed"
	"encoding/csv"
	"strconv"
	"strings"
)

//go:embed assets/MapTile_Colors.csv
var tileColorsCSV string

//go:embed assets/MapTile_WallColors.csv
var wallColorsCSV string

//go:embed assets/MapTile_LiquidColors.csv
var liquidColorsCSV string

// RGB is a simple opaque color triple; ColorMapper's tables are built
// from this rather than image/color so CSV rows parse directly into it.
type RGB struct {
	R, G, B uint8
}

type tileColorKey struct {
	typ    uint16
	option int
}

// parsedColorTables is the one-time result of parsing the three
// embedded CSVs, shared by every ColorMapper (they're read-only after
// init, matching §5's "immutable once initialized" resource note).
type parsedColorTables struct {
	tiles   map[tileColorKey]RGB
	walls   map[tileColorKey]RGB
	liquids map[uint8]RGB

	tileTypesPresent map[uint16]bool
	wallTypesPresent map[uint16]bool
}

func mustParseColorCSV(data string, header int) [][]string {
	r := csv.NewReader(strings.NewReader(data))
	rows, err := r.ReadAll()
	if err != nil {
		panic(errColorTablesCorrupt(err))
	}
	if len(rows) < header {
		panic(errColorTablesCorrupt(nil))
	}
	return rows[header:]
}

func errColorTablesCorrupt(cause error) *DecodeError {
	return &DecodeError{Msg: "embedded color table CSV is malformed", Err: joinErr(ErrMissingAsset, cause)}
}

func joinErr(base, cause error) error {
	if cause == nil {
		return base
	}
	return &wrappedErr{base: base, cause: cause}
}

type wrappedErr struct {
	base, cause error
}

func (w *wrappedErr) Error() string { return w.base.Error() + ": " + w.cause.Error() }
func (w *wrappedErr) Unwrap() error { return w.base }

func atoi(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		panic(errColorTablesCorrupt(err))
	}
	return v
}

func atou8(s string) uint8 {
	return uint8(atoi(s))
}

var globalColorTables = loadColorTables()

func loadColorTables() *parsedColorTables {
	t := &parsedColorTables{
		tiles:            make(map[tileColorKey]RGB),
		walls:            make(map[tileColorKey]RGB),
		liquids:          make(map[uint8]RGB),
		tileTypesPresent: make(map[uint16]bool),
		wallTypesPresent: make(map[uint16]bool),
	}
	for _, row := range mustParseColorCSV(tileColorsCSV, 1) {
		typ := uint16(atoi(row[0]))
		key := tileColorKey{typ: typ, option: atoi(row[1])}
		t.tiles[key] = RGB{atou8(row[2]), atou8(row[3]), atou8(row[4])}
		t.tileTypesPresent[typ] = true
	}
	for _, row := range mustParseColorCSV(wallColorsCSV, 1) {
		typ := uint16(atoi(row[0]))
		key := tileColorKey{typ: typ, option: atoi(row[1])}
		t.walls[key] = RGB{atou8(row[2]), atou8(row[3]), atou8(row[4])}
		t.wallTypesPresent[typ] = true
	}
	for _, row := range mustParseColorCSV(liquidColorsCSV, 1) {
		t.liquids[atou8(row[0])] = RGB{atou8(row[1]), atou8(row[2]), atou8(row[3])}
	}
	return t
}

// missingTile reports whether typ has no color table entry at all —
// the "missing tile" condition from §4.5's totality rule.
func (t *parsedColorTables) missingTile(typ uint16) bool {
	return !t.tileTypesPresent[typ]
}

func (t *parsedColorTables) missingWall(wall uint16) bool {
	return !t.wallTypesPresent[wall]
}
