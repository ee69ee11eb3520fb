package wld

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"codeberg.org/go-mmap/mmap"
)

// headerPeekBytes bounds how much of a candidate world file Discover
// memory-maps and reads before giving up: enough for the file header,
// section pointer table, important-tiles bitset and the title string,
// without paying to read the (potentially huge) tile grid.
const headerPeekBytes = 1 << 16

// peekCache holds lazily-computed peekWorld results keyed by file path,
// mirroring the teacher's SDK.files cache (sdk_files.go's load/LoadOrStore
// pattern): a repeated Discover/Find over the same directory re-stats
// every candidate but only re-parses a file whose size or mtime changed.
var peekCache sync.Map

type peekCacheEntry struct {
	size    int64
	modTime int64
	info    WorldInfo
}

// WorldInfo is the cheap, header-only summary Discover/Find produce for
// each candidate world file, without decoding its tile grid.
type WorldInfo struct {
	Path    string
	Title   string
	Version uint32
	WorldID uint32
}

// Discover scans dir for *.wld files and returns a header+flags-only
// peek at each, skipping files that fail to parse as a valid world.
// Ported from World.ListWorlds, with each candidate opportunistically
// memory-mapped rather than fully read into memory.
func Discover(dir string) ([]WorldInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("wld: reading world directory: %w", err)
	}

	var infos []WorldInfo
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".wld") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		info, err := peekWorld(path)
		if err != nil {
			continue
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// Find resolves a bare world title (case-insensitive) to its file path
// under dir. Ported from World.FindWorld.
func Find(dir, title string) (string, error) {
	infos, err := Discover(dir)
	if err != nil {
		return "", err
	}
	for _, info := range infos {
		if strings.EqualFold(info.Title, title) {
			return info.Path, nil
		}
	}
	return "", fmt.Errorf("%w: %q under %s", ErrWorldNotFound, title, dir)
}

func peekWorld(path string) (WorldInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return WorldInfo{}, err
	}

	if v, ok := peekCache.Load(path); ok {
		cached := v.(peekCacheEntry)
		if cached.size == stat.Size() && cached.modTime == stat.ModTime().UnixNano() {
			return cached.info, nil
		}
	}

	f, err := mmap.Open(path)
	if err != nil {
		return WorldInfo{}, err
	}
	defer f.Close()

	n := int(stat.Size())
	if n > headerPeekBytes {
		n = headerPeekBytes
	}
	buf := make([]byte, n)
	if _, err := f.ReadAt(buf, 0); err != nil {
		return WorldInfo{}, err
	}

	s := NewByteStream(buf)
	header, err := readWorldHeader(s, fileTypeWorld)
	if err != nil {
		return WorldInfo{}, err
	}
	if len(header.SectionPointers) <= SectionFlags {
		return WorldInfo{}, decodeErrorf(0, ErrInvalidFile, "no flags section pointer")
	}
	if err := s.SeekSet(int(header.SectionPointers[SectionFlags])); err != nil {
		return WorldInfo{}, err
	}
	title, err := s.ReadString()
	if err != nil {
		return WorldInfo{}, err
	}
	worldID, err := s.ReadU32()
	if err != nil {
		return WorldInfo{}, err
	}

	info := WorldInfo{Path: path, Title: title, Version: header.Version, WorldID: worldID}
	peekCache.Store(path, peekCacheEntry{size: stat.Size(), modTime: stat.ModTime().UnixNano(), info: info})
	return info, nil
}
