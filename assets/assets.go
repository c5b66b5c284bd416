package assets

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/automoto/giftrush/shared/leveldata"
)

var (
	//go:embed all:levels
	assetFS embed.FS
)

// FS returns the embedded asset filesystem.
func FS() fs.FS {
	return assetFS
}

// LoadArena reads an arena from the embedded levels.
func LoadArena(path string) (*leveldata.ArenaData, error) {
	data, err := leveldata.LoadArena(assetFS, path)
	if err != nil {
		return nil, fmt.Errorf("arena %s: %w", path, err)
	}
	return data, nil
}

// ListArenas returns every arena under levels/ keyed by file stem, plus the
// stems in sorted order.
func ListArenas() (map[string]*leveldata.ArenaData, []string, error) {
	return leveldata.LoadAllArenas(assetFS, "levels")
}
