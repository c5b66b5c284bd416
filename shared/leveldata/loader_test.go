package leveldata

import (
	"testing"
	"testing/fstest"
)

const testArena = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="10" height="8" tilewidth="16" tileheight="16" infinite="0">
 <objectgroup id="1" name="Platforms">
  <object id="1" x="16" y="32" width="48" height="32">
   <properties>
    <property name="top" type="float" value="1.5"/>
   </properties>
  </object>
  <object id="2" x="0" y="0" width="0" height="0"/>
 </objectgroup>
 <objectgroup id="2" name="PlayerSpawn">
  <object id="3" x="120" y="40">
   <properties>
    <property name="spawnIndex" type="int" value="1"/>
   </properties>
   <point/>
  </object>
  <object id="4" x="8" y="8">
   <properties>
    <property name="spawnIndex" type="int" value="0"/>
   </properties>
   <point/>
  </object>
 </objectgroup>
</map>
`

func TestLoadArena(t *testing.T) {
	fsys := fstest.MapFS{"levels/test.tmx": {Data: []byte(testArena)}}

	data, err := LoadArena(fsys, "levels/test.tmx")
	if err != nil {
		t.Fatalf("LoadArena: %v", err)
	}

	if data.MapWidth != 160 || data.MapHeight != 128 {
		t.Errorf("map size = %dx%d, want 160x128", data.MapWidth, data.MapHeight)
	}
	if len(data.Platforms) != 1 {
		t.Fatalf("platforms = %d, want 1 (empty rectangles skipped)", len(data.Platforms))
	}
	p := data.Platforms[0]
	if p.X != 16 || p.Y != 32 || p.W != 48 || p.H != 32 || p.Top != 1.5 {
		t.Errorf("platform = %+v", p)
	}
	if len(data.SpawnPoints) != 2 || data.SpawnPoints[0].Index != 0 || data.SpawnPoints[1].X != 120 {
		t.Errorf("spawns = %+v, want sorted by index", data.SpawnPoints)
	}
}

func TestLoadArenaMissing(t *testing.T) {
	if _, err := LoadArena(fstest.MapFS{}, "levels/none.tmx"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadAllArenas(t *testing.T) {
	fsys := fstest.MapFS{
		"levels/b.tmx": {Data: []byte(testArena)},
		"levels/a.tmx": {Data: []byte(testArena)},
	}
	arenas, names, err := LoadAllArenas(fsys, "levels")
	if err != nil {
		t.Fatalf("LoadAllArenas: %v", err)
	}
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("names = %v", names)
	}
	if arenas["a"] == nil || arenas["b"] == nil {
		t.Error("arenas missing by stem name")
	}

	if _, _, err := LoadAllArenas(fstest.MapFS{}, "levels"); err == nil {
		t.Error("expected error for empty directory")
	}
}

func TestPlatformContains(t *testing.T) {
	p := Platform{X: 10, Y: 10, W: 5, H: 5}
	if !p.Contains(12, 15) || p.Contains(9.9, 12) || p.Contains(12, 15.1) {
		t.Error("Contains disagrees with the rectangle bounds")
	}
}
