package worldhash

import (
	"testing"

	"worldforge/internal/core"
)

func TestTilesIsStableAndSensitiveToContent(t *testing.T) {
	a := core.NewWorld(4, 4)
	b := core.NewWorld(4, 4)
	if Tiles(a) != Tiles(b) {
		t.Fatal("two freshly allocated worlds of the same size should hash identically")
	}
	b.Set(1, 1, 9)
	if Tiles(a) == Tiles(b) {
		t.Fatal("changing a tile should change the digest")
	}
}

func TestBiomesHandlesNil(t *testing.T) {
	if Biomes(nil) == "" {
		t.Fatal("expected a non-empty digest even for a nil biome map")
	}
}
