// Package core holds the grid data model: the tile World, the parallel
// BiomeMap, and the immutable block/biome/layer tables loaded from
// configuration.
package core

// AirBlockID is the tile id a freshly created or reset World is filled
// with.
const AirBlockID uint8 = 0

// World is a row-major grid of block ids. Index (x, y) maps to
// y*Width+x. Out-of-bounds reads are absence, not panics; out-of-bounds
// writes are silently discarded — algorithms write through Set without
// having to clip shapes to the grid themselves.
type World struct {
	Width  uint32
	Height uint32
	Tiles  []uint8
}

// NewWorld returns a World filled with AirBlockID.
func NewWorld(width, height uint32) *World {
	return &World{
		Width:  width,
		Height: height,
		Tiles:  make([]uint8, int(width)*int(height)),
	}
}

// Reset clears the tile buffer back to air in place, preserving
// dimensions and the underlying allocation.
func (w *World) Reset() {
	for i := range w.Tiles {
		w.Tiles[i] = AirBlockID
	}
}

func (w *World) index(x, y int32) (int, bool) {
	if x < 0 || y < 0 || x >= int32(w.Width) || y >= int32(w.Height) {
		return 0, false
	}
	return int(y)*int(w.Width) + int(x), true
}

// Get returns the tile at (x, y) and whether it was in bounds.
func (w *World) Get(x, y int32) (uint8, bool) {
	idx, ok := w.index(x, y)
	if !ok {
		return 0, false
	}
	return w.Tiles[idx], true
}

// GetOrAir returns the tile at (x, y), or AirBlockID if out of bounds.
func (w *World) GetOrAir(x, y int32) uint8 {
	if v, ok := w.Get(x, y); ok {
		return v
	}
	return AirBlockID
}

// Set writes a tile at (x, y). Out-of-bounds writes are discarded.
func (w *World) Set(x, y int32, block uint8) {
	idx, ok := w.index(x, y)
	if !ok {
		return
	}
	w.Tiles[idx] = block
}
