// Package worldhash computes a stable content digest over a
// generated World and BiomeMap, the way the teacher's simulation
// digests its own state: a single sha256 over a fixed field order, so
// two independently produced grids can be compared for equality
// without shipping the whole tile buffer.
package worldhash

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"

	"worldforge/internal/core"
)

// Tiles returns the hex sha256 digest of a World's dimensions and
// tile buffer.
func Tiles(w *core.World) string {
	h := sha256.New()
	writeU32(h, w.Width)
	writeU32(h, w.Height)
	h.Write(w.Tiles)
	return hex.EncodeToString(h.Sum(nil))
}

// Biomes returns the hex sha256 digest of a BiomeMap's dimensions and
// cell buffer. A nil map digests to the empty-input hash.
func Biomes(m *core.BiomeMap) string {
	h := sha256.New()
	if m != nil {
		writeU32(h, m.Width)
		writeU32(h, m.Height)
		h.Write(m.Cells)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func writeU32(h interface{ Write([]byte) (int, error) }, v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	h.Write(tmp[:])
}
