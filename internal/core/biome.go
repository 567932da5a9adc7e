package core

// BiomeUnassigned is the sentinel biome id meaning "no biome assigned
// yet".
const BiomeUnassigned uint8 = 0

// BiomeMap is a grid parallel to World assigning a biome id to every
// cell. It is created lazily by the first phase that needs it (the
// pipeline leaves it nil until then) and is never implicitly reset —
// only replay_to_flat tears it down and recreates it.
type BiomeMap struct {
	Width  uint32
	Height uint32
	Cells  []uint8
}

// NewBiomeMap returns a BiomeMap filled with BiomeUnassigned.
func NewBiomeMap(width, height uint32) *BiomeMap {
	cells := make([]uint8, int(width)*int(height))
	for i := range cells {
		cells[i] = BiomeUnassigned
	}
	return &BiomeMap{Width: width, Height: height, Cells: cells}
}

func (m *BiomeMap) index(x, y int32) (int, bool) {
	if x < 0 || y < 0 || x >= int32(m.Width) || y >= int32(m.Height) {
		return 0, false
	}
	return int(y)*int(m.Width) + int(x), true
}

// Get returns the biome id at (x, y), or BiomeUnassigned if out of
// bounds.
func (m *BiomeMap) Get(x, y int32) uint8 {
	idx, ok := m.index(x, y)
	if !ok {
		return BiomeUnassigned
	}
	return m.Cells[idx]
}

// Set writes a biome id at (x, y). Out-of-bounds writes are discarded.
func (m *BiomeMap) Set(x, y int32, biome uint8) {
	idx, ok := m.index(x, y)
	if !ok {
		return
	}
	m.Cells[idx] = biome
}

// Row returns the backing slice for one row, for callers (geometry
// fills) that want to partition work by row without repeated bounds
// checks.
func (m *BiomeMap) Row(y int32) []uint8 {
	if y < 0 || y >= int32(m.Height) {
		return nil
	}
	start := int(y) * int(m.Width)
	return m.Cells[start : start+int(m.Width)]
}

// BiomeDefinition is an immutable row of the biome table loaded from
// biome.json.
type BiomeDefinition struct {
	ID           uint8
	Key          string
	Name         string
	OverlayColor [4]uint8
	Description  string
}
