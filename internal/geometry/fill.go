package geometry

import (
	"sync"

	"worldforge/internal/core"
)

// DefaultParallelPixelThreshold is the bounding-box pixel count above
// which fill operations split work across goroutines. Overridable via
// engine.yaml at the call site (all fill functions take it as a
// parameter rather than reading a package global, so callers are free
// to wire it from config).
const DefaultParallelPixelThreshold = 50_000

func area(bb BoundingBox) int64 {
	if bb.IsEmpty() {
		return 0
	}
	return int64(bb.XMax-bb.XMin) * int64(bb.YMax-bb.YMin)
}

func clampToMap(bb BoundingBox, m *core.BiomeMap) BoundingBox {
	r := BoundingBox{
		XMin: max32(bb.XMin, 0),
		YMin: max32(bb.YMin, 0),
		XMax: min32(bb.XMax, int32(m.Width)),
		YMax: min32(bb.YMax, int32(m.Height)),
	}
	if r.IsEmpty() {
		return BoundingBox{}
	}
	return r
}

// parallelRowWork runs fn on each row of [yMin,yMax): serially when
// the box's area is below pixelThreshold, otherwise with one goroutine
// per row. fn must be safe to call concurrently across disjoint rows.
func parallelRowWork(bb BoundingBox, pixelThreshold int64, fn func(y int32)) {
	if bb.IsEmpty() {
		return
	}
	if area(bb) < pixelThreshold {
		for y := bb.YMin; y < bb.YMax; y++ {
			fn(y)
		}
		return
	}
	var wg sync.WaitGroup
	for y := bb.YMin; y < bb.YMax; y++ {
		wg.Add(1)
		go func(y int32) {
			defer wg.Done()
			fn(y)
		}(y)
	}
	wg.Wait()
}

// FillBiome writes biome to every cell of m within shape's bounding
// box for which shape.Contains is true. Order-independent: every cell
// is written at most once and the write does not depend on any other
// cell's value, so serial and parallel execution produce identical
// results.
func FillBiome(m *core.BiomeMap, shape Shape, biome uint8, pixelThreshold int64) {
	bb := clampToMap(shape.BoundingBox(), m)
	parallelRowWork(bb, pixelThreshold, func(y int32) {
		for x := bb.XMin; x < bb.XMax; x++ {
			if shape.Contains(x, y) {
				m.Set(x, y, biome)
			}
		}
	})
}

// FillBiomeIf writes biome to every cell of m within shape's bounding
// box for which shape.Contains is true AND filter(current) is true,
// where current is the cell's existing biome id. filter must be safe
// for concurrent calls.
func FillBiomeIf(m *core.BiomeMap, shape Shape, biome uint8, pixelThreshold int64, filter func(current uint8) bool) {
	bb := clampToMap(shape.BoundingBox(), m)
	parallelRowWork(bb, pixelThreshold, func(y int32) {
		for x := bb.XMin; x < bb.XMax; x++ {
			if !shape.Contains(x, y) {
				continue
			}
			if filter(m.Get(x, y)) {
				m.Set(x, y, biome)
			}
		}
	})
}

// ShapeAllMatch reports whether every cell of m within shape's
// bounding box that shape.Contains satisfies pred(current). Used by
// rejection-sampling placement loops (e.g. "does this candidate
// ellipse only cover unassigned cells?"). Short-circuits on the first
// mismatch in the serial path; in the parallel path all rows are
// still scanned (no cross-goroutine early exit) since the pixel
// counts large enough to trigger the parallel path make the scan cost
// negligible relative to goroutine coordination savings.
func ShapeAllMatch(m *core.BiomeMap, shape Shape, pixelThreshold int64, pred func(current uint8) bool) bool {
	bb := clampToMap(shape.BoundingBox(), m)
	if bb.IsEmpty() {
		return true
	}
	if area(bb) < pixelThreshold {
		for y := bb.YMin; y < bb.YMax; y++ {
			for x := bb.XMin; x < bb.XMax; x++ {
				if shape.Contains(x, y) && !pred(m.Get(x, y)) {
					return false
				}
			}
		}
		return true
	}

	var wg sync.WaitGroup
	results := make([]bool, bb.YMax-bb.YMin)
	for y := bb.YMin; y < bb.YMax; y++ {
		wg.Add(1)
		go func(y int32) {
			defer wg.Done()
			ok := true
			for x := bb.XMin; x < bb.XMax; x++ {
				if shape.Contains(x, y) && !pred(m.Get(x, y)) {
					ok = false
					break
				}
			}
			results[y-bb.YMin] = ok
		}(y)
	}
	wg.Wait()
	for _, ok := range results {
		if !ok {
			return false
		}
	}
	return true
}
