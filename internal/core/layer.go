package core

import "fmt"

// LayerDefinition is a horizontal band of the world expressed as a
// percentage range of its height. The full set of layers for a profile
// must be ordered, non-overlapping, and cover [0,100].
type LayerDefinition struct {
	Key          string
	StartPercent uint8
	EndPercent   uint8
	ShortName    string
	Description  string
}

// WorldSizeSpec names one entry of the world_sizes table.
type WorldSizeSpec struct {
	Key         string
	Width       uint32
	Height      uint32
	Description string
}

// WorldProfile bundles a resolved world size with its layer list and
// answers the layer-range queries algorithms must use instead of
// hard-coding percentages.
type WorldProfile struct {
	Size   WorldSizeSpec
	Layers []LayerDefinition
}

// ValidateLayers checks the non-overlapping, full-coverage invariant
// spec.md §3 requires of a layer list.
func ValidateLayers(layers []LayerDefinition) error {
	if len(layers) == 0 {
		return fmt.Errorf("layer list is empty")
	}
	cursor := uint8(0)
	for _, l := range layers {
		if l.StartPercent != cursor {
			return fmt.Errorf("layer %q starts at %d%%, expected %d%% (layers must be contiguous)", l.Key, l.StartPercent, cursor)
		}
		if l.StartPercent >= l.EndPercent {
			return fmt.Errorf("layer %q has start %d%% >= end %d%%", l.Key, l.StartPercent, l.EndPercent)
		}
		if l.EndPercent > 100 {
			return fmt.Errorf("layer %q ends at %d%%, exceeds 100%%", l.Key, l.EndPercent)
		}
		cursor = l.EndPercent
	}
	if cursor != 100 {
		return fmt.Errorf("layers cover [0,%d%%), expected full [0,100%%) coverage", cursor)
	}
	return nil
}

func (p *WorldProfile) layer(key string) (LayerDefinition, bool) {
	for _, l := range p.Layers {
		if l.Key == key {
			return l, true
		}
	}
	return LayerDefinition{}, false
}

// LayerRange returns the [start,end) percent range for a layer key.
func (p *WorldProfile) LayerRange(key string) (start, end uint8) {
	l, _ := p.layer(key)
	return l.StartPercent, l.EndPercent
}

// LayerStart returns a layer's start percent.
func (p *WorldProfile) LayerStart(key string) uint8 { s, _ := p.LayerRange(key); return s }

// LayerEnd returns a layer's end percent.
func (p *WorldProfile) LayerEnd(key string) uint8 { _, e := p.LayerRange(key); return e }

// percentToPixelRow maps a percentage of world height to a pixel row,
// per spec.md §3: floor(percent*height/100).
func percentToPixelRow(percent uint8, height uint32) int32 {
	return int32((uint64(percent) * uint64(height)) / 100)
}

// LayerRangePx returns the pixel-row range [start,end) for a layer key,
// clamped to the world height.
func (p *WorldProfile) LayerRangePx(key string) (start, end int32) {
	s, e := p.LayerRange(key)
	h := p.Size.Height
	startPx := percentToPixelRow(s, h)
	endPx := percentToPixelRow(e, h)
	if endPx <= startPx && h > 0 {
		endPx = startPx + 1
	}
	if endPx > int32(h) {
		endPx = int32(h)
	}
	return startPx, endPx
}

// LayerStartPx returns a layer's starting pixel row.
func (p *WorldProfile) LayerStartPx(key string) int32 { s, _ := p.LayerRangePx(key); return s }

// LayerEndPx returns a layer's ending pixel row.
func (p *WorldProfile) LayerEndPx(key string) int32 { _, e := p.LayerRangePx(key); return e }

// NewWorld allocates a World sized to this profile.
func (p *WorldProfile) NewWorld() *World {
	return NewWorld(p.Size.Width, p.Size.Height)
}
