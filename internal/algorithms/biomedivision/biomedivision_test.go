package biomedivision

import (
	"testing"

	"worldforge/internal/core"
	"worldforge/internal/pipeline"
)

func testBiomes() map[uint8]core.BiomeDefinition {
	defs := []core.BiomeDefinition{
		{ID: 1, Key: "space"},
		{ID: 2, Key: "hell"},
		{ID: 3, Key: "ocean"},
		{ID: 4, Key: "forest"},
		{ID: 5, Key: "jungle"},
		{ID: 6, Key: "snow"},
		{ID: 7, Key: "desert"},
		{ID: 8, Key: "crimson"},
		{ID: 9, Key: "desert_true"},
		{ID: 10, Key: "stone"},
	}
	out := make(map[uint8]core.BiomeDefinition, len(defs))
	for _, d := range defs {
		out[d.ID] = d
	}
	return out
}

func newTestProfile(w, h uint32) *core.WorldProfile {
	return &core.WorldProfile{
		Size: core.WorldSizeSpec{Key: "test", Width: w, Height: h},
		Layers: []core.LayerDefinition{
			{Key: "space", StartPercent: 0, EndPercent: 10},
			{Key: "surface", StartPercent: 10, EndPercent: 35},
			{Key: "underground", StartPercent: 35, EndPercent: 65},
			{Key: "cavern", StartPercent: 65, EndPercent: 85},
			{Key: "hell", StartPercent: 85, EndPercent: 100},
		},
	}
}

func newTestPipeline(seed uint64) *pipeline.Pipeline {
	w, h := uint32(400), uint32(200)
	world := core.NewWorld(w, h)
	profile := newTestProfile(w, h)
	p := pipeline.New(world, profile, nil, testBiomes(), seed)
	p.Register(New())
	return p
}

func biomeChecksum(m *core.BiomeMap) uint64 {
	var sum uint64
	for i, v := range m.Cells {
		sum = sum*31 + uint64(v) + uint64(i)
	}
	return sum
}

func TestBiomeDivisionRunAllAssignsEveryCell(t *testing.T) {
	p := newTestPipeline(42)
	if err := p.RunAll(); err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	bm := p.BiomeMap()
	if bm == nil {
		t.Fatal("expected a biome map after RunAll")
	}
	for i, v := range bm.Cells {
		if v == core.BiomeUnassigned {
			t.Fatalf("cell %d still unassigned after biome_division completed", i)
		}
	}
}

func TestBiomeDivisionIsDeterministic(t *testing.T) {
	p1 := newTestPipeline(777)
	if err := p1.RunAll(); err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	p2 := newTestPipeline(777)
	if err := p2.RunAll(); err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	if biomeChecksum(p1.BiomeMap()) != biomeChecksum(p2.BiomeMap()) {
		t.Fatal("two runs with the same seed produced different biome maps")
	}
}

func TestBiomeDivisionDifferentSeedsCanDiverge(t *testing.T) {
	p1 := newTestPipeline(1)
	if err := p1.RunAll(); err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	p2 := newTestPipeline(2)
	if err := p2.RunAll(); err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	if biomeChecksum(p1.BiomeMap()) == biomeChecksum(p2.BiomeMap()) {
		t.Fatal("expected different seeds to be very unlikely to produce identical biome maps")
	}
}

func TestBiomeDivisionSpaceAndHellBandsAreFixed(t *testing.T) {
	p := newTestPipeline(9)
	if err := p.RunAll(); err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	bm := p.BiomeMap()
	w, h := bm.Width, bm.Height

	spaceID, hellID := uint8(1), uint8(2)
	topRow := int32(0)
	for x := int32(0); x < int32(w); x++ {
		if got := bm.Get(x, topRow); got != spaceID {
			t.Fatalf("expected space at top row, got biome %d at x=%d", got, x)
		}
	}
	bottomRow := int32(h) - 1
	for x := int32(0); x < int32(w); x++ {
		if got := bm.Get(x, bottomRow); got != hellID {
			t.Fatalf("expected hell at bottom row, got biome %d at x=%d", got, x)
		}
	}
}

func TestBiomeDivisionJungleAndSnowAreOnOppositeSides(t *testing.T) {
	p := newTestPipeline(123)
	if err := p.StepForwardSub(); err != nil { // space_hell
		t.Fatalf("step 0: %v", err)
	}
	if err := p.StepForwardSub(); err != nil { // ocean
		t.Fatalf("step 1: %v", err)
	}
	if err := p.StepForwardSub(); err != nil { // forest
		t.Fatalf("step 2: %v", err)
	}
	if err := p.StepForwardSub(); err != nil { // jungle
		t.Fatalf("step 3: %v", err)
	}
	if err := p.StepForwardSub(); err != nil { // snow
		t.Fatalf("step 4: %v", err)
	}

	bm := p.BiomeMap()
	w, h := int32(bm.Width), int32(bm.Height)
	midY := h / 2
	cx := w / 2

	jungleID, snowID := uint8(5), uint8(6)
	leftHasJungle, rightHasJungle := false, false
	leftHasSnow, rightHasSnow := false, false
	for x := int32(0); x < w; x++ {
		switch bm.Get(x, midY) {
		case jungleID:
			if x < cx {
				leftHasJungle = true
			} else {
				rightHasJungle = true
			}
		case snowID:
			if x < cx {
				leftHasSnow = true
			} else {
				rightHasSnow = true
			}
		}
	}
	if leftHasJungle && rightHasJungle {
		t.Fatal("jungle appeared on both sides of the forest")
	}
	if leftHasSnow && rightHasSnow {
		t.Fatal("snow appeared on both sides of the forest")
	}
	if leftHasJungle == leftHasSnow && (leftHasJungle || leftHasSnow) {
		t.Fatal("jungle and snow ended up on the same side")
	}
}

func TestBiomeDivisionMetaDeclaresNineSteps(t *testing.T) {
	meta := New().Meta()
	if len(meta.Steps) != 9 {
		t.Fatalf("expected 9 steps, got %d", len(meta.Steps))
	}
}

func TestSetParamsRoundTrips(t *testing.T) {
	a := New()
	original := a.GetParams()

	a.params.DesertSurfaceCount = 7
	if err := a.SetParams(original); err != nil {
		t.Fatalf("SetParams: %v", err)
	}
	if a.params.DesertSurfaceCount != DefaultParams().DesertSurfaceCount {
		t.Fatalf("SetParams(GetParams()) did not restore prior state: got %d", a.params.DesertSurfaceCount)
	}
}

func TestSetParamsRejectsMalformedPayload(t *testing.T) {
	a := New()
	before := a.params
	if err := a.SetParams([]byte("not json")); err == nil {
		t.Fatal("expected an error for malformed params")
	}
	if a.params != before {
		t.Fatal("a failed SetParams must not partially apply")
	}
}
