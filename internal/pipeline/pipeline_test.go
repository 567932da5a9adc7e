package pipeline

import (
	"encoding/json"
	"fmt"
	"testing"

	"worldforge/internal/core"
	"worldforge/internal/phase"
)

// stripeAlgo is a minimal two-step test algorithm: step 0 fills the
// leftmost Width columns of the world with block 2, step 1 fills the
// remaining columns to the right with a random block id derived from
// ctx.Rand, so tests can exercise both deterministic-by-param and
// deterministic-by-seed paths.
type stripeAlgo struct {
	width int
}

type stripeParams struct {
	Width int `json:"width"`
}

func (a *stripeAlgo) Meta() phase.Meta {
	return phase.Meta{
		ID:   "test.stripe",
		Name: "Stripe",
		Steps: []phase.StepMeta{
			{Name: "left"},
			{Name: "right"},
		},
		Params: []phase.ParamDef{
			{Key: "width", Type: phase.Int(1, 10), Default: 4},
		},
	}
}

func (a *stripeAlgo) Execute(stepIndex int, ctx *phase.RuntimeContext) error {
	switch stepIndex {
	case 0:
		for y := int32(0); y < int32(ctx.World.Height); y++ {
			for x := int32(0); x < int32(a.width); x++ {
				ctx.World.Set(x, y, 2)
			}
		}
	case 1:
		block := uint8(3 + ctx.Rand.IntN(5))
		for y := int32(0); y < int32(ctx.World.Height); y++ {
			for x := int32(a.width); x < int32(ctx.World.Width); x++ {
				ctx.World.Set(x, y, block)
			}
		}
	default:
		return fmt.Errorf("unknown step %d", stepIndex)
	}
	return nil
}

func (a *stripeAlgo) GetParams() json.RawMessage {
	raw, _ := json.Marshal(stripeParams{Width: a.width})
	return raw
}

func (a *stripeAlgo) SetParams(raw json.RawMessage) error {
	var p stripeParams
	if err := json.Unmarshal(raw, &p); err != nil {
		return err
	}
	a.width = int(phase.ClampFloat(phase.Int(1, 10), float64(p.Width)))
	return nil
}

func (a *stripeAlgo) OnReset() {}

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()
	world := core.NewWorld(20, 10)
	profile := &core.WorldProfile{
		Size:   core.WorldSizeSpec{Key: "test", Width: 20, Height: 10},
		Layers: []core.LayerDefinition{{Key: "all", StartPercent: 0, EndPercent: 100}},
	}
	p := New(world, profile, nil, nil, 1234)
	p.Register(&stripeAlgo{width: 4})
	return p
}

func checksum(w *core.World) uint64 {
	var sum uint64
	for i, v := range w.Tiles {
		sum = sum*31 + uint64(v) + uint64(i)
	}
	return sum
}

func TestPipelineRunAllIsDeterministic(t *testing.T) {
	p1 := newTestPipeline(t)
	if err := p1.RunAll(); err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	p2 := newTestPipeline(t)
	if err := p2.RunAll(); err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	if checksum(p1.World()) != checksum(p2.World()) {
		t.Fatal("two independently constructed pipelines with the same seed diverged")
	}
}

func TestPipelineStepBackwardMatchesFreshRun(t *testing.T) {
	stepped := newTestPipeline(t)
	if err := stepped.StepForwardSub(); err != nil {
		t.Fatalf("StepForwardSub: %v", err)
	}
	if err := stepped.StepForwardSub(); err != nil {
		t.Fatalf("StepForwardSub: %v", err)
	}
	if err := stepped.StepBackwardSub(); err != nil {
		t.Fatalf("StepBackwardSub: %v", err)
	}

	fresh := newTestPipeline(t)
	if err := fresh.StepForwardSub(); err != nil {
		t.Fatalf("StepForwardSub: %v", err)
	}

	if checksum(stepped.World()) != checksum(fresh.World()) {
		t.Fatal("stepping forward twice then backward once should match one forward step from fresh")
	}
	if stepped.ExecutedSubSteps() != fresh.ExecutedSubSteps() {
		t.Fatalf("executed sub-step counts diverged: %d vs %d", stepped.ExecutedSubSteps(), fresh.ExecutedSubSteps())
	}
}

func TestPipelineReplayToFlatMatchesFreshRun(t *testing.T) {
	p := newTestPipeline(t)
	if err := p.RunAll(); err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	want := checksum(p.World())

	if err := p.ReplayToFlat(1); err != nil {
		t.Fatalf("ReplayToFlat(1): %v", err)
	}
	if err := p.ReplayToFlat(p.TotalSubSteps()); err != nil {
		t.Fatalf("ReplayToFlat(total): %v", err)
	}
	if checksum(p.World()) != want {
		t.Fatal("replaying to total after a partial replay should match the original full run")
	}
}

func TestPipelineAlreadyCompleteError(t *testing.T) {
	p := newTestPipeline(t)
	if err := p.RunAll(); err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	err := p.StepForwardSub()
	if _, ok := err.(*AlreadyComplete); !ok {
		t.Fatalf("expected AlreadyComplete, got %v", err)
	}
}

func TestPipelineOutOfRangeReplay(t *testing.T) {
	p := newTestPipeline(t)
	err := p.ReplayToFlat(p.TotalSubSteps() + 1)
	if _, ok := err.(*OutOfRangeTarget); !ok {
		t.Fatalf("expected OutOfRangeTarget, got %v", err)
	}
}

func TestPipelineExportImportStateRoundTrips(t *testing.T) {
	p := newTestPipeline(t)
	if err := p.StepForwardSub(); err != nil {
		t.Fatalf("StepForwardSub: %v", err)
	}
	state := p.ExportState()
	if state.Seed != 1234 {
		t.Fatalf("expected exported seed 1234, got %d", state.Seed)
	}
	if len(state.Algorithms) != 1 || state.Algorithms[0].AlgorithmID != "test.stripe" {
		t.Fatalf("expected one algorithm state for test.stripe, got %+v", state.Algorithms)
	}

	p2 := newTestPipeline(t)
	warnings, err := p2.ImportState(state)
	if err != nil {
		t.Fatalf("ImportState: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings for a matching algorithm set, got %v", warnings)
	}
	if p2.Seed() != 1234 {
		t.Fatalf("expected imported seed 1234, got %d", p2.Seed())
	}
	if p2.ExecutedSubSteps() != 0 {
		t.Fatalf("ImportState should leave the pipeline at flat index 0, got %d", p2.ExecutedSubSteps())
	}
}

func TestPipelinePhaseInfoListCoversAllSubSteps(t *testing.T) {
	p := newTestPipeline(t)
	infos := p.PhaseInfoList()
	if len(infos) != 1 {
		t.Fatalf("expected 1 phase, got %d", len(infos))
	}
	if infos[0].StepCount != 2 {
		t.Fatalf("expected 2 steps, got %d", infos[0].StepCount)
	}
	if infos[0].EndFlat != p.TotalSubSteps() {
		t.Fatalf("phase end %d should equal total sub-steps %d", infos[0].EndFlat, p.TotalSubSteps())
	}
}
