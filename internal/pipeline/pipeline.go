// Package pipeline implements the generation scheduler: an ordered
// list of registered phases, a single flat sub-step cursor, seed
// derivation, and exact reverse traversal by full replay from zero.
package pipeline

import (
	"encoding/json"
	"fmt"
	"time"

	"worldforge/internal/core"
	"worldforge/internal/geometry"
	"worldforge/internal/phase"
	"worldforge/internal/randx"
)

type registeredPhase struct {
	algo      phase.Algorithm
	meta      phase.Meta
	startFlat int
}

// PhaseInfo summarizes one registered phase's position in the flat
// sub-step space, for UI/CLI listing.
type PhaseInfo struct {
	Index       int
	ID          string
	Name        string
	Description string
	StepCount   int
	StartFlat   int
	EndFlat     int // exclusive
}

// AlgorithmState is one phase's persisted parameter block, keyed by
// algorithm id rather than registration order so snapshot load is
// order-tolerant.
type AlgorithmState struct {
	AlgorithmID string
	Params      json.RawMessage
}

// LayerOverride is a snapshot-carried percent-range override for one
// named layer, applied on load without requiring the full layer table
// to round-trip through the snapshot file.
type LayerOverride struct {
	StartPercent uint8
	EndPercent   uint8
}

// PipelineState is everything a snapshot needs to capture: the seed,
// the world dimensions, per-layer percent overrides, and the ordered
// algorithm parameter blocks. It carries no tile data.
type PipelineState struct {
	Seed          uint64
	WorldWidth    uint32
	WorldHeight   uint32
	LayerOverride map[string]LayerOverride
	Algorithms    []AlgorithmState
}

// Pipeline schedules registered phases over a single flat sub-step
// cursor. It owns the World, the BiomeMap (created lazily by the
// first phase that needs one), the per-run shared hand-off store, and
// the per-sub-step shape log.
type Pipeline struct {
	world   *core.World
	profile *core.WorldProfile
	blocks  map[uint8]core.BlockDefinition
	biomes  map[uint8]core.BiomeDefinition

	seed uint64

	phases    []registeredPhase
	total     int
	executed  int
	biomeMap  *core.BiomeMap
	shared    map[phase.SharedKey]any
	shapeLogs [][]geometry.ShapeRecord

	phaseInfoCache []PhaseInfo
	phaseInfoDirty bool

	profiler *PerfProfiler
}

// New builds an empty Pipeline over the given world/profile/tables
// and master seed. Phases must be registered with Register before any
// Step*/ReplayToFlat call.
func New(world *core.World, profile *core.WorldProfile, blocks map[uint8]core.BlockDefinition, biomes map[uint8]core.BiomeDefinition, seed uint64) *Pipeline {
	return &Pipeline{
		world:          world,
		profile:        profile,
		blocks:         blocks,
		biomes:         biomes,
		seed:           seed,
		shared:         make(map[phase.SharedKey]any),
		phaseInfoDirty: true,
		profiler:       NewPerfProfiler(),
	}
}

// Register appends a phase to the end of the pipeline's phase list.
// Registration order is execution order; call before the pipeline has
// executed any sub-step.
func (p *Pipeline) Register(algo phase.Algorithm) {
	meta := algo.Meta()
	p.phases = append(p.phases, registeredPhase{algo: algo, meta: meta, startFlat: p.total})
	p.total += len(meta.Steps)
	p.shapeLogs = make([][]geometry.ShapeRecord, p.total)
	p.phaseInfoDirty = true
}

// TotalSubSteps returns the number of sub-steps across every
// registered phase.
func (p *Pipeline) TotalSubSteps() int { return p.total }

// ExecutedSubSteps returns how many sub-steps have executed so far.
func (p *Pipeline) ExecutedSubSteps() int { return p.executed }

// IsComplete reports whether every sub-step has executed.
func (p *Pipeline) IsComplete() bool { return p.executed >= p.total }

// Seed returns the master seed sub-step seeds are derived from.
func (p *Pipeline) Seed() uint64 { return p.seed }

// SetSeed changes the master seed and replays the pipeline back to
// flat index 0, since every already-executed sub-step's seed depends
// on the old value.
func (p *Pipeline) SetSeed(seed uint64) error {
	p.seed = seed
	return p.ReplayToFlat(0)
}

// World returns the pipeline's world grid.
func (p *Pipeline) World() *core.World { return p.world }

// BiomeMap returns the pipeline's biome grid, or nil if no phase has
// created one yet.
func (p *Pipeline) BiomeMap() *core.BiomeMap { return p.biomeMap }

// Profiler returns the pipeline's per-sub-step timing profiler.
func (p *Pipeline) Profiler() *PerfProfiler { return p.profiler }

// flatToPosition maps a flat sub-step index to (phaseIndex, subIndex).
// flat == total maps to (len(phases), 0), the "just past the end"
// position.
func (p *Pipeline) flatToPosition(flat int) (int, int) {
	for i, ph := range p.phases {
		if flat < ph.startFlat+len(ph.meta.Steps) {
			return i, flat - ph.startFlat
		}
	}
	return len(p.phases), 0
}

// CurrentPhaseIndex returns the phase index the next sub-step belongs
// to (or len(phases) if complete).
func (p *Pipeline) CurrentPhaseIndex() int {
	i, _ := p.flatToPosition(p.executed)
	return i
}

// CurrentSubIndex returns the sub-step index within the current phase
// that will execute next.
func (p *Pipeline) CurrentSubIndex() int {
	_, s := p.flatToPosition(p.executed)
	return s
}

// ShapeLog returns the shape records recorded by the sub-step at flat
// index i, or nil if it has not executed (or recorded nothing).
func (p *Pipeline) ShapeLog(i int) []geometry.ShapeRecord {
	if i < 0 || i >= len(p.shapeLogs) {
		return nil
	}
	return p.shapeLogs[i]
}

// PhaseInfoList returns a summary of every registered phase's
// position in the flat sub-step space. The result is cached and
// recomputed only after Register changes the phase list.
func (p *Pipeline) PhaseInfoList() []PhaseInfo {
	if !p.phaseInfoDirty {
		return p.phaseInfoCache
	}
	out := make([]PhaseInfo, len(p.phases))
	for i, ph := range p.phases {
		out[i] = PhaseInfo{
			Index:       i,
			ID:          ph.meta.ID,
			Name:        ph.meta.Name,
			Description: ph.meta.Description,
			StepCount:   len(ph.meta.Steps),
			StartFlat:   ph.startFlat,
			EndFlat:     ph.startFlat + len(ph.meta.Steps),
		}
	}
	p.phaseInfoCache = out
	p.phaseInfoDirty = false
	return out
}

// StepForwardSub executes exactly one sub-step and advances the
// cursor. Returns AlreadyComplete if the pipeline has no remaining
// sub-steps, or an AlgorithmFailure if Execute returns an error — in
// that case the cursor does not advance.
func (p *Pipeline) StepForwardSub() error {
	if p.IsComplete() {
		return &AlreadyComplete{}
	}
	phaseIdx, subIdx := p.flatToPosition(p.executed)
	rp := &p.phases[phaseIdx]

	seed := DeriveStepSeed(p.seed, uint32(p.executed), p.world.Width, p.world.Height)
	hi, lo := SplitStepSeed(seed)
	rnd := randx.New(hi, lo)

	log := make([]geometry.ShapeRecord, 0)
	ctx := phase.NewRuntimeContext(p.world, p.profile, p.blocks, p.biomes, rnd, p.biomeMap, p.shared, &log)

	start := time.Now()
	err := rp.algo.Execute(subIdx, ctx)
	elapsed := time.Since(start)

	p.biomeMap = ctx.BiomeMap

	if err != nil {
		return &AlgorithmFailure{PhaseID: rp.meta.ID, StepIndex: subIdx, Message: err.Error()}
	}

	p.shapeLogs[p.executed] = log
	p.profiler.RecordStep(rp.meta.ID, subIdx, elapsed)
	p.executed++
	return nil
}

// StepForwardPhase runs sub-steps forward until the phase containing
// the next sub-step finishes (or the pipeline completes).
func (p *Pipeline) StepForwardPhase() error {
	if p.IsComplete() {
		return &AlreadyComplete{}
	}
	phaseIdx, _ := p.flatToPosition(p.executed)
	end := p.phases[phaseIdx].startFlat + len(p.phases[phaseIdx].meta.Steps)
	for p.executed < end {
		if err := p.StepForwardSub(); err != nil {
			return err
		}
	}
	return nil
}

// StepBackwardSub rewinds exactly one sub-step by replaying from
// zero. A no-op at flat index 0.
func (p *Pipeline) StepBackwardSub() error {
	if p.executed == 0 {
		return nil
	}
	return p.ReplayToFlat(p.executed - 1)
}

// StepBackwardPhase rewinds to the start of the current phase if the
// cursor is past it, otherwise to the start of the previous phase, or
// is a no-op if already at flat index 0.
func (p *Pipeline) StepBackwardPhase() error {
	if p.executed == 0 {
		return nil
	}
	phaseIdx, _ := p.flatToPosition(p.executed)
	if phaseIdx >= len(p.phases) {
		phaseIdx = len(p.phases) - 1
	}
	currentStart := p.phases[phaseIdx].startFlat
	if p.executed > currentStart {
		return p.ReplayToFlat(currentStart)
	}
	if phaseIdx > 0 {
		return p.ReplayToFlat(p.phases[phaseIdx-1].startFlat)
	}
	return p.ReplayToFlat(0)
}

// ReplayToFlat resets the world, biome map and per-run shared state,
// resets every registered algorithm, and replays sub-steps 0..n from
// scratch. This is the only way the pipeline moves its cursor
// backward — no journal of inverse operations is kept.
func (p *Pipeline) ReplayToFlat(n int) error {
	if n < 0 || n > p.total {
		return &OutOfRangeTarget{Target: n, Total: p.total}
	}
	p.world.Reset()
	p.biomeMap = nil
	p.shared = make(map[phase.SharedKey]any)
	for i := range p.shapeLogs {
		p.shapeLogs[i] = nil
	}
	for _, rp := range p.phases {
		rp.algo.OnReset()
	}
	p.profiler.Reset()
	p.executed = 0

	for p.executed < n {
		if err := p.StepForwardSub(); err != nil {
			return err
		}
	}
	return nil
}

// ResetAll is equivalent to ReplayToFlat(0).
func (p *Pipeline) ResetAll() error { return p.ReplayToFlat(0) }

// RunAll steps forward until the pipeline is complete.
func (p *Pipeline) RunAll() error {
	for !p.IsComplete() {
		if err := p.StepForwardSub(); err != nil {
			return err
		}
	}
	return nil
}

// ExportState captures the seed, world size, layer overrides (the
// profile's current percent ranges, which may differ from the loaded
// config if a caller adjusted them) and every registered algorithm's
// current parameters, for the snapshot package to serialize.
func (p *Pipeline) ExportState() PipelineState {
	overrides := make(map[string]LayerOverride, len(p.profile.Layers))
	for _, l := range p.profile.Layers {
		overrides[l.Key] = LayerOverride{StartPercent: l.StartPercent, EndPercent: l.EndPercent}
	}
	algos := make([]AlgorithmState, len(p.phases))
	for i, rp := range p.phases {
		algos[i] = AlgorithmState{AlgorithmID: rp.meta.ID, Params: rp.algo.GetParams()}
	}
	return PipelineState{
		Seed:          p.seed,
		WorldWidth:    p.world.Width,
		WorldHeight:   p.world.Height,
		LayerOverride: overrides,
		Algorithms:    algos,
	}
}

// ImportState applies a previously exported state: the seed, layer
// percent overrides, and per-algorithm parameters (matched by
// algorithm id, not position — unregistered ids are ignored, missing
// ids keep their current parameters and are reported back as
// warnings). The pipeline is replayed to flat index 0 afterward since
// none of this changes tile data directly.
func (p *Pipeline) ImportState(state PipelineState) (warnings []string, err error) {
	for key, ov := range state.LayerOverride {
		for i := range p.profile.Layers {
			if p.profile.Layers[i].Key == key {
				p.profile.Layers[i].StartPercent = ov.StartPercent
				p.profile.Layers[i].EndPercent = ov.EndPercent
			}
		}
	}

	seen := make(map[string]bool, len(state.Algorithms))
	for _, as := range state.Algorithms {
		seen[as.AlgorithmID] = true
		matched := false
		for _, rp := range p.phases {
			if rp.meta.ID == as.AlgorithmID {
				matched = true
				if err := rp.algo.SetParams(as.Params); err != nil {
					return warnings, fmt.Errorf("algorithm %q: %w", as.AlgorithmID, err)
				}
				break
			}
		}
		if !matched {
			warnings = append(warnings, fmt.Sprintf("snapshot references unknown algorithm %q, ignored", as.AlgorithmID))
		}
	}
	for _, rp := range p.phases {
		if !seen[rp.meta.ID] {
			warnings = append(warnings, fmt.Sprintf("snapshot missing algorithm %q, keeping current parameters", rp.meta.ID))
		}
	}

	p.seed = state.Seed
	return warnings, p.ReplayToFlat(0)
}
