// Package snapshot implements the .lwd file format: a small,
// pretty-printed JSON record of a pipeline's seed, world size, layer
// overrides and algorithm parameters. It never carries tile data —
// loading a snapshot replays the pipeline from scratch.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"

	"worldforge/internal/pipeline"
)

// CurrentVersion is the snapshot format version this package writes
// and the highest version it will load. Bump it, and only it, if
// DeriveStepSeed's mix or the on-disk shape changes in a way that
// would make an old snapshot replay to different tiles.
const CurrentVersion = 1

// LayerOverride mirrors pipeline.LayerOverride for JSON encoding.
type LayerOverride struct {
	StartPercent uint8 `json:"start_percent"`
	EndPercent   uint8 `json:"end_percent"`
}

// AlgorithmState mirrors pipeline.AlgorithmState for JSON encoding.
type AlgorithmState struct {
	AlgorithmID string          `json:"algorithm_id"`
	Params      json.RawMessage `json:"params"`
}

// WorldSize is the width/height pair a snapshot was taken at.
type WorldSize struct {
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
}

// WorldSnapshot is the exact on-disk shape of a .lwd file.
type WorldSnapshot struct {
	Version    int                      `json:"version"`
	Seed       uint64                   `json:"seed"`
	WorldSize  WorldSize                `json:"world_size"`
	Layers     map[string]LayerOverride `json:"layers"`
	Algorithms []AlgorithmState         `json:"algorithms"`
	Timestamp  string                   `json:"timestamp"`
}

// Collect builds a WorldSnapshot from a pipeline's current state.
// timestamp is supplied by the caller (RFC3339) rather than read from
// the clock here, keeping this package free of time.Now() so it stays
// trivially testable.
func Collect(p *pipeline.Pipeline, timestamp string) WorldSnapshot {
	state := p.ExportState()
	layers := make(map[string]LayerOverride, len(state.LayerOverride))
	for k, v := range state.LayerOverride {
		layers[k] = LayerOverride{StartPercent: v.StartPercent, EndPercent: v.EndPercent}
	}
	algos := make([]AlgorithmState, len(state.Algorithms))
	for i, a := range state.Algorithms {
		algos[i] = AlgorithmState{AlgorithmID: a.AlgorithmID, Params: a.Params}
	}
	return WorldSnapshot{
		Version:    CurrentVersion,
		Seed:       state.Seed,
		WorldSize:  WorldSize{Width: state.WorldWidth, Height: state.WorldHeight},
		Layers:     layers,
		Algorithms: algos,
		Timestamp:  timestamp,
	}
}

// Marshal renders a WorldSnapshot as indented JSON, the .lwd file
// body.
func Marshal(s WorldSnapshot) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Save writes a WorldSnapshot to path as indented JSON.
func Save(path string, s WorldSnapshot) error {
	raw, err := Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Unmarshal parses a .lwd file body, rejecting unparseable JSON, a
// missing or zero version, and a version newer than CurrentVersion.
// Other missing fields decode to their zero values.
func Unmarshal(raw []byte) (WorldSnapshot, error) {
	var s WorldSnapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return WorldSnapshot{}, &pipeline.SnapshotMalformed{Reason: err.Error()}
	}
	if s.Version <= 0 {
		return WorldSnapshot{}, &pipeline.SnapshotMalformed{Reason: "missing or zero version field"}
	}
	if s.Version > CurrentVersion {
		return WorldSnapshot{}, &pipeline.SnapshotVersionTooNew{Found: s.Version, Current: CurrentVersion}
	}
	return s, nil
}

// Load reads and parses a .lwd file from path.
func Load(path string) (WorldSnapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return WorldSnapshot{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(raw)
}

// Restore applies a loaded WorldSnapshot to a pipeline, returning any
// order-tolerance warnings (unknown or missing algorithm ids).
func Restore(p *pipeline.Pipeline, s WorldSnapshot) ([]string, error) {
	overrides := make(map[string]pipeline.LayerOverride, len(s.Layers))
	for k, v := range s.Layers {
		overrides[k] = pipeline.LayerOverride{StartPercent: v.StartPercent, EndPercent: v.EndPercent}
	}
	algos := make([]pipeline.AlgorithmState, len(s.Algorithms))
	for i, a := range s.Algorithms {
		algos[i] = pipeline.AlgorithmState{AlgorithmID: a.AlgorithmID, Params: a.Params}
	}
	state := pipeline.PipelineState{
		Seed:          s.Seed,
		WorldWidth:    s.WorldSize.Width,
		WorldHeight:   s.WorldSize.Height,
		LayerOverride: overrides,
		Algorithms:    algos,
	}
	return p.ImportState(state)
}
