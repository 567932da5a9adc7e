package phase

import (
	"worldforge/internal/core"
	"worldforge/internal/geometry"
	"worldforge/internal/randx"
)

// SharedKey is a typed key into a RuntimeContext's shared store, used
// to hand a value computed by one sub-step to a later one within the
// same phase (e.g. "which side did the jungle end up on").
type SharedKey string

// RuntimeContext is everything a sub-step's Execute call can touch.
// World and Rand are read/write; Profile, Blocks and Biomes are
// read-only tables resolved once at pipeline construction; BiomeMap
// is read/write and nil until the first phase that needs it creates
// one; Shared is a free-form hand-off store scoped to one generation
// run; ShapeLog is write-only — algorithms append records to it for
// debug visualization, never read them back.
type RuntimeContext struct {
	World    *core.World
	Profile  *core.WorldProfile
	Blocks   map[uint8]core.BlockDefinition
	Biomes   map[uint8]core.BiomeDefinition
	Rand     *randx.Rand
	BiomeMap *core.BiomeMap

	shared   map[SharedKey]any
	shapeLog *[]geometry.ShapeRecord
}

// NewRuntimeContext builds a RuntimeContext backed by the given
// shared store and shape log. Both are supplied by the pipeline:
// shared persists across sub-steps (and phases) until the pipeline's
// next replay, and shapeLog collects the records of this one sub-step.
func NewRuntimeContext(world *core.World, profile *core.WorldProfile, blocks map[uint8]core.BlockDefinition, biomes map[uint8]core.BiomeDefinition, rnd *randx.Rand, biomeMap *core.BiomeMap, shared map[SharedKey]any, shapeLog *[]geometry.ShapeRecord) *RuntimeContext {
	return &RuntimeContext{
		World: world, Profile: profile, Blocks: blocks, Biomes: biomes,
		Rand: rnd, BiomeMap: biomeMap, shared: shared, shapeLog: shapeLog,
	}
}

// SharedSet stores a value under key for later sub-steps to read.
func (c *RuntimeContext) SharedSet(key SharedKey, value any) {
	c.shared[key] = value
}

// SharedGet retrieves a value previously stored under key.
func (c *RuntimeContext) SharedGet(key SharedKey) (any, bool) {
	v, ok := c.shared[key]
	return v, ok
}

// LogShape appends a shape record to the current sub-step's shape
// log, for debug visualization only.
func (c *RuntimeContext) LogShape(record geometry.ShapeRecord) {
	*c.shapeLog = append(*c.shapeLog, record)
}

// BiomeIDByKey resolves a biome's configured key (e.g. "forest") to
// its numeric id, for algorithms that want to reference biomes by
// name rather than hard-coding ids.
func (c *RuntimeContext) BiomeIDByKey(key string) (uint8, bool) {
	for id, def := range c.Biomes {
		if def.Key == key {
			return id, true
		}
	}
	return 0, false
}
