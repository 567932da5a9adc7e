// Package config loads the three JSON tables (world sizes/layers,
// block definitions, biome definitions) and the engine tuning YAML
// file, validating each JSON table against an embedded JSON Schema
// before decoding it into the core package's types.
package config

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"worldforge/internal/core"
)

//go:embed assets/world.json assets/blocks.json assets/biome.json assets/engine.yaml
var defaultAssets embed.FS

//go:embed assets/schema/world.schema.json assets/schema/blocks.schema.json assets/schema/biome.schema.json
var schemaAssets embed.FS

func compileSchema(name, path string) (*jsonschema.Schema, error) {
	raw, err := schemaAssets.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read embedded schema %s: %w", path, err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(name, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("load schema %s: %w", name, err)
	}
	s, err := c.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}
	return s, nil
}

func validateJSON(source string, schema *jsonschema.Schema, raw []byte) error {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return core.NewConfigurationInvalid(source, fmt.Sprintf("invalid JSON: %v", err))
	}
	if err := schema.Validate(doc); err != nil {
		return core.NewConfigurationInvalid(source, fmt.Sprintf("schema validation failed: %v", err))
	}
	return nil
}

// worldJSON mirrors assets/world.json's shape for decoding.
type worldJSON struct {
	WorldSizes map[string]struct {
		Width       uint32 `json:"width"`
		Height      uint32 `json:"height"`
		Description string `json:"description"`
	} `json:"world_sizes"`
	Layers []struct {
		Key          string `json:"key"`
		StartPercent uint8  `json:"start_percent"`
		EndPercent   uint8  `json:"end_percent"`
		ShortName    string `json:"short_name"`
		Description  string `json:"description"`
	} `json:"layers"`
}

// LoadWorldTable loads world.json (or an override file, if path is
// non-empty) and returns the decoded world sizes and layer list.
func LoadWorldTable(path string) (map[string]core.WorldSizeSpec, []core.LayerDefinition, error) {
	raw, err := readAssetOrOverride("assets/world.json", path)
	if err != nil {
		return nil, nil, err
	}
	schema, err := compileSchema("world.schema.json", "assets/schema/world.schema.json")
	if err != nil {
		return nil, nil, err
	}
	if err := validateJSON("world.json", schema, raw); err != nil {
		return nil, nil, err
	}

	var parsed worldJSON
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, nil, core.NewConfigurationInvalid("world.json", err.Error())
	}

	sizes := make(map[string]core.WorldSizeSpec, len(parsed.WorldSizes))
	for key, v := range parsed.WorldSizes {
		sizes[key] = core.WorldSizeSpec{Key: key, Width: v.Width, Height: v.Height, Description: v.Description}
	}

	layers := make([]core.LayerDefinition, 0, len(parsed.Layers))
	for _, l := range parsed.Layers {
		layers = append(layers, core.LayerDefinition{
			Key:          l.Key,
			StartPercent: l.StartPercent,
			EndPercent:   l.EndPercent,
			ShortName:    l.ShortName,
			Description:  l.Description,
		})
	}
	if err := core.ValidateLayers(layers); err != nil {
		return nil, nil, core.NewConfigurationInvalid("world.json", err.Error())
	}
	return sizes, layers, nil
}

type blockJSON struct {
	Name        string  `json:"name"`
	RGBA        [4]uint8 `json:"rgba"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
}

// LoadBlockTable loads blocks.json (or an override file) keyed by
// block id.
func LoadBlockTable(path string) (map[uint8]core.BlockDefinition, error) {
	raw, err := readAssetOrOverride("assets/blocks.json", path)
	if err != nil {
		return nil, err
	}
	schema, err := compileSchema("blocks.schema.json", "assets/schema/blocks.schema.json")
	if err != nil {
		return nil, err
	}
	if err := validateJSON("blocks.json", schema, raw); err != nil {
		return nil, err
	}

	var parsed map[string]blockJSON
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, core.NewConfigurationInvalid("blocks.json", err.Error())
	}

	out := make(map[uint8]core.BlockDefinition, len(parsed))
	for key, v := range parsed {
		id, err := parseTableID(key)
		if err != nil {
			return nil, core.NewConfigurationInvalid("blocks.json", err.Error())
		}
		if _, dup := out[id]; dup {
			return nil, core.NewConfigurationInvalid("blocks.json", fmt.Sprintf("duplicate block id %d", id))
		}
		out[id] = core.BlockDefinition{ID: id, Name: v.Name, RGBA: v.RGBA, Description: v.Description, Category: v.Category}
	}
	return out, nil
}

type biomeJSON struct {
	Key          string   `json:"key"`
	Name         string   `json:"name"`
	OverlayColor [4]uint8 `json:"overlay_color"`
	Description  string   `json:"description"`
}

// LoadBiomeTable loads biome.json (or an override file) keyed by
// biome id. Id 0 (core.BiomeUnassigned) must not appear in the table.
func LoadBiomeTable(path string) (map[uint8]core.BiomeDefinition, error) {
	raw, err := readAssetOrOverride("assets/biome.json", path)
	if err != nil {
		return nil, err
	}
	schema, err := compileSchema("biome.schema.json", "assets/schema/biome.schema.json")
	if err != nil {
		return nil, err
	}
	if err := validateJSON("biome.json", schema, raw); err != nil {
		return nil, err
	}

	var parsed map[string]biomeJSON
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, core.NewConfigurationInvalid("biome.json", err.Error())
	}

	out := make(map[uint8]core.BiomeDefinition, len(parsed))
	for key, v := range parsed {
		id, err := parseTableID(key)
		if err != nil {
			return nil, core.NewConfigurationInvalid("biome.json", err.Error())
		}
		if id == core.BiomeUnassigned {
			return nil, core.NewConfigurationInvalid("biome.json", "id 0 is reserved for BiomeUnassigned")
		}
		if _, dup := out[id]; dup {
			return nil, core.NewConfigurationInvalid("biome.json", fmt.Sprintf("duplicate biome id %d", id))
		}
		out[id] = core.BiomeDefinition{ID: id, Key: v.Key, Name: v.Name, OverlayColor: v.OverlayColor, Description: v.Description}
	}
	return out, nil
}

func parseTableID(key string) (uint8, error) {
	var n int
	if _, err := fmt.Sscanf(key, "%d", &n); err != nil {
		return 0, fmt.Errorf("key %q is not a numeric id", key)
	}
	if n < 0 || n > 255 {
		return 0, fmt.Errorf("id %d out of range for uint8", n)
	}
	return uint8(n), nil
}

// EngineTuning holds the adaptive-batch and parallel-fill constants
// spec.md leaves as "defaults", loaded from engine.yaml the way the
// teacher loads tuning.yaml.
type EngineTuning struct {
	ParallelPixelThreshold int64   `yaml:"parallel_pixel_threshold"`
	BatchInitial           int     `yaml:"batch_initial"`
	BatchMin               int     `yaml:"batch_min"`
	BatchMax               int     `yaml:"batch_max"`
	BatchTargetMinMs       float64 `yaml:"batch_target_min_ms"`
	BatchTargetMaxMs       float64 `yaml:"batch_target_max_ms"`
	BatchEMAAlpha          float64 `yaml:"batch_ema_alpha"`
}

func (t *EngineTuning) applyDefaults() {
	if t.ParallelPixelThreshold <= 0 {
		t.ParallelPixelThreshold = 50_000
	}
	if t.BatchInitial <= 0 {
		t.BatchInitial = 3
	}
	if t.BatchMin <= 0 {
		t.BatchMin = 1
	}
	if t.BatchMax <= 0 {
		t.BatchMax = 32
	}
	if t.BatchTargetMinMs <= 0 {
		t.BatchTargetMinMs = 8
	}
	if t.BatchTargetMaxMs <= 0 {
		t.BatchTargetMaxMs = 16
	}
	if t.BatchEMAAlpha <= 0 {
		t.BatchEMAAlpha = 0.3
	}
}

// LoadEngineTuning loads engine.yaml (or an override file).
func LoadEngineTuning(path string) (EngineTuning, error) {
	raw, err := readAssetOrOverride("assets/engine.yaml", path)
	if err != nil {
		return EngineTuning{}, err
	}
	var t EngineTuning
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return EngineTuning{}, fmt.Errorf("engine.yaml: %w", err)
	}
	t.applyDefaults()
	return t, nil
}

func readAssetOrOverride(embeddedPath, overridePath string) ([]byte, error) {
	if overridePath != "" {
		return os.ReadFile(overridePath)
	}
	return defaultAssets.ReadFile(embeddedPath)
}
