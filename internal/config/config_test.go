package config

import "testing"

func TestLoadWorldTableDefaults(t *testing.T) {
	sizes, layers, err := LoadWorldTable("")
	if err != nil {
		t.Fatalf("LoadWorldTable: %v", err)
	}
	if _, ok := sizes["medium"]; !ok {
		t.Error("expected a \"medium\" world size in the default table")
	}
	if len(layers) == 0 {
		t.Fatal("expected at least one layer")
	}
	if layers[0].StartPercent != 0 {
		t.Errorf("first layer should start at 0%%, got %d", layers[0].StartPercent)
	}
	if layers[len(layers)-1].EndPercent != 100 {
		t.Errorf("last layer should end at 100%%, got %d", layers[len(layers)-1].EndPercent)
	}
}

func TestLoadBlockTableDefaults(t *testing.T) {
	blocks, err := LoadBlockTable("")
	if err != nil {
		t.Fatalf("LoadBlockTable: %v", err)
	}
	air, ok := blocks[0]
	if !ok {
		t.Fatal("expected block id 0 (air) in the default table")
	}
	if air.Name != "air" {
		t.Errorf("expected block 0 to be named \"air\", got %q", air.Name)
	}
}

func TestLoadBiomeTableDefaultsExcludeZeroID(t *testing.T) {
	biomes, err := LoadBiomeTable("")
	if err != nil {
		t.Fatalf("LoadBiomeTable: %v", err)
	}
	if _, ok := biomes[0]; ok {
		t.Error("biome table must not define id 0 (reserved for BiomeUnassigned)")
	}
	if len(biomes) == 0 {
		t.Fatal("expected at least one biome definition")
	}
}

func TestLoadEngineTuningDefaults(t *testing.T) {
	tuning, err := LoadEngineTuning("")
	if err != nil {
		t.Fatalf("LoadEngineTuning: %v", err)
	}
	if tuning.ParallelPixelThreshold != 50_000 {
		t.Errorf("expected default parallel pixel threshold 50000, got %d", tuning.ParallelPixelThreshold)
	}
	if tuning.BatchInitial != 3 {
		t.Errorf("expected default batch_initial 3, got %d", tuning.BatchInitial)
	}
}
