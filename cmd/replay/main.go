// Command replay loads a .lwd snapshot, replays the pipeline it
// describes from scratch, and prints the resulting tile digest so it
// can be compared against the digest the original run reported.
package main

import (
	"flag"
	"log"
	"os"

	"worldforge/internal/algorithms/biomedivision"
	"worldforge/internal/config"
	"worldforge/internal/core"
	"worldforge/internal/pipeline"
	"worldforge/internal/snapshot"
	"worldforge/internal/worldhash"
)

func main() {
	var (
		snapPath   = flag.String("snapshot", "", "path to .lwd snapshot")
		configsDir = flag.String("configs", "", "directory of world.json/blocks.json/biome.json overrides (empty uses embedded defaults)")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[replay] ", log.LstdFlags|log.Lmicroseconds)

	if *snapPath == "" {
		logger.Fatal("missing -snapshot")
	}

	snap, err := snapshot.Load(*snapPath)
	if err != nil {
		logger.Fatalf("load snapshot: %v", err)
	}

	_, layers, err := config.LoadWorldTable(assetOverride(*configsDir, "world.json"))
	if err != nil {
		logger.Fatalf("load world table: %v", err)
	}
	blocks, err := config.LoadBlockTable(assetOverride(*configsDir, "blocks.json"))
	if err != nil {
		logger.Fatalf("load block table: %v", err)
	}
	biomes, err := config.LoadBiomeTable(assetOverride(*configsDir, "biome.json"))
	if err != nil {
		logger.Fatalf("load biome table: %v", err)
	}

	profile := &core.WorldProfile{
		Size: core.WorldSizeSpec{
			Key:    "replay",
			Width:  snap.WorldSize.Width,
			Height: snap.WorldSize.Height,
		},
		Layers: layers,
	}
	world := profile.NewWorld()

	p := pipeline.New(world, profile, blocks, biomes, snap.Seed)
	p.Register(biomedivision.New())

	warnings, err := snapshot.Restore(p, snap)
	if err != nil {
		logger.Fatalf("restore snapshot: %v", err)
	}
	for _, w := range warnings {
		logger.Printf("warning: %s", w)
	}

	if err := p.RunAll(); err != nil {
		logger.Fatalf("run all: %v", err)
	}

	logger.Printf("replayed seed=%d world=%dx%d sub_steps=%d", p.Seed(), world.Width, world.Height, p.ExecutedSubSteps())
	logger.Printf("tile digest:  %s", worldhash.Tiles(p.World()))
	logger.Printf("biome digest: %s", worldhash.Biomes(p.BiomeMap()))
}

func assetOverride(dir, name string) string {
	if dir == "" {
		return ""
	}
	return dir + "/" + name
}
