// Command worldgen drives the generation pipeline headlessly: run to
// completion or to a target sub-step, print a content digest of the
// result, save a .lwd snapshot, and optionally index the run and
// stream live progress over a debug WebSocket.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"worldforge/internal/algorithms/biomedivision"
	"worldforge/internal/config"
	"worldforge/internal/core"
	"worldforge/internal/geometry"
	"worldforge/internal/historydb"
	"worldforge/internal/observer"
	"worldforge/internal/pipeline"
	"worldforge/internal/snapshot"
	"worldforge/internal/worldhash"
)

func main() {
	var (
		sizeKey     = flag.String("size", "medium", "world size key from world.json (small, medium, large, custom)")
		customW     = flag.Uint("width", 0, "world width when -size=custom")
		customH     = flag.Uint("height", 0, "world height when -size=custom")
		seed        = flag.Uint64("seed", 1, "generation seed")
		target      = flag.Int("target", -1, "stop after this many sub-steps (-1 runs to completion)")
		configsDir  = flag.String("configs", "", "directory of world.json/blocks.json/biome.json/engine.yaml overrides (empty uses embedded defaults)")
		out         = flag.String("out", "", "path to write a .lwd snapshot (empty skips saving)")
		historyPath = flag.String("history", "", "sqlite run-history index path (empty disables)")
		observeAddr = flag.String("observe", "", "address to serve a live-progress WebSocket on at /v1/progress (empty disables)")
		listShapes  = flag.Bool("list-shapes", false, "print the built-in shape registry and exit")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[worldgen] ", log.LstdFlags|log.Lmicroseconds)

	if *listShapes {
		for _, k := range geometry.AllShapeKinds() {
			fmt.Printf("%-10s %s\n", k.DisplayName(), k.MathDescription())
		}
		return
	}

	sizes, layers, err := config.LoadWorldTable(assetOverride(*configsDir, "world.json"))
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
	tuning, err := config.LoadEngineTuning(assetOverride(*configsDir, "engine.yaml"))
	if err != nil {
		logger.Fatalf("load engine tuning: %v", err)
	}

	size, ok := sizes[*sizeKey]
	if !ok {
		logger.Fatalf("unknown world size key %q", *sizeKey)
	}
	if *sizeKey == "custom" {
		size.Width, size.Height = uint32(*customW), uint32(*customH)
	}
	if size.Width == 0 || size.Height == 0 {
		logger.Fatalf("world size %q resolved to zero dimensions", *sizeKey)
	}

	profile := &core.WorldProfile{Size: size, Layers: layers}
	world := profile.NewWorld()

	p := pipeline.New(world, profile, blocks, biomes, *seed)
	algo := biomedivision.New()
	algo.SetPixelThreshold(tuning.ParallelPixelThreshold)
	p.Register(algo)

	var obs *observer.Server
	var httpServer *http.Server
	if *observeAddr != "" {
		obs = observer.NewServer(logger)
		mux := http.NewServeMux()
		mux.HandleFunc("/v1/progress", obs.Handler())
		httpServer = &http.Server{Addr: *observeAddr, Handler: mux}
		go func() {
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Printf("progress server: %v", err)
			}
		}()
		logger.Printf("progress stream at ws://%s/v1/progress", *observeAddr)
	}

	batch := pipeline.NewAdaptiveBatchSize(
		tuning.BatchInitial, tuning.BatchMin, tuning.BatchMax,
		tuning.BatchTargetMinMs, tuning.BatchTargetMaxMs, tuning.BatchEMAAlpha,
	)

	want := *target
	if want < 0 || want > p.TotalSubSteps() {
		want = p.TotalSubSteps()
	}

	for p.ExecutedSubSteps() < want {
		remaining := want - p.ExecutedSubSteps()
		n := batch.BatchSize()
		if n > remaining {
			n = remaining
		}
		started := time.Now()
		for i := 0; i < n; i++ {
			if err := p.StepForwardSub(); err != nil {
				logger.Fatalf("step %d: %v", p.ExecutedSubSteps(), err)
			}
		}
		batch.ReportBatch(time.Since(started))

		if obs != nil {
			phaseName := ""
			if list := p.PhaseInfoList(); len(list) > 0 {
				idx := p.CurrentPhaseIndex()
				if idx >= 0 && idx < len(list) {
					phaseName = list[idx].Name
				}
			}
			obs.Broadcast(observer.ProgressFrame{
				FlatIndex: p.ExecutedSubSteps(),
				Total:     p.TotalSubSteps(),
				Phase:     phaseName,
				Step:      p.CurrentSubIndex(),
			})
		}
	}

	logger.Printf("executed %d/%d sub-steps", p.ExecutedSubSteps(), p.TotalSubSteps())
	logger.Printf("tile digest:  %s", worldhash.Tiles(p.World()))
	logger.Printf("biome digest: %s", worldhash.Biomes(p.BiomeMap()))

	if *out != "" {
		snap := snapshot.Collect(p, time.Now().UTC().Format(time.RFC3339))
		if err := snapshot.Save(*out, snap); err != nil {
			logger.Fatalf("save snapshot: %v", err)
		}
		logger.Printf("snapshot written to %s", *out)
	}

	if *historyPath != "" {
		db, err := historydb.Open(*historyPath)
		if err != nil {
			logger.Fatalf("open history db: %v", err)
		}
		db.RecordRun(historydb.Run{
			Seed:         p.Seed(),
			WorldWidth:   world.Width,
			WorldHeight:  world.Height,
			Checksum:     worldhash.Tiles(p.World()),
			SnapshotPath: *out,
		})
		if err := db.Close(); err != nil {
			logger.Printf("close history db: %v", err)
		}
	}

	if httpServer != nil {
		_ = httpServer.Close()
	}
}

func assetOverride(dir, name string) string {
	if dir == "" {
		return ""
	}
	return dir + "/" + name
}
