// levelgen generates a house level, decorates it and writes the result.
//
// Usage:
//
//	go run ./cmd/levelgen \
//	    -config data/level.yaml \
//	    -seed 42 \
//	    -out data/levels/house.yaml \
//	    -snapshot data/levels/house.zst \
//	    -db data/levels.db -name house \
//	    -render
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/lawnchairsociety/towerhouse/internal/asciimap"
	"github.com/lawnchairsociety/towerhouse/internal/config"
	"github.com/lawnchairsociety/towerhouse/internal/decorator"
	"github.com/lawnchairsociety/towerhouse/internal/generator"
	"github.com/lawnchairsociety/towerhouse/internal/levelio"
	"github.com/lawnchairsociety/towerhouse/internal/logger"
	"github.com/lawnchairsociety/towerhouse/internal/store"
)

func main() {
	configFile := flag.String("config", "data/level.yaml", "Path to level config YAML file")
	loggingConfig := flag.String("logging", "", "Path to logging config YAML file (default: the -config file)")
	seed := flag.Int64("seed", 0, "Generation seed (default: from config; 0 there or here means random based on current time, so seed 0 itself cannot be requested)")
	walks := flag.Int("walks", 0, "Number of random walks (default: from config)")
	outFile := flag.String("out", "", "Write the level as YAML to this path")
	snapshotFile := flag.String("snapshot", "", "Write a zstd-compressed snapshot to this path")
	dbFile := flag.String("db", "", "Store the level in this SQLite database")
	dbConfig := flag.String("db-config", "", "Store the level using this store config YAML file (overrides -db)")
	name := flag.String("name", "", "Unique name for the stored level")
	render := flag.Bool("render", false, "Print an ASCII map of every floor")
	decorations := flag.Bool("decorations", true, "Scatter decorations over floor tiles")
	flag.Parse()

	// Initialize logger first (before any logging)
	if *loggingConfig == "" {
		*loggingConfig = *configFile
	}
	logConfig, err := logger.LoadConfig(*loggingConfig)
	if err != nil {
		log.Printf("Failed to load logging config, using defaults: %v", err)
	}
	if err := logger.Initialize(logConfig); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load level config: %v", err)
	}
	if *seed != 0 {
		cfg.Generation.Seed = *seed
	}
	if *walks != 0 {
		cfg.Generation.Walks = *walks
	}

	gen, err := generator.New(cfg)
	if err != nil {
		log.Fatalf("Invalid level config: %v", err)
	}
	logger.Info("Generation seed selected", "seed", gen.Seed(), "random", cfg.Generation.Seed == 0)

	level, err := gen.Generate()
	if err != nil {
		log.Fatalf("Failed to generate level: %v", err)
	}

	d := decorator.New(level.Grid, cfg.Scale)
	placements := d.Structure()
	if *decorations {
		placements = append(placements, d.Decorations(
			decorator.DecorationRand(level.Seed),
			cfg.Decoration.Probability,
			cfg.Decoration.Offset,
		)...)
	}

	tally := decorator.Tally{}
	if err := decorator.Emit(tally, placements); err != nil {
		log.Fatalf("Failed to tally placements: %v", err)
	}
	for _, k := range decorator.Kinds() {
		if tally[k] > 0 {
			logger.Debug("Placements", "kind", k.String(), "count", tally[k])
		}
	}
	logger.Info("Level decorated", "placements", tally.Total(), "decorations", tally[decorator.KindDecoration])

	if *render {
		if err := asciimap.Render(os.Stdout, level.Grid); err != nil {
			log.Fatalf("Failed to render map: %v", err)
		}
	}

	doc := levelio.NewDocument(level, placements)
	if *outFile != "" {
		if err := levelio.SaveYAML(doc, *outFile); err != nil {
			log.Fatalf("Failed to write level: %v", err)
		}
		logger.Info("Level written", "path", *outFile)
	}
	if *snapshotFile != "" {
		if err := levelio.WriteSnapshot(*snapshotFile, doc); err != nil {
			log.Fatalf("Failed to write snapshot: %v", err)
		}
		logger.Info("Snapshot written", "path", *snapshotFile)
	}

	if *dbFile != "" || *dbConfig != "" {
		storeLevel(level, placements, *dbFile, *dbConfig, *name)
	}
}

func storeLevel(level *generator.Level, placements []decorator.Placement, dbFile, dbConfig, name string) {
	cfg := store.DefaultConfig(dbFile)
	if dbConfig != "" {
		var err error
		cfg, err = store.LoadConfig(dbConfig)
		if err != nil {
			log.Fatalf("Failed to load store config: %v", err)
		}
	}

	s, err := store.OpenWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	id, err := s.SaveLevel(context.Background(), name, level, placements)
	if err != nil {
		logger.Error("Failed to store level", "error", err)
		return
	}
	logger.Info("Level stored", "id", id, "name", name, "driver", s.Dialect().DriverName())
}
