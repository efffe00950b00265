// mapgen renders a saved level as an ASCII map.
//
// The level comes from a YAML export, a .zst snapshot or, with -db, a
// stored level looked up by id or name.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lawnchairsociety/towerhouse/internal/asciimap"
	"github.com/lawnchairsociety/towerhouse/internal/grid"
	"github.com/lawnchairsociety/towerhouse/internal/levelio"
	"github.com/lawnchairsociety/towerhouse/internal/store"
)

func main() {
	inputFile := flag.String("input", "data/levels/house.yaml", "Path to level YAML or .zst snapshot")
	dbFile := flag.String("db", "", "Read the level from this SQLite database instead of -input")
	levelRef := flag.String("level", "", "Stored level id or name (with -db)")
	floorNum := flag.Int("floor", -1, "Floor number to display (-1 for all floors)")
	outputFile := flag.String("output", "", "Output file (empty for stdout)")
	showLegend := flag.Bool("legend", true, "Show legend")
	flag.Parse()

	var (
		title string
		g     *grid.Grid
		err   error
	)
	if *dbFile != "" {
		title, g, err = loadStored(*dbFile, *levelRef)
	} else {
		title, g, err = loadFile(*inputFile)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading level: %v\n", err)
		os.Exit(1)
	}

	var output strings.Builder
	output.WriteString(title + "\n")
	output.WriteString(strings.Repeat("=", 60) + "\n\n")

	if err := renderFloors(&output, g, *floorNum); err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering level: %v\n", err)
		os.Exit(1)
	}
	if *showLegend {
		output.WriteString(asciimap.Legend())
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, []byte(output.String()), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Map written to %s\n", *outputFile)
	} else {
		fmt.Print(output.String())
	}
}

func renderFloors(output *strings.Builder, g *grid.Grid, floor int) error {
	if floor >= 0 {
		return asciimap.RenderFloor(output, g, floor)
	}
	if err := asciimap.RenderLimits(output, g); err != nil {
		return err
	}
	for z := g.Size().Floors - 1; z >= 0; z-- {
		output.WriteString("\n")
		if err := asciimap.RenderFloor(output, g, z); err != nil {
			return err
		}
	}
	return nil
}

func loadFile(path string) (string, *grid.Grid, error) {
	var doc *levelio.Document
	var err error
	if filepath.Ext(path) == ".zst" {
		_, doc, err = levelio.ReadSnapshot(path)
	} else {
		doc, err = levelio.LoadYAML(path)
	}
	if err != nil {
		return "", nil, err
	}

	g, err := doc.Grid()
	if err != nil {
		return "", nil, err
	}
	title := fmt.Sprintf("Level Map (Seed: %d, %d placements, %d pruned)",
		doc.Seed, len(doc.Placements), doc.Stats.Pruned)
	if !doc.SavedAt.IsZero() {
		title += "\nGenerated: " + doc.SavedAt.Format("2006-01-02 15:04:05")
	}
	return title, g, nil
}

func loadStored(dbFile, ref string) (string, *grid.Grid, error) {
	if ref == "" {
		return "", nil, errors.New("-level is required with -db")
	}
	s, err := store.Open(dbFile)
	if err != nil {
		return "", nil, err
	}
	defer s.Close()

	ctx := context.Background()
	lvl, err := s.LoadLevel(ctx, ref)
	if errors.Is(err, store.ErrLevelNotFound) {
		lvl, err = s.LoadLevelByName(ctx, ref)
	}
	if err != nil {
		return "", nil, err
	}

	title := fmt.Sprintf("Level Map (Seed: %d, %d placements, %d pruned)", lvl.Seed, lvl.Placements, lvl.Pruned)
	title += "\nStored: " + lvl.CreatedAt.Format("2006-01-02 15:04:05")
	if lvl.Name != "" {
		title += " as " + lvl.Name
	}
	return title, lvl.Grid, nil
}
