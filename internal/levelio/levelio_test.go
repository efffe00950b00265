package levelio

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/lawnchairsociety/towerhouse/internal/config"
	"github.com/lawnchairsociety/towerhouse/internal/decorator"
	"github.com/lawnchairsociety/towerhouse/internal/generator"
)

func sampleDocument(t *testing.T, seed int64) (*generator.Level, *Document) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Generation.Seed = seed
	gen, err := generator.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	level, err := gen.Generate()
	if err != nil {
		t.Fatal(err)
	}

	d := decorator.New(level.Grid, cfg.Scale)
	placements := append(d.Structure(), d.Decorations(decorator.DecorationRand(seed), 0.2, 0.3)...)
	return level, NewDocument(level, placements)
}

func TestDocumentGrid(t *testing.T) {
	level, doc := sampleDocument(t, 12)

	g, err := doc.Grid()
	if err != nil {
		t.Fatal(err)
	}
	if !g.Equal(level.Grid) {
		t.Error("document grid differs from the generated grid")
	}

	back, err := doc.Level()
	if err != nil {
		t.Fatal(err)
	}
	if back.Seed != level.Seed || back.Start != level.Start || back.Zones != level.Zones {
		t.Errorf("Level() = seed %d start %s zones %+v", back.Seed, back.Start, back.Zones)
	}

	doc.Version = 7
	if _, err := doc.Grid(); !errors.Is(err, ErrVersion) {
		t.Errorf("Grid() with version 7 = %v, want ErrVersion", err)
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	_, doc := sampleDocument(t, 31)
	path := filepath.Join(t.TempDir(), "out", "level.yaml")

	if err := SaveYAML(doc, path); err != nil {
		t.Fatal(err)
	}
	back, err := LoadYAML(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(doc, back); diff != "" {
		t.Errorf("YAML round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadYAMLErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadYAML(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("version: [1"), 0644)
	if _, err := LoadYAML(bad); err == nil {
		t.Error("expected error for malformed YAML")
	}

	old := filepath.Join(dir, "old.yaml")
	os.WriteFile(old, []byte("version: 0\nseed: 4\n"), 0644)
	if _, err := LoadYAML(old); !errors.Is(err, ErrVersion) {
		t.Errorf("LoadYAML(old) = %v, want ErrVersion", err)
	}

	kind := filepath.Join(dir, "kind.yaml")
	os.WriteFile(kind, []byte("version: 1\nplacements:\n  - kind: teapot\n"), 0644)
	if _, err := LoadYAML(kind); err == nil {
		t.Error("expected error for unknown placement kind")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	_, doc := sampleDocument(t, 64)
	path := filepath.Join(t.TempDir(), "level.zst")

	if err := WriteSnapshot(path, doc); err != nil {
		t.Fatal(err)
	}
	h, back, err := ReadSnapshot(path)
	if err != nil {
		t.Fatal(err)
	}

	want := Header{Version: Version, Seed: doc.Seed, Size: "12x12x3", Placements: len(doc.Placements)}
	if h != want {
		t.Errorf("header = %+v, want %+v", h, want)
	}
	if diff := cmp.Diff(doc, back); diff != "" {
		t.Errorf("snapshot round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeSnapshotErrors(t *testing.T) {
	if _, _, err := DecodeSnapshot(bytes.NewReader([]byte("not zstd"))); err == nil {
		t.Error("expected error for a stream that is not zstd")
	}

	_, doc := sampleDocument(t, 3)
	var buf bytes.Buffer
	if err := EncodeSnapshot(&buf, doc); err != nil {
		t.Fatal(err)
	}
	truncated := buf.Bytes()[:buf.Len()/2]
	if _, _, err := DecodeSnapshot(bytes.NewReader(truncated)); err == nil {
		t.Error("expected error for a truncated snapshot")
	}
}

func TestDocumentMatchesSchema(t *testing.T) {
	schema, err := jsonschema.Compile(filepath.Join("..", "..", "schemas", "level.schema.json"))
	if err != nil {
		t.Fatalf("compile schema: %v", err)
	}

	for _, seed := range []int64{1, 99} {
		_, doc := sampleDocument(t, seed)
		raw, err := json.Marshal(doc)
		if err != nil {
			t.Fatal(err)
		}
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			t.Fatal(err)
		}
		if err := schema.Validate(v); err != nil {
			t.Errorf("seed %d: %v", seed, err)
		}
	}

	var bad any
	json.Unmarshal([]byte(`{"version":1,"seed":1,"size":{"width":0,"depth":1,"floors":1}}`), &bad)
	if err := schema.Validate(bad); err == nil {
		t.Error("schema accepted a document with no floors")
	}
}
