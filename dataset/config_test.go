package dataset

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "reviews.ndjson")
	if err := os.WriteFile(dataPath, []byte(reviews), 0o644); err != nil {
		t.Fatal(err)
	}

	cfgYAML := `
source:
  path: ` + dataPath + `
  columns: [user_id, rating]
  chunk_size: 2
  filter: 'row.rating >= 4.0'
`
	cfgPath := filepath.Join(dir, "job.yaml")
	if err := os.WriteFile(cfgPath, []byte(cfgYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromYAML(cfgPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Source.ChunkSize != 2 {
		t.Errorf("ChunkSize = %d, want 2", cfg.Source.ChunkSize)
	}
	if got, want := cfg.Source.Columns, []string{"user_id", "rating"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Columns = %v, want %v", got, want)
	}

	res, err := cfg.NewReader().Read(context.Background(), cfg.Path())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Frame.Len() != 2 {
		t.Errorf("Frame.Len() = %d, want 2 (ratings 5 and 4)", res.Frame.Len())
	}
	if got, want := res.Frame.Columns(), []string{"user_id", "rating"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Columns() = %v, want %v", got, want)
	}
}

func TestLoadFromJSON(t *testing.T) {
	cfgJSON := `{"source":{"path":"x.ndjson","chunk_size":100,"max_chunks":3}}`
	cfgPath := filepath.Join(t.TempDir(), "job.json")
	if err := os.WriteFile(cfgPath, []byte(cfgJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromJSON(cfgPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Source.Path != "x.ndjson" || cfg.Source.MaxChunks != 3 {
		t.Errorf("unexpected config: %+v", cfg.Source)
	}
}

func TestLoadFromYAML_MissingFile(t *testing.T) {
	if _, err := LoadFromYAML(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
