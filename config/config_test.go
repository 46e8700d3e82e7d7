package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()
	if cfg != def {
		t.Fatalf("cfg = %+v, want defaults %+v", cfg, def)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "worldloom.yaml")
	doc := `
data_dir: /var/lib/worldloom
log_level: debug
editor:
  window_width: 1920
  window_height: 1080
  grid_cell_size: 64
  marker_hit_radius: 12
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != "/var/lib/worldloom" || cfg.LogLevel != "debug" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Editor.WindowWidth != 1920 || cfg.Editor.GridCellSize != 64 || cfg.Editor.MarkerHitRadius != 12 {
		t.Fatalf("editor cfg = %+v", cfg.Editor)
	}
	// untouched field keeps its default
	if cfg.AssetsDir != Default().AssetsDir {
		t.Fatalf("assets_dir = %q, want default", cfg.AssetsDir)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"bad_yaml", ":\n  - ["},
		{"empty_data_dir", "data_dir: \"\""},
		{"zero_cell_size", "editor:\n  grid_cell_size: 0"},
		{"negative_radius", "editor:\n  marker_hit_radius: -1"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "worldloom.yaml")
			if err := os.WriteFile(path, []byte(c.doc), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Fatalf("expected error for %s", c.name)
			}
		})
	}
}

func TestDatabasePath(t *testing.T) {
	cfg := Config{DataDir: "data"}
	if cfg.DatabasePath() != filepath.Join("data", "worldloom.db") {
		t.Fatalf("path = %q", cfg.DatabasePath())
	}
}
