// Package config loads the application configuration from a YAML file and
// fills in defaults for anything the file omits.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the file format for worldloom.yaml.
type Config struct {
	// DataDir holds the sqlite database and exported files.
	DataDir string `yaml:"data_dir"`
	// AssetsDir holds map background images; the editor watches it for
	// changes.
	AssetsDir string `yaml:"assets_dir"`
	// LogLevel is a zerolog level name (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	Editor EditorConfig `yaml:"editor"`
}

// EditorConfig tunes the map editor window and interaction.
type EditorConfig struct {
	WindowWidth  int `yaml:"window_width"`
	WindowHeight int `yaml:"window_height"`
	// GridCellSize is the on-screen size of one grid cell at zoom 1.
	GridCellSize int `yaml:"grid_cell_size"`
	// MarkerHitRadius is the marker pick radius in screen pixels.
	MarkerHitRadius float64 `yaml:"marker_hit_radius"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		DataDir:   "data",
		AssetsDir: "assets",
		LogLevel:  "info",
		Editor: EditorConfig{
			WindowWidth:     1500,
			WindowHeight:    900,
			GridCellSize:    32,
			MarkerHitRadius: 8,
		},
	}
}

// Load reads the config file at path. A missing file yields the defaults;
// a present but invalid file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	if c.Editor.WindowWidth <= 0 || c.Editor.WindowHeight <= 0 {
		return fmt.Errorf("editor window size must be positive")
	}
	if c.Editor.GridCellSize <= 0 {
		return fmt.Errorf("grid_cell_size must be positive")
	}
	if c.Editor.MarkerHitRadius <= 0 {
		return fmt.Errorf("marker_hit_radius must be positive")
	}
	return nil
}

// DatabasePath is the sqlite file inside the data directory.
func (c Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "worldloom.db")
}
