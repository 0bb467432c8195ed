// Package config loads the YAML configuration file and applies defaults.
// Flags override file values; the file overrides defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Image controls the normalization applied to every new photo.
type Image struct {
	// MaxSide bounds the longer side in pixels.
	MaxSide int `yaml:"max_side"`

	// Quality is the JPEG quality factor in (0, 1].
	Quality float64 `yaml:"quality"`

	// CropSquare center-crops photos to a square.
	CropSquare bool `yaml:"crop_square"`
}

// Config is the full configuration surface.
type Config struct {
	// DBPath locates the SQLite database.
	DBPath string `yaml:"db_path"`

	// UndoWindowSeconds bounds how long a delete stays undoable.
	UndoWindowSeconds int `yaml:"undo_window_seconds"`

	// DefaultSort is the sort mode used when none is given.
	DefaultSort string `yaml:"default_sort"`

	Image Image `yaml:"image"`
}

// Dir returns the application data directory (~/.wardrobe).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".wardrobe"
	}
	return filepath.Join(home, ".wardrobe")
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DBPath:            filepath.Join(Dir(), "wardrobe.db"),
		UndoWindowSeconds: 30,
		DefaultSort:       "created-desc",
		Image: Image{
			MaxSide: 1280,
			Quality: 0.82,
		},
	}
}

// Load reads the config file at path, overlaying it on the defaults.
// A missing file is not an error: the defaults apply unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if file.DBPath != "" {
		cfg.DBPath = file.DBPath
	}
	if file.UndoWindowSeconds > 0 {
		cfg.UndoWindowSeconds = file.UndoWindowSeconds
	}
	if file.DefaultSort != "" {
		cfg.DefaultSort = file.DefaultSort
	}
	if file.Image.MaxSide > 0 {
		cfg.Image.MaxSide = file.Image.MaxSide
	}
	if file.Image.Quality > 0 {
		cfg.Image.Quality = file.Image.Quality
	}
	if file.Image.CropSquare {
		cfg.Image.CropSquare = true
	}

	return cfg, nil
}
