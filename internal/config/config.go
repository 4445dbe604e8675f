// Package config loads render-tool settings from JSON with CLI-flag
// overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Config holds configurable paths and render settings.
type Config struct {
	// Paths
	MaterialDirs []string `json:"material_dirs"`
	OutputDir    string   `json:"output_dir"`

	// Render settings
	PreviewSize int `json:"preview_size"`
	Supersample int `json:"supersample"`
	Workers     int `json:"workers"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	MaterialDir string
	OutputDir   string
	Size        int
	Workers     int
}

// Resolve fills in empty fields with defaults. CLI flags take priority
// when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.MaterialDir != "" {
		c.MaterialDirs = []string{flags.MaterialDir}
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Size > 0 {
		c.PreviewSize = flags.Size
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if len(c.MaterialDirs) == 0 {
		// Conventional loose-texture location next to the tool.
		if cwd, err := os.Getwd(); err == nil {
			c.MaterialDirs = []string{filepath.Join(cwd, "textures")}
		}
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.PreviewSize <= 0 {
		c.PreviewSize = 512
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}
