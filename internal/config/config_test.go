package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{
		"material_dirs": ["/data/textures", "/data/more"],
		"output_dir": "/tmp/out",
		"preview_size": 1024,
		"workers": 3
	}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.MaterialDirs) != 2 || cfg.MaterialDirs[0] != "/data/textures" {
		t.Errorf("MaterialDirs = %v", cfg.MaterialDirs)
	}
	if cfg.OutputDir != "/tmp/out" || cfg.PreviewSize != 1024 || cfg.Workers != 3 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("missing file accepted")
	}
}

func TestLoadBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("malformed JSON accepted")
	}
}

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{})
	if cfg.OutputDir != "." {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	if cfg.PreviewSize != 512 || cfg.Supersample != 2 {
		t.Errorf("render defaults = %d/%d", cfg.PreviewSize, cfg.Supersample)
	}
	if cfg.Workers != runtime.NumCPU() {
		t.Errorf("Workers = %d", cfg.Workers)
	}
	if len(cfg.MaterialDirs) != 1 {
		t.Errorf("MaterialDirs = %v", cfg.MaterialDirs)
	}
}

func TestResolveFlagsOverride(t *testing.T) {
	cfg := Config{
		MaterialDirs: []string{"/from/file"},
		OutputDir:    "/file/out",
		PreviewSize:  256,
		Workers:      2,
	}
	cfg.Resolve(Flags{MaterialDir: "/from/flag", Size: 128, Workers: 5})
	if len(cfg.MaterialDirs) != 1 || cfg.MaterialDirs[0] != "/from/flag" {
		t.Errorf("MaterialDirs = %v", cfg.MaterialDirs)
	}
	if cfg.OutputDir != "/file/out" {
		t.Errorf("OutputDir = %q, flag was empty", cfg.OutputDir)
	}
	if cfg.PreviewSize != 128 || cfg.Workers != 5 {
		t.Errorf("cfg = %+v", cfg)
	}
}
