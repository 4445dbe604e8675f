package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"

	"map220-scene/internal/config"
	"map220-scene/internal/geometry"
	"map220-scene/internal/mapdoc"
	"map220-scene/internal/material"
	"map220-scene/internal/preview"
)

// manifestEntry describes one collated surface in the output manifest.
type manifestEntry struct {
	Material  string `json:"material"`
	Missing   bool   `json:"missing,omitempty"`
	Vertices  int    `json:"vertices"`
	Triangles int    `json:"triangles"`
}

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	materialDir := flag.String("materials", "", "Texture search directory")
	outputDir := flag.String("output", "", "Output directory (default: current)")
	size := flag.Int("size", 0, "Preview side length in pixels (default: 512)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <file.map>\n", os.Args[0])
		os.Exit(2)
	}
	mapPath := flag.Arg(0)

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{
		MaterialDir: *materialDir,
		OutputDir:   *outputDir,
		Size:        *size,
		Workers:     *workers,
	})

	raw, err := os.ReadFile(mapPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()

	doc, perr := mapdoc.Parse(string(raw))
	if perr != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (continuing with partial document)\n", perr)
	}

	texIndex := material.BuildIndex(cfg.MaterialDirs...)
	texCache := material.NewCache(texIndex)
	fmt.Printf("Textures: %d indexed\n", texIndex.Len())

	builder := &geometry.Builder{Materials: texCache, Workers: cfg.Workers}
	skipped := builder.BuildDocument(doc)

	collator := geometry.NewCollator(texCache)
	collator.AddDocument(doc)
	surfaces := collator.Surfaces()

	fmt.Printf("Entities: %d, Brushes: %d (skipped %d), Surfaces: %d\n",
		len(doc.Entities), doc.BrushCount(), skipped, len(surfaces))

	stem := strings.TrimSuffix(filepath.Base(mapPath), filepath.Ext(mapPath))
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	img := preview.Render(doc, preview.Options{
		Size:        cfg.PreviewSize,
		Supersample: cfg.Supersample,
	})
	outPath := filepath.Join(cfg.OutputDir, stem+".webp")
	f, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := nativewebp.Encode(f, img, nil); err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "Error: WebP encode: %v\n", err)
		os.Exit(1)
	}
	f.Close()
	fmt.Printf("Preview: %s\n", outPath)

	entries := make([]manifestEntry, 0, len(surfaces))
	for _, s := range surfaces {
		e := manifestEntry{Vertices: len(s.Vertices), Triangles: len(s.Indices) / 3}
		if s.Material != nil {
			e.Material = s.Material.Name
			e.Missing = s.Material.Missing
		}
		entries = append(entries, e)
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err == nil {
		manifestPath := filepath.Join(cfg.OutputDir, stem+"_surfaces.json")
		if werr := os.WriteFile(manifestPath, data, 0644); werr != nil {
			fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", werr)
		} else {
			fmt.Printf("Manifest: %s\n", manifestPath)
		}
	}

	fmt.Printf("Done in %.1fs\n", time.Since(start).Seconds())
	if perr != nil {
		os.Exit(1)
	}
}
