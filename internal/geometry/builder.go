// Package geometry reconstructs renderable windings from parsed brush
// planes and collates them into per-material surfaces.
package geometry

import (
	"fmt"
	"log"
	"runtime"
	"sync"
	"sync/atomic"

	"map220-scene/internal/mapdoc"
	"map220-scene/internal/material"
	"map220-scene/internal/mathutil"
)

// Builder populates face windings, resolves materials, and converts the
// document into metric coordinates.
type Builder struct {
	// Materials resolves face material names. Optional; when nil, faces
	// keep a nil material record.
	Materials material.Resolver

	// Workers bounds the parallel per-brush pass. Defaults to NumCPU.
	Workers int

	// Warnf receives per-brush build warnings; it must be safe for
	// concurrent use. Defaults to log.Printf.
	Warnf func(format string, args ...any)
}

func (b *Builder) warnf(format string, args ...any) {
	if b.Warnf != nil {
		b.Warnf(format, args...)
		return
	}
	log.Printf(format, args...)
}

// BuildDocument builds geometry for every brush in the document using a
// worker pool. Each brush reads and writes only its own faces, so the
// pass runs in parallel with no shared mutable state. Invalid brushes
// are skipped with a warning rather than aborting the document; the
// return value is the number skipped.
func (b *Builder) BuildDocument(doc *mapdoc.Document) int {
	var brushes []*mapdoc.Brush
	for i := range doc.Entities {
		ent := &doc.Entities[i]
		for j := range ent.Brushes {
			brushes = append(brushes, &ent.Brushes[j])
		}
	}

	workers := b.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var skipped atomic.Int64
	work := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range work {
				if err := b.BuildBrush(brushes[idx]); err != nil {
					b.warnf("geometry: brush %d skipped: %v", idx, err)
					skipped.Add(1)
				}
			}
		}()
	}
	for i := range brushes {
		work <- i
	}
	close(work)
	wg.Wait()

	// Entity bounds and centres move into metres with their brushes.
	for i := range doc.Entities {
		ent := &doc.Entities[i]
		if len(ent.Brushes) > 0 {
			box := ent.Brushes[0].Bounds
			for _, br := range ent.Brushes[1:] {
				box = box.Union(br.Bounds)
			}
			ent.Bounds = box
		}
		ent.Centre = ent.Centre.Scale(1 / mathutil.UnitsPerMetre)
	}

	return int(skipped.Load())
}

// BuildBrush reconstructs the winding of every face of the brush by
// clipping a large seed polygon against every other face's plane in
// declaration order, keeping the interior fragment. The result is
// snapped to the weld grid and converted to metres. A face whose winding
// collapses below three vertices is excluded from output (nil winding),
// not an error.
func (b *Builder) BuildBrush(brush *mapdoc.Brush) error {
	if len(brush.Faces) == 0 {
		return fmt.Errorf("geometry: brush has no faces")
	}

	for i := range brush.Faces {
		face := &brush.Faces[i]

		// Seed in the face plane, recentred on the face's own defining
		// points so the clip arithmetic stays near the brush instead of
		// the world origin.
		centroid := face.PlanePoints[0].
			Add(face.PlanePoints[1]).
			Add(face.PlanePoints[2]).
			Scale(1.0 / 3)
		org := face.Plane.Normal.Scale(face.Plane.Dist)
		w := mathutil.BaseWinding(face.Plane).Translate(centroid.Sub(org))

		for j := range brush.Faces {
			if j == i {
				continue
			}
			w = w.ClipBack(brush.Faces[j].Plane)
			if len(w) == 0 {
				break
			}
		}

		if len(w) < 3 {
			face.Winding = nil
		} else {
			w.Snap()
			for k := range w {
				w[k] = w[k].Scale(1 / mathutil.UnitsPerMetre)
			}
			face.Winding = w
		}

		if b.Materials != nil && !material.IsSentinel(face.MaterialName) {
			face.Material = b.Materials.Resolve(face.MaterialName)
		}
	}

	brush.Bounds = brush.Bounds.Scale(1 / mathutil.UnitsPerMetre)
	brush.Centre = brush.Bounds.Centre()
	return nil
}
