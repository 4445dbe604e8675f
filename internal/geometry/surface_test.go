package geometry

import (
	"testing"

	"map220-scene/internal/material"
)

type fakeResolver struct {
	rec   *material.Record
	calls int
}

func (f *fakeResolver) Resolve(name string) *material.Record {
	f.calls++
	return f.rec
}

func TestCollateSentinelExcluded(t *testing.T) {
	doc := parseCube(t, "NULL")
	b := &Builder{Workers: 1}
	if skipped := b.BuildDocument(doc); skipped != 0 {
		t.Fatalf("skipped = %d", skipped)
	}

	c := NewCollator(nil)
	c.AddDocument(doc)
	if got := c.Surfaces(); len(got) != 0 {
		t.Errorf("surfaces = %d, want 0 for sentinel material", len(got))
	}
}

func TestCollateCube(t *testing.T) {
	doc := parseCube(t, "BRICK")
	res := &fakeResolver{rec: &material.Record{Name: "BRICK", Width: 64, Height: 64}}
	b := &Builder{Workers: 1, Materials: res}
	b.BuildDocument(doc)

	c := NewCollator(res)
	c.AddDocument(doc)
	surfaces := c.Surfaces()
	if len(surfaces) != 1 {
		t.Fatalf("surfaces = %d, want 1 (single material)", len(surfaces))
	}

	s := surfaces[0]
	if s.Material != res.rec {
		t.Error("surface does not reference the resolved record")
	}
	if len(s.Vertices) != 24 {
		t.Errorf("vertices = %d, want 24", len(s.Vertices))
	}
	if len(s.Indices) != 36 {
		t.Errorf("indices = %d, want 36", len(s.Indices))
	}

	// Triangle fan from vertex 0 of each 4-vertex winding.
	wantFan := []uint32{0, 1, 2, 0, 2, 3}
	for i, want := range wantFan {
		if s.Indices[i] != want {
			t.Errorf("index %d = %d, want %d", i, s.Indices[i], want)
		}
	}
	if s.Indices[6] != 4 {
		t.Errorf("second face fan starts at %d, want 4", s.Indices[6])
	}

	// Vertex normals carry the owning face's plane normal.
	top := &doc.Entities[0].Brushes[0].Faces[0]
	for i := 0; i < 4; i++ {
		if s.Vertices[i].Normal != top.Plane.Normal {
			t.Errorf("vertex %d normal = %v, want %v", i, s.Vertices[i].Normal, top.Plane.Normal)
		}
	}
}

func TestCollateSkipsEmptyWindings(t *testing.T) {
	doc := parseCube(t, "BRICK")
	// Geometry pass never ran: no windings, nothing to collate.
	c := NewCollator(nil)
	c.AddDocument(doc)
	if got := c.Surfaces(); len(got) != 0 {
		t.Errorf("surfaces = %d, want 0 without windings", len(got))
	}
}

func TestCollateGroupsByMaterial(t *testing.T) {
	doc := parseCube(t, "BRICK")
	res := &fakeResolver{rec: &material.Record{Name: "BRICK", Width: 64, Height: 64}}
	b := &Builder{Workers: 1, Materials: res}
	b.BuildDocument(doc)

	// Retag half the faces with a second material.
	faces := doc.Entities[0].Brushes[0].Faces
	for i := 3; i < 6; i++ {
		faces[i].MaterialName = "STONE"
	}

	c := NewCollator(res)
	c.AddDocument(doc)
	surfaces := c.Surfaces()
	if len(surfaces) != 2 {
		t.Fatalf("surfaces = %d, want 2", len(surfaces))
	}
	if len(surfaces[0].Vertices) != 12 || len(surfaces[1].Vertices) != 12 {
		t.Errorf("vertex split = %d/%d, want 12/12",
			len(surfaces[0].Vertices), len(surfaces[1].Vertices))
	}
}
