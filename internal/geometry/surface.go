package geometry

import (
	"strings"

	"map220-scene/internal/mapdoc"
	"map220-scene/internal/material"
	"map220-scene/internal/mathutil"
)

// Vertex is one corner of a render surface.
type Vertex struct {
	Position mathutil.Vec3
	Normal   mathutil.Vec3
	UV       [2]float64
}

// Surface is the per-material hand-off record for external mesh and
// collision builders: an ordered vertex list plus triangle indices,
// fanned from each winding's first vertex.
type Surface struct {
	Material *material.Record
	Vertices []Vertex
	Indices  []uint32
}

// Collator groups finished face windings by material.
type Collator struct {
	// Materials resolves faces the geometry pass left unresolved.
	Materials material.Resolver

	surfaces map[string]*Surface
	order    []string
}

// NewCollator returns a collator resolving materials through res.
func NewCollator(res material.Resolver) *Collator {
	return &Collator{Materials: res, surfaces: make(map[string]*Surface)}
}

// AddFace appends one face's winding to its material's surface. Faces
// with sentinel materials or windings below three vertices produce no
// output.
func (c *Collator) AddFace(face *mapdoc.Face) {
	if len(face.Winding) < 3 || material.IsSentinel(face.MaterialName) {
		return
	}

	rec := face.Material
	if rec == nil && c.Materials != nil {
		rec = c.Materials.Resolve(face.MaterialName)
	}

	key := strings.ToLower(face.MaterialName)
	surf, ok := c.surfaces[key]
	if !ok {
		surf = &Surface{Material: rec}
		c.surfaces[key] = surf
		c.order = append(c.order, key)
	}

	texW, texH := 1, 1
	if rec != nil {
		texW, texH = rec.Width, rec.Height
	}

	base := uint32(len(surf.Vertices))
	for _, pt := range face.Winding {
		surf.Vertices = append(surf.Vertices, Vertex{
			Position: pt,
			Normal:   face.Plane.Normal,
			UV:       TexCoord(pt, face, texW, texH),
		})
	}
	for i := 2; i < len(face.Winding); i++ {
		surf.Indices = append(surf.Indices, base, base+uint32(i-1), base+uint32(i))
	}
}

// AddEntity collates every face of the entity's brushes.
func (c *Collator) AddEntity(ent *mapdoc.Entity) {
	for i := range ent.Brushes {
		for j := range ent.Brushes[i].Faces {
			c.AddFace(&ent.Brushes[i].Faces[j])
		}
	}
}

// AddDocument collates every face of every entity.
func (c *Collator) AddDocument(doc *mapdoc.Document) {
	for i := range doc.Entities {
		c.AddEntity(&doc.Entities[i])
	}
}

// Surfaces returns the collated surfaces in first-seen material order.
func (c *Collator) Surfaces() []*Surface {
	out := make([]*Surface, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, c.surfaces[k])
	}
	return out
}
