// Package mapdoc models a parsed Valve 220 map: entities owning brushes
// owning faces, plus free-form key/value pairs per entity.
package mapdoc

import (
	"map220-scene/internal/material"
	"map220-scene/internal/mathutil"
)

// UnknownClassname is assigned to entities missing the "classname" key.
const UnknownClassname = "unknown"

// Face is one bounding plane of a brush plus its texture projection.
// Winding and Material are populated by the geometry pass, not the
// parser; PlanePoints and Plane stay in map units throughout.
type Face struct {
	PlanePoints [3]mathutil.Vec3
	Plane       mathutil.Plane

	MaterialName string

	// Projection basis: direction in the first three components (stored
	// metric, see the parser), offset in texels in the fourth.
	UAxis mathutil.Vec4
	VAxis mathutil.Vec4

	Rotation float64
	Scale    [2]float64

	Winding  mathutil.Winding
	Material *material.Record
}

// Brush is a convex solid: the intersection of its faces' half-spaces.
// Face order is declaration order, significant because clipping iterates
// faces by index.
type Brush struct {
	Faces  []Face
	Centre mathutil.Vec3
	Bounds mathutil.Box
}

// Entity owns key/value pairs and zero or more brushes. Keys are unique;
// Centre is derived from the "origin" key when present.
type Entity struct {
	Classname string
	Pairs     map[string]string
	Brushes   []Brush
	Centre    mathutil.Vec3
	Bounds    mathutil.Box
}

// Document is a parsed map: entities in declaration order. The first
// entity is conventionally the world geometry.
type Document struct {
	Title       string
	Description string
	Entities    []Entity
}

// Worldspawn returns the first entity, or nil for an empty document.
func (d *Document) Worldspawn() *Entity {
	if len(d.Entities) == 0 {
		return nil
	}
	return &d.Entities[0]
}

// BrushCount returns the total number of brushes across all entities.
func (d *Document) BrushCount() int {
	n := 0
	for i := range d.Entities {
		n += len(d.Entities[i].Brushes)
	}
	return n
}

// FaceCount returns the total number of faces across all brushes.
func (d *Document) FaceCount() int {
	n := 0
	for i := range d.Entities {
		for j := range d.Entities[i].Brushes {
			n += len(d.Entities[i].Brushes[j].Faces)
		}
	}
	return n
}
