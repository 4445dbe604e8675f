package geometry

import (
	"map220-scene/internal/mapdoc"
	"map220-scene/internal/material"
	"map220-scene/internal/mathutil"
)

// ResolvePivot returns the effective pivot of a brush entity in metres.
// The world entity pivots at the origin. An entity with origin-helper
// faces pivots at the average centroid of those faces' defining points
// (raw plane-definition points, independent of winding construction);
// anything else falls back to the centre of the entity's bounding box,
// so call it after the geometry pass.
func ResolvePivot(ent *mapdoc.Entity, isWorld bool) mathutil.Vec3 {
	if isWorld {
		return mathutil.Vec3{}
	}

	var sum mathutil.Vec3
	n := 0
	for i := range ent.Brushes {
		for j := range ent.Brushes[i].Faces {
			f := &ent.Brushes[i].Faces[j]
			if !material.IsOrigin(f.MaterialName) {
				continue
			}
			c := f.PlanePoints[0].
				Add(f.PlanePoints[1]).
				Add(f.PlanePoints[2]).
				Scale(1.0 / 3)
			sum = sum.Add(c)
			n++
		}
	}
	if n > 0 {
		return sum.Scale(1 / float64(n)).Scale(1 / mathutil.UnitsPerMetre)
	}
	return ent.Bounds.Centre()
}
