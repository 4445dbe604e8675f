package mathutil

// DegenerateEpsilon rejects planes built from (near-)collinear points:
// the unnormalized cross product must be at least this long.
const DegenerateEpsilon = 1e-6

// Plane is a half-space boundary: Normal·p == Dist for points on the plane.
// Normal is unit length; points with positive signed distance are in front.
type Plane struct {
	Normal Vec3
	Dist   float64
}

// PlaneFromPoints derives a plane from three points wound counter-clockwise
// when viewed from the front side. Returns false if the points are collinear.
func PlaneFromPoints(p1, p2, p3 Vec3) (Plane, bool) {
	cross := p2.Sub(p1).Cross(p3.Sub(p1))
	if cross.Len() < DegenerateEpsilon {
		return Plane{}, false
	}
	n := cross.Normalize()
	return Plane{Normal: n, Dist: n.Dot(p1)}, true
}

// DistanceTo returns the signed distance from p to the plane.
func (pl Plane) DistanceTo(p Vec3) float64 {
	return pl.Normal.Dot(p) - pl.Dist
}

// Project returns the closest point to p lying exactly on the plane.
func (pl Plane) Project(p Vec3) Vec3 {
	return p.Sub(pl.Normal.Scale(pl.DistanceTo(p)))
}
