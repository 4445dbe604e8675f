package mathutil

import "math"

const (
	// OnEpsilon is the band, in map units, within which a vertex counts
	// as lying on a splitting plane.
	OnEpsilon = 0.01

	// BaseWindingRadius is the half-extent of the seed polygon that face
	// windings are clipped from. Larger than any realistic level.
	BaseWindingRadius = 65536.0

	// SnapGrid welds clipped vertices to a fixed grid so adjacent
	// brushes meet without coplanar micro-gaps.
	SnapGrid = 1.0 / 128
)

// Winding is an ordered, planar, convex polygon. Vertices run
// counter-clockwise when viewed from the front side of the owning plane.
type Winding []Vec3

// BaseWinding returns a large square lying exactly in pl, centred on the
// projection of the origin onto the plane.
func BaseWinding(pl Plane) Winding {
	// Pick the axis the normal is least aligned with.
	axis := 0
	smallest := math.Abs(pl.Normal[0])
	for i := 1; i < 3; i++ {
		if a := math.Abs(pl.Normal[i]); a < smallest {
			smallest = a
			axis = i
		}
	}
	var up Vec3
	up[axis] = 1
	up = up.Sub(pl.Normal.Scale(up.Dot(pl.Normal))).Normalize()
	right := up.Cross(pl.Normal)

	org := pl.Normal.Scale(pl.Dist)
	up = up.Scale(BaseWindingRadius)
	right = right.Scale(BaseWindingRadius)

	return Winding{
		org.Sub(right).Sub(up),
		org.Add(right).Sub(up),
		org.Add(right).Add(up),
		org.Sub(right).Add(up),
	}
}

// Translate returns w shifted by delta.
func (w Winding) Translate(delta Vec3) Winding {
	out := make(Winding, len(w))
	for i, p := range w {
		out[i] = p.Add(delta)
	}
	return out
}

// Centroid returns the average of the winding's vertices.
func (w Winding) Centroid() Vec3 {
	var c Vec3
	if len(w) == 0 {
		return c
	}
	for _, p := range w {
		c = c.Add(p)
	}
	return c.Scale(1 / float64(len(w)))
}

const (
	sideFront = iota
	sideBack
	sideOn
)

// Split divides w by pl into the fragment in front of the plane and the
// fragment behind it. A winding entirely on one side comes back as that
// fragment with no interpolation; a winding coplanar with pl yields two
// nil fragments. Vertices within OnEpsilon of the plane are shared by
// both fragments and never emitted twice into either.
func (w Winding) Split(pl Plane) (front, back Winding) {
	n := len(w)
	if n == 0 {
		return nil, nil
	}

	dists := make([]float64, n+1)
	sides := make([]int, n+1)
	var counts [3]int
	for i, p := range w {
		d := pl.DistanceTo(p)
		dists[i] = d
		switch {
		case d > OnEpsilon:
			sides[i] = sideFront
		case d < -OnEpsilon:
			sides[i] = sideBack
		default:
			sides[i] = sideOn
		}
		counts[sides[i]]++
	}
	dists[n] = dists[0]
	sides[n] = sides[0]

	if counts[sideFront] == 0 && counts[sideBack] == 0 {
		return nil, nil
	}
	if counts[sideFront] == 0 {
		return nil, w
	}
	if counts[sideBack] == 0 {
		return w, nil
	}

	for i, p := range w {
		switch sides[i] {
		case sideOn:
			front = append(front, p)
			back = append(back, p)
			continue
		case sideFront:
			front = append(front, p)
		case sideBack:
			back = append(back, p)
		}
		if next := sides[i+1]; next == sideOn || next == sides[i] {
			continue
		}
		// Edge crosses the plane: interpolate the zero-crossing.
		q := w[(i+1)%n]
		t := dists[i] / (dists[i] - dists[i+1])
		mid := p.Add(q.Sub(p).Scale(t))
		front = append(front, mid)
		back = append(back, mid)
	}
	return front, back
}

// ClipBack keeps the fragment of w behind pl. A winding entirely behind
// the plane, or coplanar with it, is returned unchanged; one entirely in
// front clips to nil.
func (w Winding) ClipBack(pl Plane) Winding {
	hasFront, hasBack := false, false
	for _, p := range w {
		d := pl.DistanceTo(p)
		if d > OnEpsilon {
			hasFront = true
		} else if d < -OnEpsilon {
			hasBack = true
		}
	}
	if !hasFront {
		return w
	}
	if !hasBack {
		return nil
	}
	_, back := w.Split(pl)
	return back
}

// Snap welds every vertex to the SnapGrid in place.
func (w Winding) Snap() {
	for i := range w {
		for j := 0; j < 3; j++ {
			w[i][j] = math.Round(w[i][j]/SnapGrid) * SnapGrid
		}
	}
}
