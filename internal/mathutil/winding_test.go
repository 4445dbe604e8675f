package mathutil

import (
	"math"
	"testing"
)

func mustPlane(t *testing.T, p1, p2, p3 Vec3) Plane {
	t.Helper()
	pl, ok := PlaneFromPoints(p1, p2, p3)
	if !ok {
		t.Fatalf("degenerate plane from %v %v %v", p1, p2, p3)
	}
	return pl
}

// square returns a unit-ish square in the z=0 plane, wound CCW about +Z.
func square(r float64) Winding {
	return Winding{
		Vec3{-r, -r, 0},
		Vec3{r, -r, 0},
		Vec3{r, r, 0},
		Vec3{-r, r, 0},
	}
}

func planeZ(dist float64) Plane {
	return Plane{Normal: Vec3{0, 0, 1}, Dist: dist}
}

func planeX(dist float64) Plane {
	return Plane{Normal: Vec3{1, 0, 0}, Dist: dist}
}

func TestBaseWinding(t *testing.T) {
	planes := []Plane{
		planeZ(64),
		planeX(-32),
		mustPlane(t, Vec3{1, 2, 3}, Vec3{5, -4, 2}, Vec3{-3, 7, 11}),
	}
	for _, pl := range planes {
		w := BaseWinding(pl)
		if len(w) != 4 {
			t.Fatalf("BaseWinding has %d vertices, want 4", len(w))
		}
		for _, p := range w {
			if d := pl.DistanceTo(p); math.Abs(d) > 1e-6 {
				t.Errorf("vertex %v is %v off the plane", p, d)
			}
		}
		// Winding orientation must agree with the plane normal.
		n := w[1].Sub(w[0]).Cross(w[2].Sub(w[0]))
		if n.Dot(pl.Normal) <= 0 {
			t.Errorf("winding wound against plane normal %v", pl.Normal)
		}
	}
}

func TestSplitEntirelyOneSide(t *testing.T) {
	w := square(10)

	front, back := w.Split(planeZ(-5))
	if len(front) != 4 || len(back) != 0 {
		t.Errorf("polygon in front: got front=%d back=%d, want 4/0", len(front), len(back))
	}

	front, back = w.Split(planeZ(5))
	if len(front) != 0 || len(back) != 4 {
		t.Errorf("polygon behind: got front=%d back=%d, want 0/4", len(front), len(back))
	}
}

func TestSplitCrossing(t *testing.T) {
	w := square(10)
	front, back := w.Split(planeX(0))
	if len(front) != 4 || len(back) != 4 {
		t.Fatalf("got front=%d back=%d, want 4/4", len(front), len(back))
	}
	for _, p := range front {
		if p[0] < -OnEpsilon {
			t.Errorf("front vertex %v behind the plane", p)
		}
	}
	for _, p := range back {
		if p[0] > OnEpsilon {
			t.Errorf("back vertex %v in front of the plane", p)
		}
	}
	// Interpolated crossings lie exactly on the plane.
	onPlane := 0
	for _, p := range front {
		if math.Abs(p[0]) <= 1e-9 {
			onPlane++
		}
	}
	if onPlane != 2 {
		t.Errorf("front fragment has %d on-plane vertices, want 2", onPlane)
	}
}

func TestSplitOnVertexNotDuplicated(t *testing.T) {
	w := Winding{
		Vec3{0, 0, 0},   // exactly on x=0
		Vec3{10, 0, 0},  // front
		Vec3{-10, 5, 0}, // back
	}
	front, back := w.Split(planeX(0))
	if len(front) != 3 || len(back) != 3 {
		t.Fatalf("got front=%d back=%d, want 3/3", len(front), len(back))
	}
	for _, frag := range []Winding{front, back} {
		seen := 0
		for _, p := range frag {
			if p == (Vec3{0, 0, 0}) {
				seen++
			}
		}
		if seen != 1 {
			t.Errorf("on-plane vertex emitted %d times in one fragment", seen)
		}
	}
}

func TestSplitCoplanar(t *testing.T) {
	front, back := square(10).Split(planeZ(0))
	if front != nil || back != nil {
		t.Errorf("coplanar split: got front=%d back=%d, want nil/nil", len(front), len(back))
	}
}

func TestClipBack(t *testing.T) {
	w := square(10)

	if got := w.ClipBack(planeZ(5)); len(got) != 4 {
		t.Errorf("kept side: %d vertices, want 4 unchanged", len(got))
	}
	if got := w.ClipBack(planeZ(-5)); len(got) != 0 {
		t.Errorf("discarded side: %d vertices, want 0", len(got))
	}
	// Coplanar clip is a no-op.
	if got := w.ClipBack(planeZ(0)); len(got) != 4 {
		t.Errorf("coplanar clip: %d vertices, want 4 unchanged", len(got))
	}
	if got := w.ClipBack(planeX(0)); len(got) != 4 {
		t.Errorf("crossing clip: %d vertices, want 4", len(got))
	}
}

func TestSnap(t *testing.T) {
	w := Winding{Vec3{1.004, -0.002, 0.51}}
	w.Snap()
	want := Vec3{1.0078125, 0, 0.5078125}
	if w[0] != want {
		t.Errorf("Snap = %v, want %v", w[0], want)
	}
}

func TestTranslateAndCentroid(t *testing.T) {
	w := square(2).Translate(Vec3{1, 1, 1})
	c := w.Centroid()
	want := Vec3{1, 1, 1}
	if c.Sub(want).Len() > 1e-9 {
		t.Errorf("Centroid = %v, want %v", c, want)
	}
}
