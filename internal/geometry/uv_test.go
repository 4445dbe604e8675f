package geometry

import (
	"math"
	"testing"

	"map220-scene/internal/mapdoc"
	"map220-scene/internal/mathutil"
)

func TestTexCoord(t *testing.T) {
	const k = mathutil.UnitsPerMetre

	// As the parser emits for "[ 1 0 0 8 ] [ 0 -1 0 16 ]".
	face := &mapdoc.Face{
		UAxis: mathutil.Vec4{1 / k, 0, 0, 8},
		VAxis: mathutil.Vec4{0, -1 / k, 0, 16},
		Scale: [2]float64{1, 1},
	}
	point := mathutil.Vec3{64 / k, 32 / k, 0}

	uv := TexCoord(point, face, 64, 32)
	if math.Abs(uv[0]-1.125) > 1e-9 {
		t.Errorf("u = %v, want 1.125", uv[0])
	}
	if math.Abs(uv[1]-(-0.5)) > 1e-9 {
		t.Errorf("v = %v, want -0.5", uv[1])
	}
}

func TestTexCoordScale(t *testing.T) {
	const k = mathutil.UnitsPerMetre

	face := &mapdoc.Face{
		UAxis: mathutil.Vec4{1 / k, 0, 0, 8},
		VAxis: mathutil.Vec4{0, -1 / k, 0, 0},
		Scale: [2]float64{2, 0.5},
	}
	point := mathutil.Vec3{64 / k, 32 / k, 0}

	uv := TexCoord(point, face, 64, 64)
	// Doubling the scale halves the texel rate: (64/2 + 8) / 64.
	if math.Abs(uv[0]-0.625) > 1e-9 {
		t.Errorf("u = %v, want 0.625", uv[0])
	}
	// Halving it doubles: (-32/0.5) / 64.
	if math.Abs(uv[1]-(-1)) > 1e-9 {
		t.Errorf("v = %v, want -1", uv[1])
	}
}
