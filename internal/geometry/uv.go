package geometry

import (
	"map220-scene/internal/mapdoc"
	"map220-scene/internal/mathutil"
)

// TexCoord computes the texture coordinate of a world-space (metric)
// point under the face's projection basis. The axis directions carry a
// folded 1/UnitsPerMetre from parsing; the squared constant here undoes
// it against metric points, reproducing the editor's alignment exactly.
func TexCoord(point mathutil.Vec3, face *mapdoc.Face, texWidth, texHeight int) [2]float64 {
	const k2 = mathutil.UnitsPerMetre * mathutil.UnitsPerMetre

	uAxis := face.UAxis.XYZ().Scale(k2 / face.Scale[0])
	vAxis := face.VAxis.XYZ().Scale(k2 / face.Scale[1])

	u := (point.Dot(uAxis) + face.UAxis[3]) / float64(texWidth)
	v := (point.Dot(vAxis) + face.VAxis[3]) / float64(texHeight)
	return [2]float64{u, v}
}
