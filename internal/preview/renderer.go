// Package preview renders a top-down orthographic image of a built map
// document, for quick visual inspection of the compiled geometry.
package preview

import (
	"image"
	"math"

	"golang.org/x/image/draw"

	"map220-scene/internal/mapdoc"
	"map220-scene/internal/mathutil"
)

// Options control preview rendering.
type Options struct {
	Size        int // output side length, default 512
	Supersample int // render scale factor, default 2
}

// frameBuffer holds the render target as flat slices for cache locality.
type frameBuffer struct {
	size  int
	color []uint8   // RGBA interleaved, len = size*size*4
	zbuf  []float64 // depth per pixel, initialized to -inf
}

func newFrameBuffer(size int) *frameBuffer {
	n := size * size
	zb := make([]float64, n)
	for i := range zb {
		zb[i] = math.Inf(-1)
	}
	return &frameBuffer{size: size, color: make([]uint8, n*4), zbuf: zb}
}

// Render draws every built winding in the document viewed from above
// (down the Z axis onto the XY plane), flat-shaded by face normal, then
// downsamples the supersampled frame to the requested size.
func Render(doc *mapdoc.Document, opts Options) *image.NRGBA {
	size := opts.Size
	if size <= 0 {
		size = 512
	}
	ss := opts.Supersample
	if ss <= 0 {
		ss = 2
	}
	renderSize := size * ss

	bounds, ok := documentBounds(doc)
	if !ok {
		return image.NewNRGBA(image.Rect(0, 0, size, size))
	}
	extent := math.Max(bounds.Max[0]-bounds.Min[0], bounds.Max[1]-bounds.Min[1])
	if extent < 1e-9 {
		extent = 1
	}
	scale := float64(renderSize) * 0.92 / extent
	centre := bounds.Centre()
	half := float64(renderSize) / 2

	project := func(p mathutil.Vec3) (x, y, z float64) {
		x = (p[0]-centre[0])*scale + half
		y = half - (p[1]-centre[1])*scale
		z = p[2]
		return
	}

	fb := newFrameBuffer(renderSize)
	lightDir := mathutil.Vec3{0.4, 0.3, 0.87}.Normalize()

	for i := range doc.Entities {
		ent := &doc.Entities[i]
		for j := range ent.Brushes {
			for k := range ent.Brushes[j].Faces {
				face := &ent.Brushes[j].Faces[k]
				w := face.Winding
				if len(w) < 3 {
					continue
				}
				ndl := math.Abs(face.Plane.Normal.Dot(lightDir))
				shade := 0.35 + 0.65*ndl
				for t := 2; t < len(w); t++ {
					x0, y0, z0 := project(w[0])
					x1, y1, z1 := project(w[t-1])
					x2, y2, z2 := project(w[t])
					fillTriangle(fb, x0, y0, z0, x1, y1, z1, x2, y2, z2, shade)
				}
			}
		}
	}

	img := image.NewNRGBA(image.Rect(0, 0, renderSize, renderSize))
	copy(img.Pix, fb.color)
	if ss == 1 {
		return img
	}
	return downsample(img, size)
}

func documentBounds(doc *mapdoc.Document) (mathutil.Box, bool) {
	var box mathutil.Box
	seeded := false
	for i := range doc.Entities {
		ent := &doc.Entities[i]
		for j := range ent.Brushes {
			for k := range ent.Brushes[j].Faces {
				for _, p := range ent.Brushes[j].Faces[k].Winding {
					if !seeded {
						box = mathutil.BoxAt(p)
						seeded = true
						continue
					}
					box = box.Expand(p)
				}
			}
		}
	}
	return box, seeded
}

// fillTriangle rasterizes one flat-shaded triangle with a z-buffer.
// Hot path: no allocation in the pixel loop.
func fillTriangle(fb *frameBuffer, x0, y0, z0, x1, y1, z1, x2, y2, z2, shade float64) {
	size := fb.size

	minX := int(math.Min(math.Min(x0, x1), x2))
	maxX := int(math.Max(math.Max(x0, x1), x2)) + 1
	minY := int(math.Min(math.Min(y0, y1), y2))
	maxY := int(math.Max(math.Max(y0, y1), y2)) + 1
	if minX < 0 {
		minX = 0
	}
	if maxX >= size {
		maxX = size - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= size {
		maxY = size - 1
	}
	if minX >= maxX || minY >= maxY {
		return
	}

	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	cr := clamp255(200 * shade)
	cg := clamp255(205 * shade)
	cb := clamp255(215 * shade)

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) - y2
		rowOff := sy * size
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1
			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			z := w0*z0 + w1*z1 + w2*z2
			zIdx := rowOff + sx
			if z <= fb.zbuf[zIdx] {
				continue
			}
			fb.zbuf[zIdx] = z

			pxIdx := zIdx * 4
			fb.color[pxIdx] = cr
			fb.color[pxIdx+1] = cg
			fb.color[pxIdx+2] = cb
			fb.color[pxIdx+3] = 255
		}
	}
}

// downsample reduces the supersampled frame with CatmullRom filtering.
func downsample(img *image.NRGBA, target int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, target, target))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
