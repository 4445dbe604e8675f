// Package material resolves material names to texture-backed records,
// cached so repeated references share one instance.
package material

import (
	"image"
	"image/color"
	"path"
	"strings"
)

// Record is a resolved material: a name plus the decoded backing texture.
// Missing marks records that fell back to the placeholder.
type Record struct {
	Name    string
	Width   int
	Height  int
	Image   *image.NRGBA
	Missing bool
}

// placeholderSize is the side length of the generated fallback texture.
const placeholderSize = 64

// Placeholder returns a deterministic magenta/black checkerboard record
// for a material whose backing texture cannot be found.
func Placeholder(name string) *Record {
	img := image.NewNRGBA(image.Rect(0, 0, placeholderSize, placeholderSize))
	magenta := color.NRGBA{R: 255, B: 255, A: 255}
	black := color.NRGBA{A: 255}
	for y := 0; y < placeholderSize; y++ {
		for x := 0; x < placeholderSize; x++ {
			c := magenta
			if (x/8+y/8)%2 == 0 {
				c = black
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return &Record{
		Name:    name,
		Width:   placeholderSize,
		Height:  placeholderSize,
		Image:   img,
		Missing: true,
	}
}

func baseStem(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	return strings.ToLower(strings.TrimSuffix(base, path.Ext(base)))
}

// IsSentinel reports whether a material name marks a helper face (null,
// skip, origin) that never produces a visible surface.
func IsSentinel(name string) bool {
	stem := baseStem(name)
	return strings.HasSuffix(stem, "null") ||
		strings.HasSuffix(stem, "skip") ||
		strings.HasSuffix(stem, "origin")
}

// IsOrigin reports whether a material name tags an origin-helper face
// used for pivot resolution.
func IsOrigin(name string) bool {
	return strings.HasSuffix(baseStem(name), "origin")
}
