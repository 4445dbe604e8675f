package mathutil

// Box is an axis-aligned bounding box.
type Box struct {
	Min Vec3
	Max Vec3
}

// BoxAt returns a degenerate box containing only p.
func BoxAt(p Vec3) Box {
	return Box{Min: p, Max: p}
}

// Expand grows the box to contain p.
func (b Box) Expand(p Vec3) Box {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
	return b
}

// Union returns the smallest box containing both boxes.
func (b Box) Union(o Box) Box {
	return b.Expand(o.Min).Expand(o.Max)
}

// Centre returns the midpoint of the box.
func (b Box) Centre() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Scale multiplies both corners by s.
func (b Box) Scale(s float64) Box {
	return Box{Min: b.Min.Scale(s), Max: b.Max.Scale(s)}
}
