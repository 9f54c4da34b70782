package utils

import (
	"gonum.org/v1/gonum/floats"
)

// PaddedRange returns the min and max of v widened by frac of the span on each side
func PaddedRange(v []float64, frac float64) (vmin, vmax float64) {
	if len(v) == 0 {
		return 0, 1
	}
	vmin, vmax = floats.Min(v), floats.Max(v)
	pad := frac * (vmax - vmin)
	if pad == 0 {
		pad = 1
	}
	return vmin - pad, vmax + pad
}

// PolylineSegments joins consecutive (x, f) points into x1, y1, x2, y2 segment quads
func PolylineSegments(x, f []float64) (line []float32) {
	for i := 0; i+1 < len(x) && i+1 < len(f); i++ {
		line = append(line,
			float32(x[i]), float32(f[i]),
			float32(x[i+1]), float32(f[i+1]),
		)
	}
	return
}

// CrossHairSegments marks each (x, f) point with a cross of half width size, in chart units
func CrossHairSegments(x, f []float64, xSize, fSize float64) (line []float32) {
	for i := 0; i < len(x) && i < len(f); i++ {
		xx, ff := float32(x[i]), float32(f[i])
		dx, df := float32(xSize), float32(fSize)
		line = append(line,
			xx-dx, ff, xx+dx, ff,
			xx, ff-df, xx, ff+df,
		)
	}
	return
}
