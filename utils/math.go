package utils

import (
	"math"
)

// VolumePercent is part/(part+rest) as a percentage rounded to 2 places
func VolumePercent(part, rest int) float64 {
	return Round(float64(part)/float64(part+rest)*100, 2)
}

// Round rounds x to the given number of decimal places, ties to even
func Round(x float64, places int) float64 {
	scale := POW(10, places)
	return math.RoundToEven(x*scale) / scale
}

func POW(x float64, pp int) (y float64) {
	var (
		p       = pp
		flipped bool
	)
	if pp > 8 || pp < -8 {
		goto MATHPOW
	}

	if p < 0 {
		p = -pp
		flipped = true
	}
	switch p {
	case 0:
		y = 1
	case 1:
		y = x
	case 2:
		y = x * x
	case 3:
		y = x * x * x
	case 4:
		y = x * x
		y = y * y
	case 5:
		y = x * x
		y = y * y * x
	case 6:
		y = x * x
		y = y * y * y
	case 7:
		y = x * x
		y = y * y * y * x
	case 8:
		y = x * x
		y = y * y * y * y
	}
	if flipped {
		y = 1. / y
	}
	return

MATHPOW:
	y = math.Pow(x, float64(p))
	return
}
