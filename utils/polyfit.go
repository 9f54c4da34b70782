package utils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Vandermonde builds the [len(x), degree+1] matrix with columns x^0, x^1, ... x^degree
func Vandermonde(x []float64, degree int) (V *mat.Dense) {
	V = mat.NewDense(len(x), degree+1, nil)
	for i, xi := range x {
		for j := 0; j <= degree; j++ {
			V.Set(i, j, POW(xi, j))
		}
	}
	return
}

/*
PolyFit returns the least squares polynomial coefficients through (x, y), lowest power first:

	y = c[0] + c[1]*x + ... + c[degree]*x^degree

The overdetermined system V c = y is solved with a QR factorization of the Vandermonde
matrix rather than through the normal equations.
*/
func PolyFit(x, y []float64, degree int) (c []float64, err error) {
	if len(x) != len(y) {
		err = fmt.Errorf("mismatch in fit data: len(x) = %d, len(y) = %d", len(x), len(y))
		return
	}
	if degree < 0 || len(x) < degree+1 {
		err = fmt.Errorf("need at least %d points for a degree %d fit, have %d", degree+1, degree, len(x))
		return
	}
	var (
		V  = Vandermonde(x, degree)
		b  = mat.NewVecDense(len(y), y)
		cV = mat.NewVecDense(degree+1, nil)
		qr = new(mat.QR)
	)
	qr.Factorize(V)
	if err = qr.SolveVecTo(cV, false, b); err != nil {
		err = fmt.Errorf("could not solve QR: %w", err)
		return
	}
	c = VecGetF64(cV)
	if IsNonFinite(c) {
		err = fmt.Errorf("fit produced non-finite coefficients %v", c)
	}
	return
}

// PolyVal evaluates coefficients from PolyFit at x using Horner's scheme
func PolyVal(c []float64, x float64) (y float64) {
	for j := len(c) - 1; j >= 0; j-- {
		y = y*x + c[j]
	}
	return
}

// RMSResidual is sqrt(mean((y - p(x))^2)) for the polynomial c
func RMSResidual(c, x, y []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	r := make([]float64, len(x))
	for i, xi := range x {
		r[i] = y[i] - PolyVal(c, xi)
	}
	return floats.Norm(r, 2) / math.Sqrt(float64(len(r)))
}
