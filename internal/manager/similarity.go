package manager

import (
	"gonum.org/v1/gonum/blas/blas32"
)

// cosine returns the cosine similarity of a and b, or 0 when either is a zero
// vector or the lengths differ. b may alias engine memory; it is only read.
func cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	va := blas32.Vector{N: len(a), Data: a, Inc: 1}
	vb := blas32.Vector{N: len(b), Data: b, Inc: 1}
	na, nb := blas32.Nrm2(va), blas32.Nrm2(vb)
	if na == 0 || nb == 0 {
		return 0
	}
	return float64(blas32.Dot(va, vb)) / (float64(na) * float64(nb))
}
