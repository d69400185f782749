package hotspot

import (
	"math"
	"sort"
)

// Neighborhood returns the local window of x0 over xs, which must be sorted
// ascending. h is the distance from x0 to its q-th nearest value; [lo, hi)
// covers every value within distance h, so ties on the boundary are all
// included. q is clamped to [1, len(xs)].
func Neighborhood(xs []float64, x0 float64, q int) (lo, hi int, h float64) {
	n := len(xs)
	q = min(q, n)
	q = max(q, 1)

	pos := sort.SearchFloat64s(xs, x0)
	lo, hi = pos, pos

	// Grow the window one nearest value at a time. Distances picked this way
	// never decrease, so the last one picked is the q-th nearest.
	for k := 0; k < q; k++ {
		switch {
		case lo == 0:
			h = xs[hi] - x0
			hi++
		case hi == n:
			h = x0 - xs[lo-1]
			lo--
		case x0-xs[lo-1] <= xs[hi]-x0:
			h = x0 - xs[lo-1]
			lo--
		default:
			h = xs[hi] - x0
			hi++
		}
	}

	for lo > 0 && x0-xs[lo-1] <= h {
		lo--
	}
	for hi < n && xs[hi]-x0 <= h {
		hi++
	}
	return lo, hi, h
}

// NeighborhoodSize is the number of nearest values a span covers out of n.
func NeighborhoodSize(n int, span float64) int {
	q := int(math.Floor(float64(n)*span + 1e-5))
	return min(q, n)
}

// tricubeWeights fills w with the tricube weights of xs[lo:hi] around x0 for
// bandwidth h. When h is zero every value in the window coincides with x0 and
// gets weight 1. When every weight is zero (all values sit exactly on the
// bandwidth boundary) they share equal weight.
func tricubeWeights(w, xs []float64, x0, h float64) {
	if h <= 0 {
		for i := range w {
			w[i] = 1
		}
		return
	}

	var sum float64
	for i, x := range xs {
		u := math.Abs(x-x0) / h
		if u >= 1 {
			w[i] = 0
			continue
		}
		t := 1 - u*u*u
		w[i] = t * t * t
		sum += w[i]
	}

	if sum == 0 {
		for i := range w {
			w[i] = 1
		}
	}
}
