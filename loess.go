package hotspot

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// maxLocalCond bounds the condition number of a local normal-equation system
// before the local fit is treated as singular.
const maxLocalCond = 1e12

var (
	errSpanTooSmall  = errors.New("span covers fewer points than the local polynomial needs")
	errSingularLocal = errors.New("local weighted least-squares system is singular")
)

// LoessFit is a locally weighted polynomial regression of y on x at a fixed
// span. Fitted values and hat-matrix diagnostics are computed at every data
// point when the fit is built; Predict evaluates the same local regression at
// arbitrary x.
type LoessFit struct {
	// Span is the fraction of the data in each local neighborhood.
	Span float64

	// Degree is the local polynomial degree (0 = weighted moving average).
	Degree int

	// Q is the neighborhood size derived from Span.
	Q int

	// Fitted holds the fitted value for each input point, in input order.
	Fitted []float64

	// TraceHat is the trace of the smoother (hat) matrix, the equivalent
	// number of parameters.
	TraceHat float64

	// RSS is the residual sum of squares and Sigma2 = RSS/(n-1).
	RSS    float64
	Sigma2 float64

	// xs and ys hold the data sorted by x.
	xs, ys []float64

	workers int
}

// FitLoess fits a locally weighted regression of the given degree (0, 1 or 2)
// with tricube weights over the nearest floor(n*span) points.
// Returns a *SmoothingFailureError if the span is too small for the degree or
// a local system is singular.
func FitLoess(x, y []float64, span float64, degree int) (*LoessFit, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("hotspot: loess: x has %d values but y has %d", len(x), len(y))
	}
	if len(x) == 0 {
		return nil, &EmptyInputError{}
	}
	if degree < 0 || degree > 2 {
		return nil, fmt.Errorf("hotspot: loess: degree must be 0, 1 or 2, got %d", degree)
	}
	if span <= 0 {
		return nil, fmt.Errorf("hotspot: loess: span must be > 0, got %g", span)
	}

	s := newSortedPairs(x, y)
	fit, err := s.fit(span, degree, 1)
	if err != nil {
		return nil, &SmoothingFailureError{N: len(x), SpanMin: span, SpanMax: span, Reason: err.Error()}
	}
	return fit, nil
}

// Predict evaluates the local regression at x0.
func (f *LoessFit) Predict(x0 float64) (float64, error) {
	lf := newLocalFitter(f.Degree, f.Q)
	v, _, err := lf.fitAt(f.xs, f.ys, x0, f.Span, -1)
	return v, err
}

// PredictAll evaluates the local regression at every value of xs, in order.
func (f *LoessFit) PredictAll(xs []float64) ([]float64, error) {
	out := make([]float64, len(xs))
	errs := make([]error, len(xs))
	parallelRange(len(xs), f.workers, func(start, end int) {
		lf := newLocalFitter(f.Degree, f.Q)
		for i := start; i < end; i++ {
			out[i], _, errs[i] = lf.fitAt(f.xs, f.ys, xs[i], f.Span, -1)
		}
	})
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("at x=%g: %w", xs[i], err)
		}
	}
	return out, nil
}

// sortedPairs is the regression data sorted by x, with order mapping each
// sorted position back to its input position.
type sortedPairs struct {
	xs, ys []float64
	order  []int
}

func newSortedPairs(x, y []float64) *sortedPairs {
	order := make([]int, len(x))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return x[order[a]] < x[order[b]] })

	s := &sortedPairs{
		xs:    make([]float64, len(x)),
		ys:    make([]float64, len(y)),
		order: order,
	}
	for i, idx := range order {
		s.xs[i] = x[idx]
		s.ys[i] = y[idx]
	}
	return s
}

// fit builds a LoessFit at the given span, spreading the per-point local fits
// over numWorkers goroutines. Each point's fit is independent and the sums
// are accumulated in a fixed order, so the result does not depend on
// numWorkers.
func (s *sortedPairs) fit(span float64, degree, numWorkers int) (*LoessFit, error) {
	n := len(s.xs)
	q := NeighborhoodSize(n, span)
	if q < degree+1 {
		return nil, errSpanTooSmall
	}

	fitted := make([]float64, n)
	hat := make([]float64, n)
	errs := make([]error, n)
	parallelRange(n, numWorkers, func(start, end int) {
		lf := newLocalFitter(degree, q)
		for i := start; i < end; i++ {
			fitted[i], hat[i], errs[i] = lf.fitAt(s.xs, s.ys, s.xs[i], span, i)
		}
	})
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	var trace, rss float64
	out := make([]float64, n)
	for i := range fitted {
		trace += hat[i]
		r := s.ys[i] - fitted[i]
		rss += r * r
		out[s.order[i]] = fitted[i]
	}

	sigma2 := 0.0
	if n > 1 {
		sigma2 = rss / float64(n-1)
	}

	return &LoessFit{
		Span:     span,
		Degree:   degree,
		Q:        q,
		Fitted:   out,
		TraceHat: trace,
		RSS:      rss,
		Sigma2:   sigma2,
		xs:       s.xs,
		ys:       s.ys,
		workers:  numWorkers,
	}, nil
}

// localFitter holds scratch space for repeated local fits. It is not safe
// for concurrent use; each goroutine gets its own.
type localFitter struct {
	degree int
	q      int
	w      []float64
	xtwx   *mat.SymDense
	xtwy   *mat.VecDense
	e0     *mat.VecDense
	v      *mat.VecDense
	chol   mat.Cholesky
}

func newLocalFitter(degree, q int) *localFitter {
	lf := &localFitter{degree: degree, q: q}
	if degree > 0 {
		p := degree + 1
		lf.xtwx = mat.NewSymDense(p, nil)
		lf.xtwy = mat.NewVecDense(p, nil)
		lf.e0 = mat.NewVecDense(p, nil)
		lf.e0.SetVec(0, 1)
		lf.v = mat.NewVecDense(p, nil)
	}
	return lf
}

// fitAt evaluates the local regression at x0 over sorted xs/ys. When self is
// a valid index into xs, the diagonal hat-matrix entry for that point is
// returned as well.
func (lf *localFitter) fitAt(xs, ys []float64, x0, span float64, self int) (value, hat float64, err error) {
	lo, hi, h := Neighborhood(xs, x0, lf.q)
	if span > 1 {
		h *= span
	}

	if cap(lf.w) < hi-lo {
		lf.w = make([]float64, hi-lo)
	}
	w := lf.w[:hi-lo]
	tricubeWeights(w, xs[lo:hi], x0, h)

	if lf.degree == 0 {
		value = stat.Mean(ys[lo:hi], w)
		if self >= lo && self < hi {
			hat = w[self-lo] / floats.Sum(w)
		}
		return value, hat, nil
	}

	return lf.polyAt(xs[lo:hi], ys[lo:hi], w, x0, h, self-lo)
}

// polyAt solves the weighted normal equations of a local polynomial centered
// at x0. Offsets are scaled by the bandwidth to keep the system well
// conditioned; the intercept, which is the fitted value, is unaffected.
func (lf *localFitter) polyAt(xs, ys, w []float64, x0, h float64, self int) (value, hat float64, err error) {
	p := lf.degree + 1
	scale := h
	if scale <= 0 {
		scale = 1
	}

	var moments [5]float64
	var ymoments [3]float64
	for i, x := range xs {
		if w[i] == 0 {
			continue
		}
		t := (x - x0) / scale
		pow := w[i]
		for k := 0; k < 2*p-1; k++ {
			moments[k] += pow
			if k < p {
				ymoments[k] += pow * ys[i]
			}
			pow *= t
		}
	}

	for r := 0; r < p; r++ {
		for c := r; c < p; c++ {
			lf.xtwx.SetSym(r, c, moments[r+c])
		}
		lf.xtwy.SetVec(r, ymoments[r])
	}

	if ok := lf.chol.Factorize(lf.xtwx); !ok || lf.chol.Cond() > maxLocalCond {
		return 0, 0, errSingularLocal
	}
	// v = (XᵀWX)⁻¹e₀; the intercept is v·XᵀWy and, since the centered design
	// row of x0 itself is e₀, the hat diagonal is w_self·v₀.
	if err := lf.chol.SolveVecTo(lf.v, lf.e0); err != nil {
		return 0, 0, errSingularLocal
	}
	value = mat.Dot(lf.v, lf.xtwy)
	if self >= 0 && self < len(xs) && xs[self] == x0 {
		hat = w[self] * lf.v.AtVec(0)
	}
	return value, hat, nil
}
