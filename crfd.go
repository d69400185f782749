package hotspot

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Transform maps observations onto the cumulative relative frequency
// distribution. The result has one CRFDPoint per observation, in input order.
//
// X is value/max(value). Y is the fraction of observations whose X is
// strictly less than this point's X, so tied values share the same Y and do
// not count each other. Ranks come from a sorted copy of X (O(n log n)); the
// output is identical to TransformBrute.
func Transform(obs []Observation) ([]CRFDPoint, error) {
	xs, err := normalizeValues(obs)
	if err != nil {
		return nil, err
	}

	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	n := float64(len(xs))
	points := make([]CRFDPoint, len(xs))
	for i, x := range xs {
		// SearchFloat64s returns the first index holding a value >= x, which
		// is the count of values strictly below x.
		below := sort.SearchFloat64s(sorted, x)
		points[i] = CRFDPoint{X: x, Y: float64(below) / n, Index: i}
	}
	return points, nil
}

// TransformBrute is the O(n²) form of Transform: every point counts the
// points strictly below it directly.
func TransformBrute(obs []Observation) ([]CRFDPoint, error) {
	xs, err := normalizeValues(obs)
	if err != nil {
		return nil, err
	}

	n := float64(len(xs))
	points := make([]CRFDPoint, len(xs))
	for i, x := range xs {
		points[i] = CRFDPoint{X: x, Y: float64(countBelow(xs, x)) / n, Index: i}
	}
	return points, nil
}

// countBelow returns how many values in xs are strictly less than x.
func countBelow(xs []float64, x float64) int {
	below := 0
	for _, v := range xs {
		if v < x {
			below++
		}
	}
	return below
}

// normalizeValues validates obs and returns value/max(value) per observation.
func normalizeValues(obs []Observation) ([]float64, error) {
	if len(obs) == 0 {
		return nil, &EmptyInputError{}
	}

	values := make([]float64, len(obs))
	for i, o := range obs {
		if math.IsNaN(o.Value) || math.IsInf(o.Value, 0) {
			return nil, &DegenerateInputError{MaxValue: o.Value, Index: i, NonFinite: true}
		}
		values[i] = o.Value
	}

	maxIdx := floats.MaxIdx(values)
	maxValue := values[maxIdx]
	if maxValue <= 0 {
		return nil, &DegenerateInputError{MaxValue: maxValue, Index: maxIdx}
	}

	// Divide rather than scale by the reciprocal so the maximum maps to
	// exactly 1.
	for i := range values {
		values[i] /= maxValue
	}
	return values, nil
}
