package hotspot

import (
	"fmt"
	"math"
)

// TangentSlope is the slope at which the smoothed curve becomes a hotspot
// boundary (the 45° tangent on the normalized CRFD axes).
const TangentSlope = 1.0

// FindThreshold scans the curve sampled on grid for the tangent point.
//
// samples[p] must be the curve evaluated at grid.X[p]. Interior positions
// p = 2 .. len-2 are visited in grid order (x from 1 toward 0), and the
// centered slope (y[p+1]-y[p-1]) / (x[p+1]-x[p-1]) is computed from the grid
// neighbors. The first position whose slope is >= 1 is returned; later,
// possibly steeper, positions are never considered.
//
// Returns a *ThresholdNotFoundError if no scanned position reaches slope 1.
func FindThreshold(grid Grid, samples []CurveSample) (Threshold, error) {
	if len(samples) != grid.Len() {
		return Threshold{}, fmt.Errorf("hotspot: threshold finder: %d samples for a %d-point grid",
			len(samples), grid.Len())
	}

	x := grid.X
	maxSlope, maxSlopeX := math.Inf(-1), math.NaN()
	scanned := 0
	for p := 2; p < len(x)-1; p++ {
		scanned++
		slope := (samples[p+1].Y - samples[p-1].Y) / (x[p+1] - x[p-1])
		if slope >= TangentSlope {
			return Threshold{
				XStar:    x[p],
				YStar:    samples[p].Y,
				Position: p,
				Slope:    slope,
			}, nil
		}
		if slope > maxSlope {
			maxSlope, maxSlopeX = slope, x[p]
		}
	}

	return Threshold{}, &ThresholdNotFoundError{Scanned: scanned, MaxSlope: maxSlope, MaxSlopeX: maxSlopeX}
}
