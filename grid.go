package hotspot

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	// DefaultGridResolution is the reference evaluation step (1001 grid points).
	DefaultGridResolution = 0.001

	// MinGridResolution is the finest accepted step. Every grid point costs
	// one local fit, so it bounds a grid at about a million points.
	MinGridResolution = 1e-6

	// MaxGridResolution is the coarsest accepted step, leaving four grid
	// points and so one scannable position.
	MaxGridResolution = 1.0 / 3
)

// Grid is the set of normalized values at which the smoothed curve is
// evaluated. X runs from 1 down to 0; that order is also the order in which
// FindThreshold scans for the tangent point.
type Grid struct {
	X []float64

	// Resolution is the step between neighboring grid points. It is 1/m for
	// the integer m closest to 1/requested resolution.
	Resolution float64
}

// NewGrid builds a descending grid over [0, 1] with the given step.
// The step must lie in [MinGridResolution, MaxGridResolution].
func NewGrid(resolution float64) (Grid, error) {
	if err := checkGridResolution(resolution); err != nil {
		return Grid{}, err
	}

	m := int(math.Round(1 / resolution))
	x := floats.Span(make([]float64, m+1), 1, 0)
	return Grid{X: x, Resolution: 1 / float64(m)}, nil
}

func checkGridResolution(resolution float64) error {
	if !(resolution >= MinGridResolution) || resolution > MaxGridResolution {
		return fmt.Errorf("hotspot: GridResolution must be in [%g, 1/3], got %g", MinGridResolution, resolution)
	}
	return nil
}

// Len returns the number of grid points.
func (g Grid) Len() int { return len(g.X) }
