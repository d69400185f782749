package hotspot

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by the typed errors below through errors.Is.
var (
	ErrEmptyInput        = errors.New("hotspot: empty input")
	ErrDegenerateInput   = errors.New("hotspot: degenerate input")
	ErrSmoothingFailure  = errors.New("hotspot: smoothing failure")
	ErrThresholdNotFound = errors.New("hotspot: threshold not found")
)

// EmptyInputError reports that no observations were supplied.
type EmptyInputError struct{}

func (*EmptyInputError) Error() string {
	return "hotspot: crfd transform: observation collection is empty"
}

func (*EmptyInputError) Is(target error) bool { return target == ErrEmptyInput }

// DegenerateInputError reports that values cannot be normalized: the maximum
// value is zero or negative, or a value is NaN or infinite.
type DegenerateInputError struct {
	// MaxValue is the maximum observed value (or the offending value when
	// NonFinite is set).
	MaxValue float64

	// Index is the observation that holds MaxValue.
	Index int

	NonFinite bool
}

func (e *DegenerateInputError) Error() string {
	if e.NonFinite {
		return fmt.Sprintf("hotspot: crfd transform: observation %d has non-finite value %g", e.Index, e.MaxValue)
	}
	return fmt.Sprintf("hotspot: crfd transform: maximum value %g (observation %d) must be > 0", e.MaxValue, e.Index)
}

func (*DegenerateInputError) Is(target error) bool { return target == ErrDegenerateInput }

// SmoothingFailureError reports that no admissible span could be fitted, or
// that the fit at the selected span could not be evaluated on the grid.
type SmoothingFailureError struct {
	N       int
	SpanMin float64
	SpanMax float64
	Reason  string
}

func (e *SmoothingFailureError) Error() string {
	return fmt.Sprintf("hotspot: smoother: no admissible span in [%g, %g] for %d points: %s",
		e.SpanMin, e.SpanMax, e.N, e.Reason)
}

func (*SmoothingFailureError) Is(target error) bool { return target == ErrSmoothingFailure }

// ThresholdNotFoundError reports that no scanned grid point reached slope 1.
type ThresholdNotFoundError struct {
	// Scanned is the number of interior grid points examined.
	Scanned int

	// MaxSlope is the steepest slope seen and MaxSlopeX where it was seen.
	MaxSlope  float64
	MaxSlopeX float64
}

func (e *ThresholdNotFoundError) Error() string {
	return fmt.Sprintf("hotspot: threshold finder: no slope >= 1 among %d grid points (max slope %g at x=%g)",
		e.Scanned, e.MaxSlope, e.MaxSlopeX)
}

func (*ThresholdNotFoundError) Is(target error) bool { return target == ErrThresholdNotFound }
