package hotspot

import (
	"fmt"
	"math"
	"runtime"
)

// Config controls hotspot detection.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// Criterion is the model-selection score minimized when choosing the
	// smoothing span. "aicc" (bias-corrected AIC) or "gcv" (generalized
	// cross-validation). Default: "aicc".
	Criterion Criterion

	// UserSpan fixes the smoothing span and skips the automatic search.
	// 0 means automatic selection. Must be >= 0. Default: 0.
	UserSpan float64

	// GridResolution is the step of the evaluation grid over [0, 1].
	// Must be in [1e-6, 1/3]. Default: 0.001 (1001 points).
	GridResolution float64

	// Degree is the local polynomial degree of the smoother: 0 (weighted
	// moving average), 1 or 2. Default: 0.
	Degree int

	// SpanMin and SpanMax bound the automatic span search.
	// Must satisfy 0 < SpanMin <= SpanMax. Defaults: 0.05 and 0.95.
	SpanMin float64
	SpanMax float64

	// SpanCandidates is how many neighborhood sizes the span search fits
	// before switching from an exhaustive scan to a coarse scan with
	// golden-section refinement. Must be >= 3. Default: 32.
	SpanCandidates int

	// Workers controls the number of goroutines used for the local fits.
	// Results do not depend on it. 0 means use runtime.NumCPU().
	// Default: 0 (auto).
	Workers int
}

// Result contains the output of hotspot detection.
type Result struct {
	// Hotspots holds one classified entry per input observation, in input
	// order.
	Hotspots []HotspotResult

	// Points is the CRFD transform of the input, in input order.
	Points []CRFDPoint

	// Curve is the smoothed CRFD curve with its grid and fit diagnostics.
	Curve *Curve

	// Threshold is the tangent point used to classify the observations.
	Threshold Threshold

	// Extent summarizes the location of the hotspot members.
	Extent Extent
}

// HotspotCount returns the number of observations flagged as hotspots.
func (r *Result) HotspotCount() int {
	count := 0
	for _, h := range r.Hotspots {
		if h.IsHotspot {
			count++
		}
	}
	return count
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		Criterion:      CriterionAICc,
		GridResolution: DefaultGridResolution,
		SpanMin:        0.05,
		SpanMax:        0.95,
		SpanCandidates: 32,
	}
}

// validateConfig checks that cfg fields are valid and returns a descriptive error if not.
func validateConfig(cfg *Config) error {
	if _, err := ParseCriterion(string(cfg.Criterion)); err != nil {
		return err
	}
	if cfg.UserSpan < 0 || math.IsNaN(cfg.UserSpan) || math.IsInf(cfg.UserSpan, 0) {
		return fmt.Errorf("hotspot: UserSpan must be >= 0 (0 means automatic), got %g", cfg.UserSpan)
	}
	if err := checkGridResolution(cfg.GridResolution); err != nil {
		return err
	}
	if cfg.Degree < 0 || cfg.Degree > 2 {
		return fmt.Errorf("hotspot: Degree must be 0, 1 or 2, got %d", cfg.Degree)
	}
	if !(cfg.SpanMin > 0) {
		return fmt.Errorf("hotspot: SpanMin must be > 0, got %g", cfg.SpanMin)
	}
	if !(cfg.SpanMax >= cfg.SpanMin) || math.IsInf(cfg.SpanMax, 0) {
		return fmt.Errorf("hotspot: SpanMax must be finite and >= SpanMin (%g), got %g", cfg.SpanMin, cfg.SpanMax)
	}
	if cfg.SpanCandidates < 3 {
		return fmt.Errorf("hotspot: SpanCandidates must be >= 3, got %d", cfg.SpanCandidates)
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("hotspot: Workers must be >= 0 (0 means runtime.NumCPU()), got %d", cfg.Workers)
	}
	return nil
}

// Validate reports whether cfg would be accepted by Detect. Zero fields are
// checked as their defaults.
func (cfg Config) Validate() error {
	applyDefaults(&cfg)
	return validateConfig(&cfg)
}

// applyDefaults fills in zero-valued config fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.Criterion == "" {
		cfg.Criterion = CriterionAICc
	}
	if cfg.GridResolution == 0 {
		cfg.GridResolution = DefaultGridResolution
	}
	if cfg.SpanMin == 0 {
		cfg.SpanMin = 0.05
	}
	if cfg.SpanMax == 0 {
		cfg.SpanMax = 0.95
	}
	if cfg.SpanCandidates == 0 {
		cfg.SpanCandidates = 32
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
}

// Detect runs the full pipeline on obs: CRFD transform, adaptive smoothing,
// tangent threshold search and classification. Either every observation is
// classified or an error is returned; errors from the stages are the typed
// errors of this package (EmptyInputError, DegenerateInputError,
// SmoothingFailureError, ThresholdNotFoundError).
func Detect(obs []Observation, cfg Config) (*Result, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	points, err := Transform(obs)
	if err != nil {
		return nil, err
	}

	grid, err := NewGrid(cfg.GridResolution)
	if err != nil {
		return nil, err
	}

	curve, err := Smooth(points, grid, cfg)
	if err != nil {
		return nil, err
	}

	threshold, err := FindThreshold(curve.Grid, curve.Samples)
	if err != nil {
		return nil, err
	}

	hotspots := Classify(obs, points, threshold)
	return &Result{
		Hotspots:  hotspots,
		Points:    points,
		Curve:     curve,
		Threshold: threshold,
		Extent:    ComputeExtent(hotspots),
	}, nil
}
