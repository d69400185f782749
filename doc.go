// Package hotspot identifies hotspots, regions of elevated value in a
// spatially distributed variable, with the cumulative relative frequency
// distribution (CRFD) method of Bartolino et al. (2011).
//
// The method normalizes every observed value by the maximum value, builds
// the curve of "fraction of observations strictly below" against the
// normalized value, smooths that curve with a locally weighted regression
// whose span is chosen by AICc (or GCV), and takes the first point, scanning
// from x=1 toward x=0, where the smoothed curve's slope reaches 1. Every
// observation at or above that x is a hotspot member.
//
// Basic usage:
//
//	cfg := hotspot.DefaultConfig()
//	result, err := hotspot.Detect(observations, cfg)
//	// result.Hotspots[i].IsHotspot reports membership for observations[i]
//	// result.Threshold.XStar is the tangent threshold on the normalized scale
//	// result.Curve holds the evaluation grid and the smoothed samples
//
// The stages are exported so callers can run them one at a time:
//
//	points, err := hotspot.Transform(observations)
//	grid, err := hotspot.NewGrid(cfg.GridResolution)
//	curve, err := hotspot.Smooth(points, grid, cfg)
//	threshold, err := hotspot.FindThreshold(curve.Grid, curve.Samples)
//	results := hotspot.Classify(observations, points, threshold)
//
// # Span selection
//
// By default (Config.UserSpan == 0) the smoothing span is selected from
// [Config.SpanMin, Config.SpanMax] by minimizing the bias-corrected Akaike
// information criterion. Set Config.Criterion to CriterionGCV to minimize
// generalized cross-validation instead, or set Config.UserSpan to fix the
// span and skip the search entirely.
package hotspot
