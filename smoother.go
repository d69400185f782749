package hotspot

// Curve is the smoothed CRFD curve evaluated on an explicit grid, together
// with the fit diagnostics of the selected span.
type Curve struct {
	Grid    Grid
	Samples []CurveSample

	// Span is the selected (or user-fixed) smoothing span.
	Span   float64
	Degree int

	Criterion Criterion

	// Score is the criterion value at Span. It is +Inf when a user-fixed span
	// leaves the criterion undefined.
	Score float64

	TraceHat float64
	Sigma2   float64

	// SpansEvaluated counts the fits made by the span search (1 for a
	// user-fixed span).
	SpansEvaluated int
}

// Smooth fits a locally weighted regression to the CRFD scatter and evaluates
// it on grid. The span comes from cfg.UserSpan when it is set and from the
// cfg.Criterion search over [cfg.SpanMin, cfg.SpanMax] otherwise.
//
// Returns a *SmoothingFailureError if no admissible span exists or the fit
// cannot be evaluated on the grid.
func Smooth(points []CRFDPoint, grid Grid, cfg Config) (*Curve, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, &EmptyInputError{}
	}

	x := make([]float64, len(points))
	y := make([]float64, len(points))
	for i, p := range points {
		x[i] = p.X
		y[i] = p.Y
	}

	var (
		fit       *LoessFit
		score     float64
		evaluated int
	)
	if cfg.UserSpan > 0 {
		data := newSortedPairs(x, y)
		f, err := data.fit(cfg.UserSpan, cfg.Degree, cfg.Workers)
		if err != nil {
			return nil, &SmoothingFailureError{
				N: len(points), SpanMin: cfg.UserSpan, SpanMax: cfg.UserSpan, Reason: err.Error(),
			}
		}
		fit, evaluated = f, 1
		score, _ = cfg.Criterion.ScoreFit(f)
	} else {
		sel, err := SelectSpan(x, y, SpanConfig{
			Criterion:  cfg.Criterion,
			Degree:     cfg.Degree,
			SpanMin:    cfg.SpanMin,
			SpanMax:    cfg.SpanMax,
			Candidates: cfg.SpanCandidates,
			Workers:    cfg.Workers,
		})
		if err != nil {
			return nil, err
		}
		fit, score, evaluated = sel.Fit, sel.Score, sel.Evaluated
	}

	ys, err := fit.PredictAll(grid.X)
	if err != nil {
		return nil, &SmoothingFailureError{
			N: len(points), SpanMin: fit.Span, SpanMax: fit.Span, Reason: "grid evaluation: " + err.Error(),
		}
	}

	samples := make([]CurveSample, grid.Len())
	for i, gx := range grid.X {
		samples[i] = CurveSample{X: gx, Y: ys[i]}
	}

	return &Curve{
		Grid:           grid,
		Samples:        samples,
		Span:           fit.Span,
		Degree:         fit.Degree,
		Criterion:      cfg.Criterion,
		Score:          score,
		TraceHat:       fit.TraceHat,
		Sigma2:         fit.Sigma2,
		SpansEvaluated: evaluated,
	}, nil
}
