package hotspot

import (
	"errors"
	"math"
	"testing"
)

func crfdXY(t testing.TB, values []float64) (x, y []float64) {
	t.Helper()
	points, err := Transform(observationsFromValues(values))
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	x = make([]float64, len(points))
	y = make([]float64, len(points))
	for i, p := range points {
		x[i], y[i] = p.X, p.Y
	}
	return x, y
}

func defaultSpanConfig(c Criterion) SpanConfig {
	return SpanConfig{Criterion: c, SpanMin: 0.05, SpanMax: 0.95, Candidates: 32, Workers: 1}
}

func TestSelectSpan_ReferenceScenario(t *testing.T) {
	x, y := crfdXY(t, []float64{1, 2, 3, 4, 100})

	for _, c := range []Criterion{CriterionAICc, CriterionGCV} {
		sel, err := SelectSpan(x, y, defaultSpanConfig(c))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", c, err)
		}
		// Only q=4 leaves AICc defined; GCV also prefers it over q=3.
		if !almostEqual(sel.Span, 0.8, floatTol) {
			t.Errorf("%s: span = %v, want 0.8", c, sel.Span)
		}
		if sel.Evaluated != 4 {
			t.Errorf("%s: evaluated %d spans, want 4", c, sel.Evaluated)
		}
		if sel.Fit == nil || sel.Fit.Q != 4 {
			t.Errorf("%s: expected the fit at q=4 to be returned", c)
		}
	}
}

func TestSelectSpan_LinearValues(t *testing.T) {
	values := make([]float64, 10)
	for i := range values {
		values[i] = float64(i + 1)
	}
	x, y := crfdXY(t, values)

	tests := []struct {
		criterion Criterion
		span      float64
		score     float64
	}{
		{CriterionAICc, 0.6, -1.417535168769267},
		{CriterionGCV, 0.4, 0.0003455055990921739},
	}
	for _, tt := range tests {
		sel, err := SelectSpan(x, y, defaultSpanConfig(tt.criterion))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.criterion, err)
		}
		if !almostEqual(sel.Span, tt.span, floatTol) {
			t.Errorf("%s: span = %v, want %v", tt.criterion, sel.Span, tt.span)
		}
		if !almostEqual(sel.Score, tt.score, 1e-9) {
			t.Errorf("%s: score = %v, want %v", tt.criterion, sel.Score, tt.score)
		}
	}
}

func TestSelectSpan_Deterministic(t *testing.T) {
	x, y := crfdXY(t, randomValues(500, 21))
	cfg := defaultSpanConfig(CriterionAICc)
	cfg.Workers = 4

	first, err := SelectSpan(x, y, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := SelectSpan(x, y, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Span != second.Span || first.Score != second.Score {
		t.Errorf("runs differ: (%v, %v) vs (%v, %v)", first.Span, first.Score, second.Span, second.Score)
	}
	if first.Span < cfg.SpanMin || first.Span > cfg.SpanMax {
		t.Errorf("span %v outside [%v, %v]", first.Span, cfg.SpanMin, cfg.SpanMax)
	}
}

func TestSelectSpan_CoarseToFineFindsExhaustiveMinimumRegion(t *testing.T) {
	x, y := crfdXY(t, randomValues(120, 4))

	exhaustive := defaultSpanConfig(CriterionGCV)
	exhaustive.Candidates = 1000
	full, err := SelectSpan(x, y, exhaustive)
	if err != nil {
		t.Fatalf("exhaustive: %v", err)
	}

	coarse := defaultSpanConfig(CriterionGCV)
	coarse.Candidates = 8
	fast, err := SelectSpan(x, y, coarse)
	if err != nil {
		t.Fatalf("coarse: %v", err)
	}

	if fast.Evaluated >= full.Evaluated {
		t.Errorf("coarse search fitted %d spans, exhaustive %d", fast.Evaluated, full.Evaluated)
	}
	// The refined search can stop in a local minimum, never below the
	// exhaustive one.
	if fast.Score < full.Score {
		t.Errorf("coarse score %v below exhaustive minimum %v", fast.Score, full.Score)
	}
}

func TestSelectSpan_PerfectFitWins(t *testing.T) {
	values := make([]float64, 10)
	for i := range values {
		values[i] = 5
	}
	x, y := crfdXY(t, values)

	sel, err := SelectSpan(x, y, defaultSpanConfig(CriterionAICc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsInf(sel.Score, -1) {
		t.Errorf("score = %v, want -Inf for a perfect fit", sel.Score)
	}
	// Every span ties; the smallest wins.
	if !almostEqual(sel.Span, 0.1, floatTol) {
		t.Errorf("span = %v, want 0.1", sel.Span)
	}
}

func TestSelectSpan_Failures(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		cfg    SpanConfig
	}{
		{"single point", []float64{3}, defaultSpanConfig(CriterionAICc)},
		{"two points aicc", []float64{1, 2}, defaultSpanConfig(CriterionAICc)},
		{"range below one point", []float64{1, 2, 3, 4}, SpanConfig{SpanMin: 0.01, SpanMax: 0.1, Candidates: 32}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := crfdXY(t, tt.values)
			_, err := SelectSpan(x, y, tt.cfg)
			if !errors.Is(err, ErrSmoothingFailure) {
				t.Fatalf("got %v, want ErrSmoothingFailure", err)
			}
			var sf *SmoothingFailureError
			if !errors.As(err, &sf) || sf.N != len(tt.values) {
				t.Errorf("expected *SmoothingFailureError with N=%d, got %#v", len(tt.values), err)
			}
		})
	}
}

func TestSelectSpan_Errors(t *testing.T) {
	if _, err := SelectSpan([]float64{1}, nil, defaultSpanConfig(CriterionAICc)); err == nil {
		t.Error("expected error for mismatched lengths")
	}
	if _, err := SelectSpan(nil, nil, defaultSpanConfig(CriterionAICc)); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("got %v, want ErrEmptyInput", err)
	}
}
