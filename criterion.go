package hotspot

import (
	"fmt"
	"math"
)

// Criterion selects the model-selection score minimized by the span search.
type Criterion string

const (
	// CriterionAICc is the bias-corrected Akaike information criterion:
	// log(σ²) + 1 + 2·(2(tr+1))/(n-tr-2).
	CriterionAICc Criterion = "aicc"

	// CriterionGCV is generalized cross-validation: n·σ²/(n-tr)².
	CriterionGCV Criterion = "gcv"
)

// ParseCriterion resolves a case-sensitive criterion name. The empty string
// resolves to CriterionAICc.
func ParseCriterion(s string) (Criterion, error) {
	switch Criterion(s) {
	case "", CriterionAICc:
		return CriterionAICc, nil
	case CriterionGCV:
		return CriterionGCV, nil
	default:
		return "", fmt.Errorf("hotspot: criterion must be %q or %q, got %q", CriterionAICc, CriterionGCV, s)
	}
}

// Score evaluates the criterion for a fit over n points, where tr is the
// trace of the hat matrix. ok is false when the criterion is undefined
// (the effective degrees of freedom leave no room for error). A perfect fit
// (σ² = 0) scores -Inf under AICc and 0 under GCV.
func (c Criterion) Score(sigma2, tr float64, n int) (score float64, ok bool) {
	nf := float64(n)
	switch c {
	case CriterionGCV:
		den := nf - tr
		if den <= 0 {
			return math.Inf(1), false
		}
		return nf * sigma2 / (den * den), true
	default:
		den := nf - tr - 2
		if den <= 0 {
			return math.Inf(1), false
		}
		if sigma2 == 0 {
			return math.Inf(-1), true
		}
		return math.Log(sigma2) + 1 + 2*(2*(tr+1))/den, true
	}
}

// ScoreFit evaluates the criterion for a LoessFit.
func (c Criterion) ScoreFit(f *LoessFit) (float64, bool) {
	return c.Score(f.Sigma2, f.TraceHat, len(f.Fitted))
}
