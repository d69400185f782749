package hotspot

import (
	"fmt"
	"math"
)

// invPhi2 is 1/φ², the golden-section interior fraction.
var invPhi2 = (3 - math.Sqrt(5)) / 2

// SpanConfig controls automatic span selection.
type SpanConfig struct {
	Criterion Criterion
	Degree    int

	// SpanMin and SpanMax bound the candidate spans.
	SpanMin float64
	SpanMax float64

	// Candidates is the number of neighborhood sizes evaluated exhaustively.
	// Larger ranges get a coarse scan of this many sizes followed by a
	// golden-section refinement.
	Candidates int

	Workers int
}

// SpanSelection is the outcome of a span search.
type SpanSelection struct {
	Span  float64
	Score float64
	Fit   *LoessFit

	// Evaluated is the number of spans fitted during the search.
	Evaluated int
}

// SelectSpan fits locally weighted regressions of y on x over the candidate
// spans in [cfg.SpanMin, cfg.SpanMax] and returns the one minimizing
// cfg.Criterion.
//
// Spans are searched through their neighborhood size q = floor(n·span), the
// only thing a span changes about the fit, so each candidate span is q/n.
// When the admissible q range holds no more than cfg.Candidates sizes every
// one is fitted; otherwise cfg.Candidates evenly spaced sizes are fitted and
// the bracket around the best is refined by an integer golden-section search.
// Equal scores keep the smaller span. The search is deterministic.
//
// Returns a *SmoothingFailureError if no candidate span yields a defined
// criterion.
func SelectSpan(x, y []float64, cfg SpanConfig) (*SpanSelection, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("hotspot: span search: x has %d values but y has %d", len(x), len(y))
	}
	if len(x) == 0 {
		return nil, &EmptyInputError{}
	}
	if cfg.Criterion == "" {
		cfg.Criterion = CriterionAICc
	}
	if cfg.Candidates < 3 {
		cfg.Candidates = 3
	}

	n := len(x)
	fail := func(reason string) error {
		return &SmoothingFailureError{N: n, SpanMin: cfg.SpanMin, SpanMax: cfg.SpanMax, Reason: reason}
	}

	qlo := int(math.Ceil(float64(n)*cfg.SpanMin - 1e-5))
	qlo = max(qlo, cfg.Degree+1)
	qhi := NeighborhoodSize(n, cfg.SpanMax)
	if qlo > qhi {
		return nil, fail(fmt.Sprintf("span range covers no neighborhood of at least %d points", cfg.Degree+1))
	}

	s := &spanSearch{
		data:   newSortedPairs(x, y),
		cfg:    cfg,
		n:      n,
		scores: make(map[int]float64),
		fits:   make(map[int]*LoessFit),
	}

	if qhi-qlo+1 <= cfg.Candidates {
		for q := qlo; q <= qhi; q++ {
			s.score(q)
		}
	} else {
		s.coarseToFine(qlo, qhi)
	}

	bestQ, bestScore := -1, math.Inf(1)
	for q := qlo; q <= qhi; q++ {
		score, ok := s.scores[q]
		if !ok {
			continue
		}
		if score < bestScore {
			bestQ, bestScore = q, score
		}
	}
	if bestQ < 0 {
		reason := "criterion undefined for every candidate span"
		if s.lastErr != nil {
			reason = fmt.Sprintf("%s (last fit error: %v)", reason, s.lastErr)
		}
		return nil, fail(reason)
	}

	return &SpanSelection{
		Span:      s.span(bestQ),
		Score:     bestScore,
		Fit:       s.fits[bestQ],
		Evaluated: len(s.scores),
	}, nil
}

// spanSearch memoizes criterion scores by neighborhood size. Inadmissible
// sizes score +Inf.
type spanSearch struct {
	data    *sortedPairs
	cfg     SpanConfig
	n       int
	scores  map[int]float64
	fits    map[int]*LoessFit
	lastErr error
}

func (s *spanSearch) span(q int) float64 {
	return float64(q) / float64(s.n)
}

func (s *spanSearch) score(q int) float64 {
	if v, ok := s.scores[q]; ok {
		return v
	}

	fit, err := s.data.fit(s.span(q), s.cfg.Degree, s.cfg.Workers)
	if err != nil {
		s.lastErr = err
		s.scores[q] = math.Inf(1)
		return math.Inf(1)
	}

	v, ok := s.cfg.Criterion.ScoreFit(fit)
	if !ok {
		v = math.Inf(1)
	} else {
		s.fits[q] = fit
	}
	s.scores[q] = v
	return v
}

// coarseToFine scans cfg.Candidates evenly spaced sizes in [qlo, qhi] and
// then narrows the bracket around the best one by golden-section steps until
// few enough sizes remain to fit them all.
func (s *spanSearch) coarseToFine(qlo, qhi int) {
	k := s.cfg.Candidates
	grid := make([]int, 0, k)
	for i := 0; i < k; i++ {
		q := qlo + int(math.Round(float64(i)*float64(qhi-qlo)/float64(k-1)))
		if len(grid) > 0 && grid[len(grid)-1] == q {
			continue
		}
		grid = append(grid, q)
	}

	best := 0
	for i, q := range grid {
		if s.score(q) < s.score(grid[best]) {
			best = i
		}
	}

	lo, hi := grid[max(best-1, 0)], grid[min(best+1, len(grid)-1)]
	for hi-lo > 3 {
		step := int(math.Round(float64(hi-lo) * invPhi2))
		m1, m2 := lo+step, hi-step
		if m1 >= m2 {
			m2 = m1 + 1
		}
		if s.score(m1) <= s.score(m2) {
			hi = m2
		} else {
			lo = m1
		}
	}
	for q := lo; q <= hi; q++ {
		s.score(q)
	}
}
