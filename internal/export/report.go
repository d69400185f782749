// Package export writes hotspot detection results as JSON reports, GeoJSON
// feature collections and CSV tables.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/TrevorS/hotspot"
)

// Report is the JSON form of a hotspot.Result.
type Report struct {
	RunID        string `json:"run_id,omitempty"`
	Count        int    `json:"count"`
	HotspotCount int    `json:"hotspot_count"`

	Smoothing Smoothing         `json:"smoothing"`
	Threshold hotspot.Threshold `json:"threshold"`
	Extent    hotspot.Extent    `json:"extent"`

	Observations []hotspot.HotspotResult `json:"observations"`
	Curve        []hotspot.CurveSample   `json:"curve,omitempty"`
}

// Smoothing describes the fitted curve. Score is omitted when it is not a
// finite number (a perfect fit scores -Inf under AICc).
type Smoothing struct {
	Criterion      hotspot.Criterion `json:"criterion"`
	Span           float64           `json:"span"`
	Degree         int               `json:"degree"`
	Score          *float64          `json:"score,omitempty"`
	TraceHat       float64           `json:"trace_hat"`
	Sigma2         float64           `json:"sigma2"`
	SpansEvaluated int               `json:"spans_evaluated"`
	GridResolution float64           `json:"grid_resolution"`
}

// ReportOptions controls what NewReport includes.
type ReportOptions struct {
	RunID string

	// IncludeCurve adds the smoothed curve samples.
	IncludeCurve bool
}

// NewReport builds the JSON report of r.
func NewReport(r *hotspot.Result, opts ReportOptions) Report {
	rep := Report{
		RunID:        opts.RunID,
		Count:        len(r.Hotspots),
		HotspotCount: r.HotspotCount(),
		Threshold:    r.Threshold,
		Extent:       r.Extent,
		Observations: r.Hotspots,
	}
	if c := r.Curve; c != nil {
		rep.Smoothing = Smoothing{
			Criterion:      c.Criterion,
			Span:           c.Span,
			Degree:         c.Degree,
			Score:          finite(c.Score),
			TraceHat:       c.TraceHat,
			Sigma2:         c.Sigma2,
			SpansEvaluated: c.SpansEvaluated,
			GridResolution: c.Grid.Resolution,
		}
		if opts.IncludeCurve {
			rep.Curve = c.Samples
		}
	}
	return rep
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// WriteJSON writes rep as indented JSON.
func WriteJSON(w io.Writer, rep Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("export: json: %w", err)
	}
	return nil
}

// Write writes r to w in format ("json", "geojson" or "csv").
func Write(w io.Writer, format string, r *hotspot.Result, opts ReportOptions) error {
	switch format {
	case "json":
		return WriteJSON(w, NewReport(r, opts))
	case "geojson":
		return WriteGeoJSON(w, r, opts.RunID)
	case "csv":
		return WriteCSV(w, r.Hotspots)
	default:
		return fmt.Errorf("export: unsupported format %q", format)
	}
}
