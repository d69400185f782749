package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/TrevorS/hotspot"
	"github.com/TrevorS/hotspot/internal/export"
)

// DetectRequest is the body of POST /api/v1/hotspots. Unset detection
// fields keep the server defaults.
type DetectRequest struct {
	Observations   []hotspot.Observation `json:"observations"`
	Criterion      string                `json:"criterion,omitempty"`
	UserSpan       *float64              `json:"user_span,omitempty"`
	GridResolution *float64              `json:"grid_resolution,omitempty"`
	Degree         *int                  `json:"degree,omitempty"`

	// Format selects the response data: "json" (report, default) or
	// "geojson" (feature collection).
	Format       string `json:"format,omitempty"`
	IncludeCurve bool   `json:"include_curve,omitempty"`
}

func (s *Server) detectConfig(req *DetectRequest) hotspot.Config {
	cfg := s.defaults
	if req.Criterion != "" {
		cfg.Criterion = hotspot.Criterion(req.Criterion)
	}
	if req.UserSpan != nil {
		cfg.UserSpan = *req.UserSpan
	}
	if req.GridResolution != nil {
		cfg.GridResolution = *req.GridResolution
	}
	if req.Degree != nil {
		cfg.Degree = *req.Degree
	}
	return cfg
}

// statusFor maps a detection error to an HTTP status. Input the pipeline
// rejects outright is a bad request; input on which smoothing or the
// threshold search fails is unprocessable.
func statusFor(err error) int {
	switch {
	case errors.Is(err, hotspot.ErrSmoothingFailure), errors.Is(err, hotspot.ErrThresholdNotFound):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

func (s *Server) handleDetect(c *gin.Context) {
	runID := uuid.NewString()
	c.Set(runIDKey, runID)

	var req DetectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	switch req.Format {
	case "", "json", "geojson":
	default:
		BadRequest(c, fmt.Sprintf("format must be \"json\" or \"geojson\", got %q", req.Format))
		return
	}
	if limit := s.cfg.MaxObservations; limit > 0 && len(req.Observations) > limit {
		Error(c, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("%d observations exceed the limit of %d", len(req.Observations), limit))
		return
	}

	start := time.Now()
	result, err := hotspot.Detect(req.Observations, s.detectConfig(&req))
	if err != nil {
		s.stats.Record(time.Since(start), len(req.Observations), 0, true)
		_ = c.Error(err)
		msg := fmt.Sprintf("run %s: %v", runID, err)
		if statusFor(err) == http.StatusUnprocessableEntity {
			Unprocessable(c, msg)
		} else {
			BadRequest(c, msg)
		}
		return
	}
	s.stats.Record(time.Since(start), len(req.Observations), result.HotspotCount(), false)

	if req.Format == "geojson" {
		Success(c, export.FeatureCollection(result, runID))
		return
	}
	Success(c, export.NewReport(result, export.ReportOptions{RunID: runID, IncludeCurve: req.IncludeCurve}))
}

func (s *Server) handleStats(c *gin.Context) {
	Success(c, s.stats.Snapshot())
}
