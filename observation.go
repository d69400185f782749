package hotspot

// Observation is a spatial sample carrying the variable of interest.
type Observation struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Value     float64 `json:"value"`
}

// CRFDPoint is one observation mapped onto the cumulative relative frequency
// distribution. X is the value normalized by the maximum value and Y is the
// fraction of observations whose X is strictly less than this X.
type CRFDPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`

	// Index is the position of the source observation in the input slice.
	Index int `json:"index"`
}

// CurveSample is the smoothed CRFD curve evaluated at one grid point.
type CurveSample struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Threshold is the tangent point of the smoothed curve.
type Threshold struct {
	XStar float64 `json:"x_star"`
	YStar float64 `json:"y_star"`

	// Position is the grid index of XStar in scan order.
	Position int `json:"position"`

	// Slope is the centered finite-difference slope at Position (>= 1).
	Slope float64 `json:"slope"`
}

// HotspotResult is an observation with its CRFD coordinates and its
// classification against a threshold.
type HotspotResult struct {
	Observation
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	IsHotspot bool    `json:"is_hotspot"`
}
