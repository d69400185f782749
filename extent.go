package hotspot

import (
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
)

// EarthRadiusKm is the mean Earth radius used to convert spherical areas.
const EarthRadiusKm = 6371.0088

// Extent summarizes where the hotspot members lie on the sphere.
type Extent struct {
	// Count is the number of hotspot members with valid coordinates and
	// Skipped the number whose latitude/longitude are out of range.
	Count   int `json:"count"`
	Skipped int `json:"skipped,omitempty"`

	// Bounding rectangle in degrees. When the members straddle the
	// antimeridian MinLongitude is greater than MaxLongitude.
	MinLatitude  float64 `json:"min_latitude"`
	MaxLatitude  float64 `json:"max_latitude"`
	MinLongitude float64 `json:"min_longitude"`
	MaxLongitude float64 `json:"max_longitude"`

	// Centroid of the member locations on the unit sphere.
	CentroidLatitude  float64 `json:"centroid_latitude"`
	CentroidLongitude float64 `json:"centroid_longitude"`

	// AreaKm2 is the area of the bounding rectangle.
	AreaKm2 float64 `json:"area_km2"`

	MeanValue float64 `json:"mean_value"`
}

// ComputeExtent summarizes the hotspot members of results. Non-members are
// ignored; an empty Extent is returned when there are no valid members.
func ComputeExtent(results []HotspotResult) Extent {
	var (
		ext  Extent
		rect = s2.EmptyRect()
		sum  r3.Vector
		vsum float64
	)

	for _, r := range results {
		if !r.IsHotspot {
			continue
		}
		ll := s2.LatLngFromDegrees(r.Latitude, r.Longitude)
		if !ll.IsValid() {
			ext.Skipped++
			continue
		}
		rect = rect.AddPoint(ll)
		sum = sum.Add(s2.PointFromLatLng(ll).Vector)
		vsum += r.Value
		ext.Count++
	}

	if ext.Count == 0 {
		return ext
	}

	ext.MinLatitude = rect.Lo().Lat.Degrees()
	ext.MaxLatitude = rect.Hi().Lat.Degrees()
	ext.MinLongitude = rect.Lo().Lng.Degrees()
	ext.MaxLongitude = rect.Hi().Lng.Degrees()
	ext.AreaKm2 = rect.Area() * EarthRadiusKm * EarthRadiusKm
	ext.MeanValue = vsum / float64(ext.Count)

	// Antipodal members cancel out; fall back to the rectangle center.
	centroid := rect.Center()
	if sum.Norm() > 0 {
		centroid = s2.LatLngFromPoint(s2.Point{Vector: sum.Normalize()})
	}
	ext.CentroidLatitude = centroid.Lat.Degrees()
	ext.CentroidLongitude = centroid.Lng.Degrees()
	return ext
}
