package export

import (
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/TrevorS/hotspot"
)

// FeatureCollection converts the classified observations of r into Point
// features in input order. Each feature carries value, x, y and is_hotspot
// properties; the collection carries the threshold and span as foreign
// members and the bounding box of all observations.
func FeatureCollection(r *hotspot.Result, runID string) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	points := make(orb.MultiPoint, 0, len(r.Hotspots))
	for _, h := range r.Hotspots {
		p := orb.Point{h.Longitude, h.Latitude}
		points = append(points, p)

		f := geojson.NewFeature(p)
		f.Properties["value"] = h.Value
		f.Properties["x"] = h.X
		f.Properties["y"] = h.Y
		f.Properties["is_hotspot"] = h.IsHotspot
		fc.Append(f)
	}
	if len(points) > 0 {
		fc.BBox = geojson.NewBBox(points.Bound())
	}

	fc.ExtraMembers = geojson.Properties{
		"x_star":        r.Threshold.XStar,
		"y_star":        r.Threshold.YStar,
		"hotspot_count": r.HotspotCount(),
	}
	if r.Curve != nil {
		fc.ExtraMembers["span"] = r.Curve.Span
		fc.ExtraMembers["criterion"] = string(r.Curve.Criterion)
	}
	if runID != "" {
		fc.ExtraMembers["run_id"] = runID
	}
	return fc
}

// WriteGeoJSON writes r as a GeoJSON FeatureCollection.
func WriteGeoJSON(w io.Writer, r *hotspot.Result, runID string) error {
	data, err := FeatureCollection(r, runID).MarshalJSON()
	if err != nil {
		return fmt.Errorf("export: geojson: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("export: geojson: %w", err)
	}
	return nil
}
