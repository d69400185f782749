package hotspot

import (
	"math"
	"testing"
)

func member(lat, lon, value float64) HotspotResult {
	return HotspotResult{
		Observation: Observation{Latitude: lat, Longitude: lon, Value: value},
		X:           1,
		IsHotspot:   true,
	}
}

func TestComputeExtent(t *testing.T) {
	results := []HotspotResult{
		member(0, 0, 4),
		member(1, 1, 8),
		{Observation: Observation{Latitude: -60, Longitude: 120, Value: 1}},
	}

	ext := ComputeExtent(results)
	if ext.Count != 2 || ext.Skipped != 0 {
		t.Fatalf("Count = %d, Skipped = %d, want 2 and 0", ext.Count, ext.Skipped)
	}
	if !almostEqual(ext.MinLatitude, 0, 1e-9) || !almostEqual(ext.MaxLatitude, 1, 1e-9) {
		t.Errorf("latitude range [%v, %v], want [0, 1]", ext.MinLatitude, ext.MaxLatitude)
	}
	if !almostEqual(ext.MinLongitude, 0, 1e-9) || !almostEqual(ext.MaxLongitude, 1, 1e-9) {
		t.Errorf("longitude range [%v, %v], want [0, 1]", ext.MinLongitude, ext.MaxLongitude)
	}
	if !almostEqual(ext.CentroidLatitude, 0.5, 1e-3) || !almostEqual(ext.CentroidLongitude, 0.5, 1e-3) {
		t.Errorf("centroid (%v, %v), want about (0.5, 0.5)", ext.CentroidLatitude, ext.CentroidLongitude)
	}
	if math.Abs(ext.AreaKm2-12363.718)/12363.718 > 1e-6 {
		t.Errorf("AreaKm2 = %v, want about 12363.718", ext.AreaKm2)
	}
	if ext.MeanValue != 6 {
		t.Errorf("MeanValue = %v, want 6", ext.MeanValue)
	}
}

func TestComputeExtent_SkipsInvalidCoordinates(t *testing.T) {
	results := []HotspotResult{
		member(10, 20, 1),
		member(95, 20, 1),
	}
	ext := ComputeExtent(results)
	if ext.Count != 1 || ext.Skipped != 1 {
		t.Errorf("Count = %d, Skipped = %d, want 1 and 1", ext.Count, ext.Skipped)
	}
	if !almostEqual(ext.CentroidLatitude, 10, 1e-9) || !almostEqual(ext.CentroidLongitude, 20, 1e-9) {
		t.Errorf("centroid (%v, %v), want (10, 20)", ext.CentroidLatitude, ext.CentroidLongitude)
	}
	if ext.AreaKm2 != 0 {
		t.Errorf("single point AreaKm2 = %v, want 0", ext.AreaKm2)
	}
}

func TestComputeExtent_Antimeridian(t *testing.T) {
	ext := ComputeExtent([]HotspotResult{
		member(0, 170, 1),
		member(0, -170, 1),
	})
	if !(ext.MinLongitude > ext.MaxLongitude) {
		t.Errorf("expected a wrapped longitude range, got [%v, %v]", ext.MinLongitude, ext.MaxLongitude)
	}
	if !almostEqual(math.Abs(ext.CentroidLongitude), 180, 1e-9) {
		t.Errorf("CentroidLongitude = %v, want ±180", ext.CentroidLongitude)
	}
}

func TestComputeExtent_NoMembers(t *testing.T) {
	ext := ComputeExtent([]HotspotResult{{Observation: Observation{Value: 3}}})
	if ext != (Extent{}) {
		t.Errorf("expected zero Extent, got %+v", ext)
	}
	if ComputeExtent(nil) != (Extent{}) {
		t.Error("expected zero Extent for nil results")
	}
}
