package hotspot

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"
)

type goldenConfig struct {
	Criterion      string  `json:"criterion"`
	Degree         int     `json:"degree"`
	GridResolution float64 `json:"grid_resolution"`
}

type goldenData struct {
	Dataset      string        `json:"dataset"`
	Config       goldenConfig  `json:"config"`
	Observations []Observation `json:"observations"`
	X            []float64     `json:"x"`
	Y            []float64     `json:"y"`
	Span         float64       `json:"span"`
	Score        float64       `json:"score"`
	XStar        float64       `json:"x_star"`
	YStar        float64       `json:"y_star"`
	Position     int           `json:"position"`
	Hotspots     []bool        `json:"hotspots"`
}

const goldenTolerance = 1e-9

// compareFloat64Slices reports mismatches between golden and actual float slices
// at the given tolerance, logging up to 5 individual errors.
func compareFloat64Slices(t *testing.T, name string, golden, actual []float64, tol float64) {
	t.Helper()
	if len(golden) != len(actual) {
		t.Fatalf("%s length: golden=%d, got=%d", name, len(golden), len(actual))
	}
	mismatches := 0
	for i := range golden {
		if math.Abs(golden[i]-actual[i]) > tol {
			mismatches++
			if mismatches <= 5 {
				t.Errorf("%s[%d]: golden=%g, got=%g (diff=%g)",
					name, i, golden[i], actual[i],
					math.Abs(golden[i]-actual[i]))
			}
		}
	}
	if mismatches > 5 {
		t.Errorf("... and %d more %s mismatches beyond tolerance %g",
			mismatches-5, name, tol)
	}
}

func loadGolden(t *testing.T, path string) goldenData {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	var g goldenData
	if err := json.Unmarshal(raw, &g); err != nil {
		t.Fatalf("parsing %s: %v", path, err)
	}
	return g
}

func TestGolden(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.json"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no golden files in testdata")
	}

	for _, path := range files {
		g := loadGolden(t, path)
		name := filepath.Base(path)
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Criterion = Criterion(g.Config.Criterion)
			cfg.Degree = g.Config.Degree
			cfg.GridResolution = g.Config.GridResolution

			result, err := Detect(g.Observations, cfg)
			if err != nil {
				t.Fatalf("Detect: %v", err)
			}

			xs := make([]float64, len(result.Points))
			ys := make([]float64, len(result.Points))
			for i, p := range result.Points {
				xs[i] = p.X
				ys[i] = p.Y
			}
			compareFloat64Slices(t, "x", g.X, xs, 1e-12)
			compareFloat64Slices(t, "y", g.Y, ys, 1e-12)

			if result.Curve.Span != g.Span {
				t.Errorf("span: golden=%v, got=%v", g.Span, result.Curve.Span)
			}
			if math.Abs(result.Curve.Score-g.Score) > goldenTolerance*math.Max(1, math.Abs(g.Score)) {
				t.Errorf("score: golden=%v, got=%v", g.Score, result.Curve.Score)
			}
			if result.Threshold.Position != g.Position {
				t.Errorf("position: golden=%d, got=%d", g.Position, result.Threshold.Position)
			}
			if math.Abs(result.Threshold.XStar-g.XStar) > 1e-12 {
				t.Errorf("x*: golden=%v, got=%v", g.XStar, result.Threshold.XStar)
			}
			if math.Abs(result.Threshold.YStar-g.YStar) > goldenTolerance {
				t.Errorf("y*: golden=%v, got=%v", g.YStar, result.Threshold.YStar)
			}

			if len(result.Hotspots) != len(g.Hotspots) {
				t.Fatalf("hotspots length: golden=%d, got=%d", len(g.Hotspots), len(result.Hotspots))
			}
			for i, want := range g.Hotspots {
				if result.Hotspots[i].IsHotspot != want {
					t.Errorf("hotspot[%d] (x=%v): golden=%v, got=%v",
						i, result.Hotspots[i].X, want, result.Hotspots[i].IsHotspot)
				}
			}
		})
	}
}

// TestGolden_WorkersIndependent checks the golden datasets give identical
// results serially and in parallel.
func TestGolden_WorkersIndependent(t *testing.T) {
	files, _ := filepath.Glob(filepath.Join("testdata", "*.json"))
	for _, path := range files {
		g := loadGolden(t, path)
		cfg := DefaultConfig()
		cfg.Criterion = Criterion(g.Config.Criterion)

		cfg.Workers = 1
		serial, err := Detect(g.Observations, cfg)
		if err != nil {
			t.Fatalf("%s serial: %v", path, err)
		}
		cfg.Workers = 8
		parallel, err := Detect(g.Observations, cfg)
		if err != nil {
			t.Fatalf("%s parallel: %v", path, err)
		}

		if serial.Threshold != parallel.Threshold {
			t.Errorf("%s: threshold %+v (serial) vs %+v (parallel)", path, serial.Threshold, parallel.Threshold)
		}
		for i := range serial.Curve.Samples {
			if serial.Curve.Samples[i] != parallel.Curve.Samples[i] {
				t.Errorf("%s: curve sample %d differs", path, i)
				break
			}
		}
	}
}
