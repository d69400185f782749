package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/TrevorS/hotspot"
)

func TestLoadConfig_Flags(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f := SetupFlags(fs)
	if err := fs.Parse([]string{"-in", "cases.db", "-criterion", "gcv", "-span", "0.4", "-out-format", "geojson"}); err != nil {
		t.Fatal(err)
	}
	cfg, err := f.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Input.Format != "sqlite" || cfg.Input.Table != "observations" {
		t.Errorf("input %+v", cfg.Input)
	}
	if cfg.Output.Format != "geojson" || cfg.Output.Path != "-" {
		t.Errorf("output %+v", cfg.Output)
	}
	core := cfg.Detection.Core()
	if core.Criterion != hotspot.CriterionGCV || core.UserSpan != 0.4 || core.GridResolution != 0.001 {
		t.Errorf("detection %+v", core)
	}
}

func TestLoadConfig_InvalidFlags(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f := SetupFlags(fs)
	if err := fs.Parse([]string{"-out-format", "kml"}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.LoadConfig(); err == nil {
		t.Error("expected error for an unknown output format")
	}
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte("input:\n  path: obs.csv\ndetection:\n  degree: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f := SetupFlags(fs)
	if err := fs.Parse([]string{"-config", path, "-degree", "2"}); err != nil {
		t.Fatal(err)
	}
	cfg, err := f.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Detection.Degree != 1 {
		t.Errorf("degree %d, want the file's 1 (flags are ignored with -config)", cfg.Detection.Degree)
	}
}

func TestRunDetect_CSV(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "obs.csv")
	data := "lon,lat,value\n-10,40,1\n-9,40,2\n-8,40,3\n-7,40,4\n-6,40,100\n"
	if err := os.WriteFile(in, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f := SetupFlags(fs)
	if err := fs.Parse([]string{"-in", in, "-out-format", "csv"}); err != nil {
		t.Fatal(err)
	}
	cfg, err := f.LoadConfig()
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := runDetect(context.Background(), cfg, &out); err != nil {
		t.Fatalf("runDetect: %v", err)
	}
	records, err := csv.NewReader(&out).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 6 {
		t.Fatalf("got %d rows, want 6", len(records))
	}
	for i, rec := range records[1:] {
		want := "false"
		if i == 4 {
			want = "true"
		}
		if rec[5] != want {
			t.Errorf("row %d is_hotspot = %s, want %s", i, rec[5], want)
		}
	}

	// Same run written to a file.
	cfg.Output.Path = filepath.Join(dir, "out.csv")
	if err := runDetect(context.Background(), cfg, &bytes.Buffer{}); err != nil {
		t.Fatalf("runDetect to file: %v", err)
	}
	written, err := os.ReadFile(cfg.Output.Path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(written), "longitude,latitude,value,x,y,is_hotspot\n") {
		t.Errorf("unexpected file contents:\n%s", written)
	}
}

func TestRunDetect_Failure(t *testing.T) {
	in := filepath.Join(t.TempDir(), "flat.csv")
	if err := os.WriteFile(in, []byte("lon,lat,value\n0,0,0\n1,1,0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f := SetupFlags(fs)
	if err := fs.Parse([]string{"-in", in}); err != nil {
		t.Fatal(err)
	}
	cfg, err := f.LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if err := runDetect(context.Background(), cfg, &bytes.Buffer{}); err == nil {
		t.Error("expected a degenerate input error")
	}
}
