package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/TrevorS/hotspot"
	"github.com/TrevorS/hotspot/internal/config"
	"github.com/TrevorS/hotspot/internal/export"
	"github.com/TrevorS/hotspot/internal/server"
	"github.com/TrevorS/hotspot/internal/source"
)

func main() {
	// Dispatch subcommands
	args := os.Args[1:]
	if len(args) > 0 {
		switch args[0] {
		case "detect":
			runDetectCmd(args[1:])
			return
		case "serve":
			runServeCmd(args[1:])
			return
		}
	}

	// Default behavior (flags -> detect)
	runDetectCmd(args)
}

// Flags holds pointers to all supported CLI flags
type Flags struct {
	// Config File (optional)
	ConfigFile  *string
	WriteConfig *string

	// Input / output
	Input  *string
	Format *string
	Table  *string
	Output *string
	OutFmt *string

	// Detection
	Criterion      *string
	Span           *float64
	GridResolution *float64
	Degree         *int
	SpanMin        *float64
	SpanMax        *float64
	Workers        *int

	// Service
	Addr *string
}

func SetupFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	f.ConfigFile = fs.String("config", "", "Path to configuration file (disables other flags)")
	f.WriteConfig = fs.String("write-config", "", "Save the generated configuration to this YAML file")

	f.Input = fs.String("in", "-", "Observation file (CSV or SQLite); '-' reads CSV from stdin")
	f.Format = fs.String("in-format", "", "Input format: 'csv' or 'sqlite' (default: from the file extension)")
	f.Table = fs.String("table", "observations", "SQLite table holding longitude, latitude and value columns")
	f.Output = fs.String("out", "-", "Output file; '-' writes to stdout")
	f.OutFmt = fs.String("out-format", "json", "Output format: 'json', 'geojson' or 'csv'")

	f.Criterion = fs.String("criterion", "aicc", "Span selection criterion: 'aicc' or 'gcv'")
	f.Span = fs.Float64("span", 0, "Fixed smoothing span (0 selects the span automatically)")
	f.GridResolution = fs.Float64("grid", hotspot.DefaultGridResolution, "Evaluation grid step in [1e-6, 1/3]")
	f.Degree = fs.Int("degree", 0, "Local polynomial degree: 0, 1 or 2")
	f.SpanMin = fs.Float64("span-min", 0.05, "Smallest candidate span")
	f.SpanMax = fs.Float64("span-max", 0.95, "Largest candidate span")
	f.Workers = fs.Int("workers", 0, "Worker goroutines for the local fits (0 = all CPUs)")

	f.Addr = fs.String("addr", ":8080", "Listen address for 'serve'")
	return f
}

// LoadConfig determines the config source (file or flags) and returns a Config object.
func (f *Flags) LoadConfig() (*config.Config, error) {
	if *f.ConfigFile != "" {
		cfg, err := config.Load(*f.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
		return cfg, nil
	}

	cfg := &config.Config{
		Input: config.Input{
			Format: *f.Format,
			Path:   *f.Input,
			Table:  *f.Table,
		},
		Output: config.Output{
			Format: *f.OutFmt,
			Path:   *f.Output,
		},
		Detection: config.Detection{
			Criterion:      *f.Criterion,
			UserSpan:       *f.Span,
			GridResolution: *f.GridResolution,
			Degree:         *f.Degree,
			SpanMin:        *f.SpanMin,
			SpanMax:        *f.SpanMax,
			Workers:        *f.Workers,
		},
		Server: config.Server{
			Addr: *f.Addr,
		},
	}

	// Round-trip through the loader so flags get the same defaults and
	// validation as a file.
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	return config.Parse(data)
}

func parseFlags(name string, args []string) *config.Config {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	flags := SetupFlags(fs)
	_ = fs.Parse(args)

	cfg, err := flags.LoadConfig()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	if *flags.WriteConfig != "" {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			log.Fatalf("Failed to marshal config: %v", err)
		}
		if err := os.WriteFile(*flags.WriteConfig, data, 0o644); err != nil {
			log.Fatalf("Failed to write config: %v", err)
		}
		log.Printf("Configuration saved to %s", *flags.WriteConfig)
	}
	return cfg
}

func runDetectCmd(args []string) {
	cfg := parseFlags("detect", args)
	if err := runDetect(context.Background(), cfg, os.Stdout); err != nil {
		log.Fatalf("Detection failed: %v", err)
	}
}

// runDetect reads the configured input, runs detection and writes the
// result. stdout receives the output when the output path is "-".
func runDetect(ctx context.Context, cfg *config.Config, stdout io.Writer) error {
	obs, err := source.Read(ctx, cfg.Input.Format, cfg.Input.Path, cfg.Input.Table)
	if err != nil {
		return err
	}
	log.Printf("Read %d observations from %s", len(obs), cfg.Input.Path)

	result, err := hotspot.Detect(obs, cfg.Detection.Core())
	if err != nil {
		return err
	}
	log.Printf("Span %.4g (%s), threshold x*=%.4g: %d of %d observations are hotspots",
		result.Curve.Span, result.Curve.Criterion, result.Threshold.XStar, result.HotspotCount(), len(obs))

	opts := export.ReportOptions{}
	if cfg.Output.Path == "-" {
		return export.Write(stdout, cfg.Output.Format, result, opts)
	}
	f, err := os.Create(cfg.Output.Path)
	if err != nil {
		return err
	}
	if err := export.Write(f, cfg.Output.Format, result, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runServeCmd(args []string) {
	cfg := parseFlags("serve", args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.New(cfg).Run(ctx); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
	log.Printf("Server stopped")
}
