// Package main implements the tpd-report CLI tool.
// It reproduces the Tests Pending at Discharge conference demo: load
// FHIR data, project it with SQL-on-FHIR ViewDefinitions, compute
// pending-lab statistics and write the chart and CSV exports.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	tpd "github.com/gofhir/tpd"
	"github.com/gofhir/tpd/analysis"
	"github.com/gofhir/tpd/config"
	"github.com/gofhir/tpd/loader"
	"github.com/gofhir/tpd/report"
	"github.com/gofhir/tpd/view"
)

const (
	version = "0.1.0"
	usage   = `tpd-report - Tests Pending at Discharge analysis

Usage:
  tpd-report [options]

Examples:
  tpd-report -fhir-dir synthea/output/fhir
  tpd-report -mode bundle -encounter-bundle enc.json -observation-bundle obs.json
  tpd-report -mode rows -encounter-rows enc_rows.json -lab-rows lab_rows.json
  tpd-report -policy status -reference end
  tpd-report -config tpd.yaml -out reports/

Options:
`
)

// Config holds CLI configuration.
type Config struct {
	Mode              string
	FHIRDir           string
	EncounterBundle   string
	ObservationBundle string
	EncounterRows     string
	LabRows           string
	EncounterView     string
	LabView           string
	Policy            string
	Reference         string
	ClassFilter       string
	ConfigFile        string
	OutDir            string
	NoChart           bool
	Quiet             bool
	Verbose           bool
	ShowVersion       bool
}

func main() {
	cliCfg := parseFlags()

	if cliCfg.ShowVersion {
		fmt.Printf("tpd-report v%s\n", version)
		os.Exit(0)
	}

	os.Exit(run(cliCfg))
}

func parseFlags() *Config {
	cfg := &Config{}

	flag.StringVar(&cfg.Mode, "mode", "ndjson", "Input mode: ndjson, bundle, rows")
	flag.StringVar(&cfg.FHIRDir, "fhir-dir", "", "Directory with Encounter.ndjson and Observation.ndjson (ndjson mode)")
	flag.StringVar(&cfg.EncounterBundle, "encounter-bundle", "", "Pre-built encounter Bundle JSON (bundle mode)")
	flag.StringVar(&cfg.ObservationBundle, "observation-bundle", "", "Pre-built observation Bundle JSON (bundle mode)")
	flag.StringVar(&cfg.EncounterRows, "encounter-rows", "", "Pre-run encounter view rows JSON (rows mode)")
	flag.StringVar(&cfg.LabRows, "lab-rows", "", "Pre-run lab view rows JSON (rows mode)")
	flag.StringVar(&cfg.EncounterView, "encounter-view", "", "EncounterView ViewDefinition file")
	flag.StringVar(&cfg.LabView, "lab-view", "", "LabObservationView ViewDefinition file")
	flag.StringVar(&cfg.Policy, "policy", "", "Pending policy: delay, status")
	flag.StringVar(&cfg.Reference, "reference", "", "Delay reference timestamp: start, end")
	flag.StringVar(&cfg.ClassFilter, "class", "", "Encounter class for the rate denominator (e.g. IMP; \"all\" disables)")
	flag.StringVar(&cfg.ConfigFile, "config", "", "YAML config file")
	flag.StringVar(&cfg.OutDir, "out", "", "Output directory")
	flag.BoolVar(&cfg.NoChart, "no-chart", false, "Skip chart generation")
	flag.BoolVar(&cfg.Quiet, "quiet", false, "Suppress the console report")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "Show debug logging")
	flag.BoolVar(&cfg.ShowVersion, "v", false, "Show version")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}

	flag.Parse()
	return cfg
}

// mergeConfig resolves the run configuration: defaults, then the YAML
// file, then explicit flags.
func mergeConfig(cliCfg *Config) (*config.Config, error) {
	cfg := config.Default()
	if cliCfg.ConfigFile != "" {
		loaded, err := config.Load(cliCfg.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cliCfg.FHIRDir != "" {
		cfg.Inputs.FHIRDir = cliCfg.FHIRDir
	}
	if cliCfg.EncounterView != "" {
		cfg.Inputs.EncounterView = cliCfg.EncounterView
	}
	if cliCfg.LabView != "" {
		cfg.Inputs.LabView = cliCfg.LabView
	}
	if cliCfg.Policy != "" {
		cfg.Analysis.Policy = cliCfg.Policy
	}
	if cliCfg.Reference != "" {
		cfg.Analysis.Reference = cliCfg.Reference
	}
	if cliCfg.ClassFilter != "" {
		if strings.EqualFold(cliCfg.ClassFilter, "all") {
			cfg.Analysis.ClassFilter = ""
		} else {
			cfg.Analysis.ClassFilter = cliCfg.ClassFilter
		}
	}
	if cliCfg.OutDir != "" {
		cfg.Output.Dir = cliCfg.OutDir
	}
	if cliCfg.NoChart {
		cfg.Output.NoChart = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cliCfg *Config) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	zapCfg.Encoding = "console"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if cliCfg.Verbose {
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	return zapCfg.Build()
}

func run(cliCfg *Config) int {
	cfg, err := mergeConfig(cliCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger, err := newLogger(cliCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logger: %v\n", err)
		return 1
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	out := os.Stdout
	if cliCfg.Quiet {
		devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer devNull.Close()
		out = devNull
	}

	ctx := context.Background()

	fmt.Fprintln(out, strings.Repeat("=", 60))
	fmt.Fprintln(out, "Tests Pending at Discharge - Analysis")
	fmt.Fprintln(out, strings.Repeat("=", 60))

	encounters, observations, err := loadTables(ctx, cliCfg, cfg, logger, out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintln(out, "\n4. Summary Statistics")
	fmt.Fprintln(out, "   "+strings.Repeat("-", 50))

	opts, err := cfg.Options()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	analyzer := analysis.New(logger, opts...)

	result, err := analyzer.Analyze(ctx, encounters, observations)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: analysis failed: %v\n", err)
		return 1
	}
	report.WriteSummary(out, result)

	fmt.Fprintln(out, "\n5. Generating visualization...")
	if cfg.Output.NoChart {
		fmt.Fprintln(out, "   Skipped (-no-chart)")
	} else {
		chartPath := filepath.Join(cfg.Output.Dir, report.ChartHTML)
		if err := report.WriteChart(chartPath, result); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintf(out, "   Created %s\n", report.ChartHTML)
	}
	fmt.Fprintln(out)
	report.WriteDistribution(out, result)

	fmt.Fprintln(out, "\n6. Exporting data files...")
	if err := report.WriteCSV(cfg.Output.Dir, result); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "   Wrote %s\n", report.ObservationsCSV)
	fmt.Fprintf(out, "   Wrote %s\n", report.EncountersCSV)

	fmt.Fprintln(out, "\n"+strings.Repeat("=", 60))
	fmt.Fprintln(out, "Analysis complete!")
	fmt.Fprintln(out, strings.Repeat("=", 60))
	return 0
}

// loadTables produces the two typed input tables for the configured
// input mode, printing the numbered loading sections along the way.
func loadTables(ctx context.Context, cliCfg *Config, cfg *config.Config, logger *zap.Logger, out *os.File) ([]tpd.EncounterRow, []tpd.LabObservationRow, error) {
	switch cliCfg.Mode {
	case "rows":
		fmt.Fprintln(out, "\n1. Loading pre-run view rows...")
		encRows, err := loader.ReadRows(cliCfg.EncounterRows)
		if err != nil {
			return nil, nil, err
		}
		labRows, err := loader.ReadRows(cliCfg.LabRows)
		if err != nil {
			return nil, nil, err
		}
		fmt.Fprintf(out, "   Loaded %d encounter rows\n", len(encRows))
		fmt.Fprintf(out, "   Loaded %d lab observation rows\n", len(labRows))
		return view.DecodeEncounters(encRows), view.DecodeLabObservations(labRows), nil

	case "bundle":
		fmt.Fprintln(out, "\n1. Loading FHIR bundles...")
		encBundle, err := loader.ReadBundle(cliCfg.EncounterBundle)
		if err != nil {
			return nil, nil, err
		}
		obsBundle, err := loader.ReadBundle(cliCfg.ObservationBundle)
		if err != nil {
			return nil, nil, err
		}
		return runViews(ctx, cfg, logger, out, encBundle, obsBundle)

	case "ndjson":
		fmt.Fprintln(out, "\n1. Loading FHIR data from NDJSON files...")
		encResources, err := loader.ReadNDJSON(filepath.Join(cfg.Inputs.FHIRDir, "Encounter.ndjson"))
		if err != nil {
			return nil, nil, err
		}
		obsResources, err := loader.ReadNDJSON(filepath.Join(cfg.Inputs.FHIRDir, "Observation.ndjson"))
		if err != nil {
			return nil, nil, err
		}
		fmt.Fprintf(out, "   Loaded %d encounters\n", len(encResources))
		fmt.Fprintf(out, "   Loaded %d observations\n", len(obsResources))

		encBundle, err := loader.Bundle(encResources)
		if err != nil {
			return nil, nil, err
		}
		obsBundle, err := loader.Bundle(obsResources)
		if err != nil {
			return nil, nil, err
		}
		return runViews(ctx, cfg, logger, out, encBundle, obsBundle)

	default:
		return nil, nil, fmt.Errorf("unknown mode %q (want ndjson, bundle or rows)", cliCfg.Mode)
	}
}

// runViews loads both ViewDefinitions and evaluates them against the
// bundles.
func runViews(ctx context.Context, cfg *config.Config, logger *zap.Logger, out *os.File, encBundle, obsBundle []byte) ([]tpd.EncounterRow, []tpd.LabObservationRow, error) {
	fmt.Fprintln(out, "\n2. Loading ViewDefinitions...")
	encView, err := loader.ReadViewDefinition(cfg.Inputs.EncounterView)
	if err != nil {
		return nil, nil, err
	}
	fmt.Fprintf(out, "   Loaded %s\n", encView.Name)
	labView, err := loader.ReadViewDefinition(cfg.Inputs.LabView)
	if err != nil {
		return nil, nil, err
	}
	fmt.Fprintf(out, "   Loaded %s\n", labView.Name)

	fmt.Fprintln(out, "\n3. Running SQL on FHIR transformations...")
	runner := view.NewRunner(view.WithLogger(logger))

	encRows, err := runner.Run(ctx, encView, encBundle)
	if err != nil {
		return nil, nil, err
	}
	fmt.Fprintf(out, "   Processed %d encounters\n", len(encRows))

	labRows, err := runner.Run(ctx, labView, obsBundle)
	if err != nil {
		return nil, nil, err
	}
	fmt.Fprintf(out, "   Processed %d lab observations\n", len(labRows))

	m := runner.Metrics().Snapshot()
	logger.Debug("view runner metrics",
		zap.Uint64("rows", m.RowsTotal),
		zap.Uint64("skipped", m.RowsSkipped),
		zap.Uint64("cells", m.CellsEvaluated),
		zap.Uint64("expressions", m.ExpressionsCompiled),
		zap.Duration("eval_total", m.EvalTimeTotal),
		zap.Duration("eval_avg", m.EvalTimeAvg))

	return view.DecodeEncounters(encRows), view.DecodeLabObservations(labRows), nil
}
