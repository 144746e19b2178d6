// Package config holds the YAML run configuration for the tpd-report
// CLI. Every field has a default; a config file only overrides what it
// sets.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	tpd "github.com/gofhir/tpd"
)

// Config holds all tpd-report configuration.
type Config struct {
	// Analysis settings
	Analysis AnalysisConfig `yaml:"analysis"`

	// Input file locations
	Inputs InputsConfig `yaml:"inputs"`

	// Output settings
	Output OutputConfig `yaml:"output"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// AnalysisConfig configures the pending-lab computation.
type AnalysisConfig struct {
	// Policy is "delay" or "status".
	Policy string `yaml:"policy"`

	// Reference is "start" or "end": the encounter timestamp delays
	// are measured from.
	Reference string `yaml:"reference"`

	// ClassFilter restricts the rate denominator to one encounter
	// class; empty disables the filter.
	ClassFilter string `yaml:"class_filter"`

	// CultureCodes overrides the culture lab code set.
	CultureCodes []string `yaml:"culture_codes"`
}

// InputsConfig configures where input files are read from.
type InputsConfig struct {
	FHIRDir       string `yaml:"fhir_dir"`
	EncounterView string `yaml:"encounter_view"`
	LabView       string `yaml:"lab_view"`
}

// OutputConfig configures where output files are written.
type OutputConfig struct {
	Dir     string `yaml:"dir"`
	NoChart bool   `yaml:"no_chart"`
}

// LoggingConfig configures the CLI logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the default configuration, matching the demo script's
// behavior: delay policy, delays from encounter start, inpatient
// denominator, default culture set, current directory output.
func Default() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			Policy:       tpd.PolicyDelay.String(),
			Reference:    tpd.ReferenceStart.String(),
			ClassFilter:  "IMP",
			CultureCodes: tpd.DefaultCultureCodes(),
		},
		Inputs: InputsConfig{
			FHIRDir:       "synthea/output/fhir",
			EncounterView: "EncounterView.json",
			LabView:       "LabObservationView.json",
		},
		Output: OutputConfig{
			Dir: ".",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the enum-valued fields.
func (c *Config) Validate() error {
	if _, err := tpd.ParsePendingPolicy(c.Analysis.Policy); err != nil {
		return err
	}
	if _, err := tpd.ParseReferenceField(c.Analysis.Reference); err != nil {
		return err
	}
	return nil
}

// Options translates the analysis section into analyzer options.
func (c *Config) Options() ([]tpd.Option, error) {
	policy, err := tpd.ParsePendingPolicy(c.Analysis.Policy)
	if err != nil {
		return nil, err
	}
	reference, err := tpd.ParseReferenceField(c.Analysis.Reference)
	if err != nil {
		return nil, err
	}

	opts := []tpd.Option{
		tpd.WithPolicy(policy),
		tpd.WithReference(reference),
		tpd.WithClassFilter(c.Analysis.ClassFilter),
	}
	if len(c.Analysis.CultureCodes) > 0 {
		opts = append(opts, tpd.WithCultureCodes(c.Analysis.CultureCodes))
	}
	return opts, nil
}
