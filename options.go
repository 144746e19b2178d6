package tpdanalysis

import "fmt"

// PendingPolicy selects how an observation is classified as pending.
// The two policies are mutually exclusive and must be chosen explicitly;
// the analyzer never infers one from which columns happen to be present.
type PendingPolicy int

// Pending classification policies.
const (
	// PolicyDelay classifies an observation as pending iff its delay
	// relative to the reference timestamp is strictly greater than zero.
	PolicyDelay PendingPolicy = iota

	// PolicyStatus classifies an observation as pending iff its result
	// status is not the terminal "final" state.
	PolicyStatus
)

// String returns the policy name as used in flags and config files.
func (p PendingPolicy) String() string {
	switch p {
	case PolicyDelay:
		return "delay"
	case PolicyStatus:
		return "status"
	default:
		return fmt.Sprintf("PendingPolicy(%d)", int(p))
	}
}

// ParsePendingPolicy parses a policy name ("delay" or "status").
func ParsePendingPolicy(s string) (PendingPolicy, error) {
	switch s {
	case "delay":
		return PolicyDelay, nil
	case "status":
		return PolicyStatus, nil
	default:
		return PolicyDelay, fmt.Errorf("unknown pending policy %q (want \"delay\" or \"status\")", s)
	}
}

// ReferenceField selects which encounter timestamp the delay is measured
// from under PolicyDelay.
type ReferenceField int

// Reference timestamps for delay computation.
const (
	// ReferenceStart measures delay from the encounter start time.
	// This matches the demo dataset, where stay length is folded into the
	// observation issued time.
	ReferenceStart ReferenceField = iota

	// ReferenceEnd measures delay from the encounter end (discharge) time.
	ReferenceEnd
)

// String returns the field name as used in flags and config files.
func (r ReferenceField) String() string {
	switch r {
	case ReferenceStart:
		return "start"
	case ReferenceEnd:
		return "end"
	default:
		return fmt.Sprintf("ReferenceField(%d)", int(r))
	}
}

// ParseReferenceField parses a reference field name ("start" or "end").
func ParseReferenceField(s string) (ReferenceField, error) {
	switch s {
	case "start":
		return ReferenceStart, nil
	case "end":
		return ReferenceEnd, nil
	default:
		return ReferenceStart, fmt.Errorf("unknown reference field %q (want \"start\" or \"end\")", s)
	}
}

// StatusFinal is the terminal observation status under PolicyStatus.
const StatusFinal = "final"

// Option configures the analysis.
type Option func(*Options)

// Options holds all configuration for the analysis.
type Options struct {
	// Policy selects the pending classification policy.
	Policy PendingPolicy

	// Reference selects the timestamp delays are measured from.
	Reference ReferenceField

	// ClassFilter restricts the rate denominator to encounters of this
	// class (e.g. "IMP" for inpatient). Empty disables the filter.
	ClassFilter string

	// CultureCodes is the set of lab codes counted as culture tests.
	CultureCodes []string
}

// DefaultCultureCodes returns the LOINC codes classified as cultures:
// blood, urine, sputum and wound cultures.
func DefaultCultureCodes() []string {
	return []string{"600-7", "630-4", "43409-2", "6463-4"}
}

// DefaultOptions returns the default configuration: delay-based pending
// classification measured from encounter start, inpatient denominator,
// default culture code set.
func DefaultOptions() *Options {
	return &Options{
		Policy:       PolicyDelay,
		Reference:    ReferenceStart,
		ClassFilter:  "IMP",
		CultureCodes: DefaultCultureCodes(),
	}
}

// WithPolicy sets the pending classification policy.
func WithPolicy(p PendingPolicy) Option {
	return func(o *Options) {
		o.Policy = p
	}
}

// WithReference sets the reference timestamp for delay computation.
func WithReference(r ReferenceField) Option {
	return func(o *Options) {
		o.Reference = r
	}
}

// WithClassFilter restricts the rate denominator to encounters of the
// given class. Pass "" to include all encounters.
func WithClassFilter(class string) Option {
	return func(o *Options) {
		o.ClassFilter = class
	}
}

// WithCultureCodes replaces the culture lab code set.
func WithCultureCodes(codes []string) Option {
	return func(o *Options) {
		o.CultureCodes = codes
	}
}
