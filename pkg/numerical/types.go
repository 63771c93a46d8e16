// Package numerical implements the numerical extractor/comparator (C4):
// regex-based number extraction with contextual typing, unit
// normalization, context-based matching, and domain-specific tolerance
// comparison. Grounded on
// original_source/meerkat-numerical-verify/app/{extractor,comparator,
// domain_rules,normalizer}.py.
package numerical

import "github.com/codeready-toolchain/meerkat/pkg/config"

// ContextType classifies the semantic role of an extracted number. Closed
// set per spec.md §3.
type ContextType string

const (
	ContextMedicationDose    ContextType = "medication_dose"
	ContextLabValue          ContextType = "lab_value"
	ContextVitalSign         ContextType = "vital_sign"
	ContextAdverseEventCount ContextType = "adverse_event_count"
	ContextMonetaryValue     ContextType = "monetary_value"
	ContextPercentage        ContextType = "percentage"
	ContextDuration          ContextType = "duration"
	ContextDefault           ContextType = "default"
)

// ExtractedNumber is one numeric token pulled out of a text, with the
// surrounding context needed to match and compare it.
type ExtractedNumber struct {
	Value       float64
	Raw         string
	Unit        string
	Context     string
	ContextType ContextType
	Position    int
}

// Status is the overall pass/fail/warning verdict of a comparison.
type Status string

const (
	StatusPass    Status = "pass"
	StatusFail    Status = "fail"
	StatusWarning Status = "warning"
)

// MatchDetail records one matched (source, ai) number pair and its
// comparison outcome.
type MatchDetail struct {
	Source     ExtractedNumber
	AI         ExtractedNumber
	Similarity float64
	Deviation  float64
	Tolerance  config.ToleranceRule
	WithinTol  bool
	Detail     string
}

// ComparisonResult is the C4 comparator's output (spec.md §4.1).
type ComparisonResult struct {
	Score              float64
	Status             Status
	Matches            []MatchDetail
	Ungrounded         []ExtractedNumber
	NumbersInSource    int
	NumbersInAI        int
	CriticalMismatches int
	Detail             string
}
