package config

import "time"

// Weights are the per-check fusion weights used to combine CheckResult
// scores into a single trust_score. Weights renormalize over whichever
// checks actually ran (see pkg/orchestrator).
type Weights struct {
	Entailment float64 `yaml:"entailment" validate:"min=0"`
	Entropy    float64 `yaml:"entropy" validate:"min=0"`
	Preference float64 `yaml:"preference" validate:"min=0"`
	Claims     float64 `yaml:"claims" validate:"min=0"`
	Numerical  float64 `yaml:"numerical" validate:"min=0"`
}

// WeightFor returns the configured weight for a single check.
func (w Weights) WeightFor(check GovernanceCheck) float64 {
	switch check {
	case CheckEntailment:
		return w.Entailment
	case CheckSemanticEntropy:
		return w.Entropy
	case CheckImplicitPreference:
		return w.Preference
	case CheckClaimExtraction:
		return w.Claims
	case CheckNumericalVerify:
		return w.Numerical
	default:
		return 0
	}
}

// DefaultWeights returns the default fusion weights from spec.md §3.
func DefaultWeights() Weights {
	return Weights{
		Entailment: 0.40,
		Entropy:    0.25,
		Preference: 0.20,
		Claims:     0.15,
		Numerical:  0.15,
	}
}

// ToleranceRule is the maximum relative deviation tolerated for a numeric
// context type before it is flagged as a mismatch, plus the severity of a
// breach. Keyed by (domain, context_type) in pkg/numerical's built-in
// tables, and optionally overridden per-org here.
type ToleranceRule struct {
	Tolerance   float64  `yaml:"tolerance" validate:"min=0"`
	Severity    Severity `yaml:"severity"`
	Description string   `yaml:"description,omitempty"`
}

// AlertsConfig controls out-of-band notification on BLOCK verdicts. This
// module only exposes the toggle and webhook target; dispatch is left to
// the operator's own plumbing (never a non-goal, but squarely outside the
// scoring core).
type AlertsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Webhook string `yaml:"webhook,omitempty"`
}

// GovernanceConfig is the per-organization configuration for the scoring
// core: thresholds, which checks run by default, domain, and tolerance
// overrides. Matches spec.md §3 "GovernanceConfig" exactly, plus the
// fusion weights spec.md §3 folds into "TrustVerdict".
type GovernanceConfig struct {
	ConfigID         string                     `yaml:"config_id"`
	OrgID            string                     `yaml:"org_id"`
	Domain           DomainType                 `yaml:"domain" validate:"required"`
	ApproveThreshold int                        `yaml:"approve_threshold" validate:"min=0,max=100"`
	BlockThreshold   int                        `yaml:"block_threshold" validate:"min=0,max=100"`
	Weights          Weights                    `yaml:"weights"`
	RequiredChecks   []GovernanceCheck          `yaml:"required_checks"`
	OptionalChecks   []GovernanceCheck          `yaml:"optional_checks"`
	DomainRules      map[string]ToleranceRule   `yaml:"domain_rules,omitempty"`
	Alerts           AlertsConfig               `yaml:"alerts"`
	CreatedAt        time.Time                  `yaml:"-"`
}

// EnabledChecks returns required ∪ optional, deduplicated, in the canonical
// dispatch order from AllChecks().
func (c *GovernanceConfig) EnabledChecks() []GovernanceCheck {
	enabled := make(map[GovernanceCheck]bool, len(c.RequiredChecks)+len(c.OptionalChecks))
	for _, check := range c.RequiredChecks {
		enabled[check] = true
	}
	for _, check := range c.OptionalChecks {
		enabled[check] = true
	}
	result := make([]GovernanceCheck, 0, len(enabled))
	for _, check := range AllChecks() {
		if enabled[check] {
			result = append(result, check)
		}
	}
	return result
}

// DefaultGovernanceConfig returns the process-wide default configuration
// used when a request omits config_id, matching spec.md §3's stated
// defaults (approve=75, block=45, all five checks enabled).
func DefaultGovernanceConfig() *GovernanceConfig {
	return &GovernanceConfig{
		ConfigID:         "default",
		OrgID:            "default",
		Domain:           DomainGeneral,
		ApproveThreshold: 75,
		BlockThreshold:   45,
		Weights:          DefaultWeights(),
		RequiredChecks:   AllChecks(),
		OptionalChecks:   nil,
		CreatedAt:        time.Time{},
	}
}

// StatusFor classifies a trust_score against this config's thresholds.
func (c *GovernanceConfig) StatusFor(trustScore int) VerdictStatus {
	switch {
	case trustScore >= c.ApproveThreshold:
		return StatusPass
	case trustScore >= c.BlockThreshold:
		return StatusFlag
	default:
		return StatusBlock
	}
}
