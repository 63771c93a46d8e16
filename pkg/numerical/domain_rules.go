package numerical

import "github.com/codeready-toolchain/meerkat/pkg/config"

// defaultFallback is the ultimate tolerance rule when neither the domain
// table nor its "default" entry has a match (spec.md §4.1).
var defaultFallback = config.ToleranceRule{
	Tolerance:   0.01,
	Severity:    config.SeverityMedium,
	Description: "default tolerance",
}

// domainTables transcribes spec.md §4.1's per-domain tolerance tables
// verbatim. Several keys (e.g. "dosage", "p_value", "revenue") are never
// produced by Classify's closed ContextType set; they are kept exactly as
// the spec states them rather than pruned, since spec.md's Data Model
// section is preserved unchanged (see DESIGN.md Open Questions).
var domainTables = map[config.DomainType]map[string]config.ToleranceRule{
	config.DomainHealthcare: {
		"medication_dose": {Tolerance: 0, Severity: config.SeverityCritical, Description: "medication dose must match exactly"},
		"lab_value":       {Tolerance: 0.01, Severity: config.SeverityHigh, Description: "lab value within 1%"},
		"vital_sign":      {Tolerance: 0.02, Severity: config.SeverityHigh, Description: "vital sign within 2%"},
		"count":           {Tolerance: 0, Severity: config.SeverityHigh, Description: "count must match exactly"},
		"duration":        {Tolerance: 0, Severity: config.SeverityCritical, Description: "duration must match exactly"},
		"default":         {Tolerance: 0.01, Severity: config.SeverityMedium, Description: "default healthcare tolerance"},
	},
	config.DomainPharma: {
		"adverse_event_count": {Tolerance: 0, Severity: config.SeverityCritical, Description: "adverse event count must match exactly"},
		"dosage":              {Tolerance: 0, Severity: config.SeverityCritical, Description: "dosage must match exactly"},
		"p_value":             {Tolerance: 0, Severity: config.SeverityHigh, Description: "p-value must match exactly"},
		"efficacy_percentage": {Tolerance: 0.005, Severity: config.SeverityHigh, Description: "efficacy percentage within 0.5%"},
	},
	config.DomainLegal: {
		"monetary_value": {Tolerance: 0, Severity: config.SeverityCritical, Description: "monetary value must match exactly"},
		"duration":       {Tolerance: 0, Severity: config.SeverityCritical, Description: "duration must match exactly"},
		"distance":       {Tolerance: 0.01, Severity: config.SeverityHigh, Description: "distance within 1%"},
		"percentage":     {Tolerance: 0.01, Severity: config.SeverityMedium, Description: "percentage within 1%"},
	},
	config.DomainFinancial: {
		"revenue":     {Tolerance: 0.005, Severity: config.SeverityHigh, Description: "revenue within 0.5%"},
		"percentage":  {Tolerance: 0.001, Severity: config.SeverityHigh, Description: "percentage within 0.1%"},
		"share_count": {Tolerance: 0, Severity: config.SeverityHigh, Description: "share count must match exactly"},
		"ratio":       {Tolerance: 0.01, Severity: config.SeverityMedium, Description: "ratio within 1%"},
	},
}

// GetToleranceRule resolves the tolerance rule for contextType under domain,
// following the fallback chain from spec.md §4.1: a config-supplied
// per-domain override, then the built-in domain table, then that domain's
// "default" entry, then the ultimate 1%/medium fallback.
func GetToleranceRule(cfg *config.GovernanceConfig, domain config.DomainType, contextType ContextType) config.ToleranceRule {
	key := string(contextType)

	if cfg != nil {
		if rule, ok := cfg.DomainRules[key]; ok {
			return rule
		}
	}

	table, ok := domainTables[domain]
	if !ok {
		return defaultFallback
	}
	if rule, ok := table[key]; ok {
		return rule
	}
	if rule, ok := table["default"]; ok {
		return rule
	}
	return defaultFallback
}
