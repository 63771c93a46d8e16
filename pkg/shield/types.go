// Package shield implements the injection classifier (C8): a ranked regex
// pattern table over known prompt-injection techniques, sensitivity-tiered
// activation thresholds, and a severity-based block/flag/allow decision
// with span-redacted sanitization. Grounded on
// original_source/api/routes/shield.py.
package shield

import "github.com/codeready-toolchain/meerkat/pkg/config"

// AttackType names the injection technique a pattern match indicates.
type AttackType string

const (
	AttackDirectInjection   AttackType = "direct_injection"
	AttackRoleManipulation  AttackType = "role_manipulation"
	AttackPromptExtraction  AttackType = "prompt_extraction"
	AttackJailbreak         AttackType = "jailbreak"
	AttackIndirectInjection AttackType = "indirect_injection"
	AttackCodeInjection     AttackType = "code_injection"
	AttackTemplateInjection AttackType = "template_injection"
	AttackObfuscation       AttackType = "obfuscation"
)

// Match is one pattern hit against scanned input.
type Match struct {
	AttackType  AttackType
	Severity    config.Severity
	Description string
	Span        [2]int
}

// Result is the C8 scan output (spec.md §4.5 and the /v1/shield response
// shape).
type Result struct {
	Safe            bool
	ThreatLevel     config.ThreatLevel
	AttackType      AttackType
	Detail          string
	Action          config.ShieldAction
	SanitizedInput  string
	HasSanitized    bool
	Matches         []Match
}
