package shield

import (
	"regexp"

	"github.com/codeready-toolchain/meerkat/pkg/config"
)

// pattern is one ranked detection rule: a compiled regex plus the
// classification to report on a match.
type pattern struct {
	re          *regexp.Regexp
	attackType  AttackType
	severity    config.Severity
	description string
}

// injectionPatterns is the core ranked detection table, transcribed from
// shield.py's INJECTION_PATTERNS. Order is preserved for reproducible scan
// results; ranking for the final verdict happens separately by severity.
var injectionPatterns = []pattern{
	{regexp.MustCompile(`(?i)ignore\s+(all\s+)?previous\s+instructions`), AttackDirectInjection, config.SeverityHigh,
		"Attempts to override the model's instructions."},
	{regexp.MustCompile(`(?i)forget\s+(all\s+)?(your\s+)?instructions`), AttackDirectInjection, config.SeverityHigh,
		"Attempts to clear the model's instructions."},
	{regexp.MustCompile(`(?i)disregard\s+(all\s+)?(previous|prior|above)`), AttackDirectInjection, config.SeverityHigh,
		"Attempts to disregard prior instructions."},
	{regexp.MustCompile(`(?i)do\s+not\s+follow\s+(your|any|the|previous)`), AttackDirectInjection, config.SeverityHigh,
		"Attempts to prevent the model from following instructions."},
	{regexp.MustCompile(`(?i)override\s+(your|all|any|the)\s+(rules|instructions|guidelines)`), AttackDirectInjection, config.SeverityHigh,
		"Attempts to override the model's rules."},
	{regexp.MustCompile(`(?i)bypass\s+(your|all|any|the)\s+(rules|filters|restrictions|safety)`), AttackDirectInjection, config.SeverityHigh,
		"Attempts to bypass safety mechanisms."},

	{regexp.MustCompile(`(?i)you\s+are\s+now\s+`), AttackRoleManipulation, config.SeverityMedium,
		"Attempts to reassign the model's role."},
	{regexp.MustCompile(`(?i)act\s+as\s+(if\s+you\s+are|a|an)\s+`), AttackRoleManipulation, config.SeverityMedium,
		"Attempts to make the model assume a different identity."},
	{regexp.MustCompile(`(?i)pretend\s+(you\s+are|to\s+be)\s+`), AttackRoleManipulation, config.SeverityMedium,
		"Attempts role-play to bypass safety measures."},
	{regexp.MustCompile(`(?i)from\s+now\s+on\s+you\s+(are|will|must|should)`), AttackRoleManipulation, config.SeverityMedium,
		"Attempts to permanently alter the model's behavior."},

	{regexp.MustCompile(`(?i)(show|reveal|display|print|output)\s+(me\s+)?(your\s+)?(system\s+)?prompt`), AttackPromptExtraction, config.SeverityHigh,
		"Attempts to extract the system prompt."},
	{regexp.MustCompile(`(?i)what\s+(are|is)\s+your\s+(system\s+)?instructions`), AttackPromptExtraction, config.SeverityMedium,
		"Attempts to extract the model's instructions."},
	{regexp.MustCompile(`(?i)repeat\s+(your\s+)?(system\s+)?(prompt|instructions)`), AttackPromptExtraction, config.SeverityHigh,
		"Attempts to make the model repeat its instructions."},
	{regexp.MustCompile(`(?i)(show|reveal)\s+(your\s+)?system\s+message`), AttackPromptExtraction, config.SeverityHigh,
		"Attempts to extract the system message."},

	{regexp.MustCompile(`(?i)do\s+anything\s+now`), AttackJailbreak, config.SeverityHigh,
		"Contains a known jailbreak pattern (DAN)."},
	{regexp.MustCompile(`(?i)developer\s+mode`), AttackJailbreak, config.SeverityHigh,
		"Attempts to enable a fake developer mode."},
	{regexp.MustCompile(`(?i)no\s+restrictions`), AttackJailbreak, config.SeverityHigh,
		"Attempts to remove safety restrictions."},
	{regexp.MustCompile(`(?i)without\s+(any\s+)?(restrictions|limitations|rules|filters)`), AttackJailbreak, config.SeverityMedium,
		"Attempts to operate without safety restrictions."},

	{regexp.MustCompile(`(?i)translate\s+the\s+(above|previous|following)\s+`), AttackIndirectInjection, config.SeverityLow,
		"Possible indirect injection via translation request."},
	{regexp.MustCompile(`(?i)summarize\s+the\s+(above|previous)\s+(text|instructions|message)`), AttackIndirectInjection, config.SeverityLow,
		"Possible indirect injection via summarization request."},
}

// highSensitivityExtras only run when sensitivity is "high", per
// shield.py's HIGH_SENSITIVITY_EXTRAS.
var highSensitivityExtras = []pattern{
	{regexp.MustCompile(`(?i)<\s*/?script`), AttackCodeInjection, config.SeverityMedium,
		"Input contains script tags."},
	{regexp.MustCompile(`\{\{.*\}\}`), AttackTemplateInjection, config.SeverityMedium,
		"Input contains template syntax."},
	{regexp.MustCompile(`(?i)%7B%7B`), AttackTemplateInjection, config.SeverityMedium,
		"Input contains URL-encoded template syntax."},
	{regexp.MustCompile(`[A-Za-z0-9+/]{40,}={0,2}`), AttackObfuscation, config.SeverityMedium,
		"Input contains a possible base64-encoded payload."},
}

// sensitivityThreshold returns how many pattern matches are required to
// raise a threat for the given sensitivity tier.
func sensitivityThreshold(s config.Sensitivity) int {
	if s == config.SensitivityLow {
		return 2
	}
	return 1
}
