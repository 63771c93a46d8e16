package shield

import (
	"fmt"
	"sort"
	"strings"

	"github.com/codeready-toolchain/meerkat/pkg/config"
)

// minSanitizedContent is the minimum non-placeholder character count a
// sanitized copy must retain before it's offered back to the caller,
// matching shield.py's has_useful_content gate.
const minSanitizedContent = 10

// Scan runs the ranked pattern table (plus, at "high" sensitivity, the
// extra heuristic checks) against input and produces a threat verdict.
// Grounded on shield.py's shield handler.
func Scan(input string, sensitivity config.Sensitivity) Result {
	lower := strings.ToLower(input)

	var matches []Match
	for _, p := range injectionPatterns {
		if loc := p.re.FindStringIndex(lower); loc != nil {
			matches = append(matches, Match{AttackType: p.attackType, Severity: p.severity, Description: p.description, Span: [2]int{loc[0], loc[1]}})
		}
	}
	if sensitivity == config.SensitivityHigh {
		for _, p := range highSensitivityExtras {
			if loc := p.re.FindStringIndex(input); loc != nil {
				matches = append(matches, Match{AttackType: p.attackType, Severity: p.severity, Description: p.description, Span: [2]int{loc[0], loc[1]}})
			}
		}
	}

	threshold := sensitivityThreshold(sensitivity)
	if len(matches) < threshold {
		return Result{
			Safe:        true,
			ThreatLevel: config.ThreatNone,
			Detail:      "Input passed all threat checks. No injection patterns detected.",
			Action:      config.ActionAllow,
		}
	}

	// Stable descending sort by severity rank.
	sort.SliceStable(matches, func(i, j int) bool {
		return severityRank(matches[i].Severity) > severityRank(matches[j].Severity)
	})

	primary := matches[0]
	maxSeverity := severityRank(primary.Severity)
	for _, m := range matches[1:] {
		if r := severityRank(m.Severity); r > maxSeverity {
			maxSeverity = r
		}
	}

	var threatLevel config.ThreatLevel
	var action config.ShieldAction
	switch {
	case maxSeverity >= 3 || len(matches) >= 3:
		threatLevel = config.ThreatHigh
		action = config.ActionBlock
	case maxSeverity >= 2 || len(matches) >= 2:
		threatLevel = config.ThreatMedium
		action = config.ActionBlock
	default:
		threatLevel = config.ThreatLow
		action = config.ActionFlag
	}

	detailParts := []string{fmt.Sprintf("%s (Severity: %s.)", primary.Description, strings.ToUpper(string(primary.Severity)))}
	if len(matches) > 1 {
		detailParts = append(detailParts, fmt.Sprintf("%d total threat pattern(s) detected.", len(matches)))
		detailParts = append(detailParts, fmt.Sprintf("Types: %s.", strings.Join(uniqueAttackTypes(matches), ", ")))
	}

	sanitized := input
	for _, p := range injectionPatterns {
		sanitized = p.re.ReplaceAllString(sanitized, "[REMOVED]")
	}
	sanitized = strings.TrimSpace(sanitized)
	residual := strings.TrimSpace(strings.ReplaceAll(sanitized, "[REMOVED]", ""))

	res := Result{
		Safe:        false,
		ThreatLevel: threatLevel,
		AttackType:  primary.AttackType,
		Detail:      strings.Join(detailParts, " "),
		Action:      action,
		Matches:     matches,
	}
	if len(residual) > minSanitizedContent {
		res.SanitizedInput = sanitized
		res.HasSanitized = true
	}
	return res
}

func severityRank(s config.Severity) int {
	switch s {
	case config.SeverityHigh:
		return 3
	case config.SeverityMedium:
		return 2
	case config.SeverityLow:
		return 1
	default:
		return 0
	}
}

func uniqueAttackTypes(matches []Match) []string {
	seen := map[AttackType]bool{}
	var out []string
	for _, m := range matches {
		if !seen[m.AttackType] {
			seen[m.AttackType] = true
			out = append(out, string(m.AttackType))
		}
	}
	sort.Strings(out)
	return out
}
