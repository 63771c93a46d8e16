package claims

import (
	"fmt"
	"regexp"
	"strings"
)

// fallbackClaim is a lightweight pattern-extracted claim used only by the
// heuristic fallback path (spec.md §7's upstream_unavailable handling for
// claim_extraction), grounded on
// original_source/api/governance/claims.py's demo-mode extractor.
type fallbackClaim struct {
	text, kind, value, unit string
}

var (
	fallbackDurationPattern = regexp.MustCompile(`(?i)(\d+)[\s-]*(day|week|month|year|mile)s?`)
	fallbackMoneyPattern    = regexp.MustCompile(`\$[\d,]+(?:\.\d+)?`)
	fallbackPercentPattern  = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)
	fallbackSectionPattern  = regexp.MustCompile(`(?i)(?:Section|Clause|Article)\s+(\d+(?:\.\d+)*)`)
)

func extractFallbackClaims(output string) []fallbackClaim {
	var claims []fallbackClaim

	for _, m := range fallbackDurationPattern.FindAllStringSubmatch(output, -1) {
		claims = append(claims, fallbackClaim{text: m[0], kind: "duration", value: m[1], unit: strings.ToLower(m[2])})
	}
	for _, m := range fallbackMoneyPattern.FindAllString(output, -1) {
		claims = append(claims, fallbackClaim{text: m, kind: "monetary", value: m, unit: "dollars"})
	}
	for _, m := range fallbackPercentPattern.FindAllStringSubmatch(output, -1) {
		claims = append(claims, fallbackClaim{text: m[0], kind: "percentage", value: m[1], unit: "percent"})
	}
	for _, m := range fallbackSectionPattern.FindAllStringSubmatch(output, -1) {
		claims = append(claims, fallbackClaim{text: m[0], kind: "section_ref", value: m[1], unit: "section"})
	}

	return claims
}

// verifyFallbackClaim checks a single pattern-extracted claim against
// context using plain substring matching, transcribed from claims.py's
// _verify_claim (duration/monetary/section_ref branches; the geographic
// branch is out of scope since spec.md's NER fallback has no domain geo
// list).
func verifyFallbackClaim(c fallbackClaim, contextLower string) Status {
	switch c.kind {
	case "duration":
		unitPattern := regexp.MustCompile(fmt.Sprintf(`(\d+)[\s-]*%ss?`, regexp.QuoteMeta(c.unit)))
		matches := unitPattern.FindAllStringSubmatch(contextLower, -1)
		if len(matches) == 0 {
			return StatusUnverified
		}
		for _, m := range matches {
			if m[1] == c.value {
				return StatusVerified
			}
		}
		return StatusContradicted
	case "monetary":
		if strings.Contains(contextLower, strings.ToLower(c.value)) {
			return StatusVerified
		}
		if fallbackMoneyPattern.MatchString(contextLower) {
			return StatusContradicted
		}
		return StatusUnverified
	case "section_ref":
		if strings.Contains(contextLower, c.value) || strings.Contains(contextLower, "section "+c.value) {
			return StatusVerified
		}
		return StatusUnverified
	default:
		if strings.Contains(contextLower, strings.ToLower(c.value)) {
			return StatusVerified
		}
		return StatusUnverified
	}
}

// AnalyzeFallback scores claim groundedness with plain pattern matching and
// substring search, used when the NLI predictor is unreachable (spec.md §7,
// "upstream_unavailable ... keyword-based claim ... scorer"). Results carry
// a detail suffix flagging heuristic mode so callers can distinguish it
// from a full NLI-backed Analyze.
func AnalyzeFallback(aiOutput, sourceContext string) Result {
	if strings.TrimSpace(sourceContext) == "" {
		return Result{
			Score:    0.5,
			Flags:    []string{"no_context_provided"},
			Detail:   "No source context provided; claims cannot be verified. (heuristic mode)",
			Fallback: true,
		}
	}

	fallbackClaims := extractFallbackClaims(aiOutput)
	if len(fallbackClaims) == 0 {
		return Result{
			Score:    0.7,
			Detail:   "No specific factual claims detected in the output. (heuristic mode)",
			Fallback: true,
		}
	}

	contextLower := strings.ToLower(sourceContext)
	res := Result{Fallback: true, Total: len(fallbackClaims)}
	var flags []string
	for _, c := range fallbackClaims {
		status := verifyFallbackClaim(c, contextLower)
		claim := Claim{Text: c.text, SourceSentence: c.text, Status: status}
		switch status {
		case StatusVerified:
			res.Verified++
			claim.EntailmentScore = 1.0
		case StatusContradicted:
			res.Contradicted++
			claim.EntailmentScore = 0.0
			flags = append(flags, fmt.Sprintf("claim: '%s' contradicts source", c.text))
		default:
			res.Unverified++
			claim.EntailmentScore = 0.5
			flags = append(flags, fmt.Sprintf("claim: '%s' not found in source", c.text))
		}
		res.Claims = append(res.Claims, claim)
	}

	verifiedRatio := float64(res.Verified) / float64(res.Total)
	contradictionPenalty := float64(res.Contradicted) * 0.25
	unverifiedPenalty := float64(res.Unverified) * 0.05
	score := verifiedRatio - contradictionPenalty - unverifiedPenalty
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	res.Score = score
	res.Flags = flags
	res.Detail = fmt.Sprintf("Extracted %d factual claim(s). %d verified, %d unverified, %d contradicted. (heuristic mode)",
		res.Total, res.Verified, res.Unverified, res.Contradicted)
	return res
}
