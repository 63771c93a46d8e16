package claims

import (
	"regexp"
	"strings"
)

// causalPatterns flag causal-assertion claims, transcribed from
// extractor.py's CAUSAL_PATTERNS.
var causalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:causes?|caused|causing)\b`),
	regexp.MustCompile(`(?i)\b(?:requires?|required|requiring)\b`),
	regexp.MustCompile(`(?i)\b(?:leads?\s+to|led\s+to|leading\s+to)\b`),
	regexp.MustCompile(`(?i)\b(?:results?\s+in|resulted\s+in|resulting\s+in)\b`),
	regexp.MustCompile(`(?i)\b(?:due\s+to|because\s+of|as\s+a\s+result\s+of)\b`),
	regexp.MustCompile(`(?i)\b(?:therefore|consequently|hence|thus)\b`),
	regexp.MustCompile(`(?i)\bif\s+.+\bthen\b`),
}

// domainAssertionPatterns flag legal/medical/financial assertions,
// transcribed from extractor.py's DOMAIN_ASSERTION_PATTERNS.
var domainAssertionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bis\s+(?:enforceable|binding|prohibited|unlawful|lawful|permitted)\b`),
	regexp.MustCompile(`(?i)\bin\s+(?:breach|violation|compliance|accordance)\b`),
	regexp.MustCompile(`(?i)\b(?:shall|must\s+not|is\s+required\s+to)\b`),
	regexp.MustCompile(`(?i)\bis\s+(?:indicated|contraindicated|diagnosed|prescribed)\b`),
	regexp.MustCompile(`(?i)\b(?:effective\s+(?:for|in|at)|clinically\s+significant)\b`),
	regexp.MustCompile(`(?i)\b(?:associated\s+with|risk\s+(?:of|factor))\b`),
	regexp.MustCompile(`(?i)\bexceeds?\s+(?:threshold|limit|target|benchmark)\b`),
	regexp.MustCompile(`(?i)\b(?:increased|decreased|grew|declined)\s+(?:by|to)\s+\d`),
	regexp.MustCompile(`(?i)\b(?:valued\s+at|priced\s+at|worth)\b`),
}

// medicalFactPatterns catch domain-specific medical-fact phrasing not
// already covered by hasMedicalFact's term lists: demographics, diagnosis
// verbs, medication verbs, lab-value phrases, vital-sign phrases,
// procedure verbs, temporal-medical phrases, and exam findings.
var medicalFactPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b\d+[- ]year[- ]old\b`),
	regexp.MustCompile(`(?i)\b(?:male|female)\s+patient\b`),
	regexp.MustCompile(`(?i)\b(?:diagnosed\s+with|presents?\s+with|admitted\s+(?:for|with))\b`),
	regexp.MustCompile(`(?i)\b(?:prescribed|administered|started\s+on|discontinued|titrated)\b`),
	regexp.MustCompile(`(?i)\b(?:elevated|decreased|within\s+normal\s+limits|abnormal)\s+(?:level|value|count)s?\b`),
	regexp.MustCompile(`(?i)\b(?:blood\s+pressure|heart\s+rate|temperature|oxygen\s+saturation)\s+(?:of|was|is)\b`),
	regexp.MustCompile(`(?i)\b(?:underwent|performed|scheduled\s+for)\s+\w+\b`),
	regexp.MustCompile(`(?i)\b(?:on\s+(?:day|admission|discharge)|post-?operative(?:ly)?|follow-?up)\b`),
	regexp.MustCompile(`(?i)\b(?:exam(?:ination)?\s+(?:revealed|showed|notable\s+for))\b`),
}

// hedgePatterns mark opinion-hedged sentences, which the claim-extraction
// gate excludes. The clinical-possibility modals "may/might/could" are NOT
// hedges here (spec.md §4.3), unlike extractor.py's HEDGE_PATTERNS (which
// hedges on them). Every other opinion-hedge pattern from extractor.py is
// kept.
var hedgePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:possibly|perhaps|probably)\b`),
	regexp.MustCompile(`(?i)\b(?:it\s+(?:seems|appears)|(?:seems|appears)\s+(?:to|that))\b`),
	regexp.MustCompile(`(?i)\b(?:in\s+my\s+opinion|I\s+think|I\s+believe)\b`),
	regexp.MustCompile(`(?i)\b(?:arguably|debatable|uncertain)\b`),
}

var numberWithUnitPattern = regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s*(?:%|percent|dollars?|USD|EUR|GBP|kg|mg|ml|km|miles?|months?|years?|days?|hours?|minutes?|billion|million|thousand)\b`)

var leadingTransitionPattern = regexp.MustCompile(`(?i)^(?:However|Additionally|Furthermore|Moreover|Also|In addition),?\s*`)

// isHedged reports whether sentence matches any opinion-hedge pattern.
// "may", "might", and "could" are deliberately excluded per spec.md §4.3.
func isHedged(sentence string) bool {
	for _, p := range hedgePatterns {
		if p.MatchString(sentence) {
			return true
		}
	}
	return false
}

func matchesAny(text string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// qualifiesAsClaim reports whether sentence passes at least one of
// spec.md §4.3's five claim-qualification tests.
func qualifiesAsClaim(sentence string) bool {
	return hasFactualEntity(sentence) ||
		numberWithUnitPattern.MatchString(sentence) ||
		matchesAny(sentence, causalPatterns) ||
		matchesAny(sentence, domainAssertionPatterns) ||
		matchesAny(sentence, medicalFactPatterns) ||
		hasMedicalFact(sentence)
}

// cleanClaimText strips a leading transitional conjunction, matching
// extractor.py's _clean_claim.
func cleanClaimText(sentence string) string {
	return strings.TrimSpace(leadingTransitionPattern.ReplaceAllString(sentence, ""))
}

// Extract splits aiOutput into sentences and returns the subset that
// qualify as verifiable factual claims, per spec.md §4.3's extraction
// rule.
func Extract(aiOutput string) []Claim {
	var out []Claim
	for _, sent := range splitClinicalSentences(aiOutput) {
		if len(sent) < 10 {
			continue
		}
		if isHedged(sent) {
			continue
		}
		if !qualifiesAsClaim(sent) {
			continue
		}
		out = append(out, Claim{
			Text:            cleanClaimText(sent),
			SourceSentence:  sent,
			Entities:        extractEntitySpans(sent),
			Status:          StatusUnverified,
			EntailmentScore: 0.5,
		})
	}
	return out
}
