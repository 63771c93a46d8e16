package entropy

import (
	"regexp"
	"strings"
)

// hedgeWords signal the model is uncertain; used only by the heuristic
// fallback path, which runs when no entropy engine is configured or when
// the generator/NLI service is unavailable or returns too few completions.
var hedgeWords = map[string]bool{
	"may": true, "might": true, "could": true, "possibly": true, "perhaps": true,
	"uncertain": true, "likely": true, "unlikely": true, "appears": true,
	"seems": true, "arguably": true, "potentially": true, "suggest": true,
	"suggests": true, "probable": true, "presumably": true, "conceivably": true,
}

var hedgePhrases = []string{
	"it is unclear", "it seems", "it appears", "it is possible",
	"it is likely", "it is unlikely", "there may be", "there might be",
	"not entirely clear", "difficult to determine", "hard to say",
	"open to interpretation", "subject to debate",
}

var confidencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b\d+[\s-](?:day|week|month|year|mile)s?\b`),
	regexp.MustCompile(`(?i)(?:Section|Clause|Article)\s+\d`),
	regexp.MustCompile(`\$[\d,]+`),
	regexp.MustCompile(`\d+(?:\.\d+)?%`),
	regexp.MustCompile(`(?i)\b(?:requires|contains|states|specifies|provides|mandates)\b`),
}

var contradictionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bbut\s+(?:also|however)`),
	regexp.MustCompile(`(?i)\bhowever.*(?:nevertheless|nonetheless)`),
	regexp.MustCompile(`(?i)\bon\s+(?:the\s+)?one\s+hand.*on\s+the\s+other`),
}

// FallbackResult is the heuristic-mode equivalent of Result, used when
// spec.md §6's completion generator or NLI predictor is unavailable.
type FallbackResult struct {
	Score  float64
	Flags  []string
	Detail string
}

// CheckFallback scores output's apparent confidence from lexical hedging
// and confidence-booster signals, without sampling or clustering
// completions. Grounded on
// original_source/api/governance/entropy.py's check_entropy.
func CheckFallback(output string) FallbackResult {
	textLower := strings.ToLower(output)
	words := strings.Fields(textLower)
	wordCount := len(words)
	if wordCount == 0 {
		wordCount = 1
	}

	hedgeCount := 0
	for _, w := range words {
		if hedgeWords[w] {
			hedgeCount++
		}
	}
	hedgeRatio := float64(hedgeCount) / float64(wordCount)

	phraseCount := 0
	for _, phrase := range hedgePhrases {
		if strings.Contains(textLower, phrase) {
			phraseCount++
		}
	}

	confidenceCount := 0
	for _, pattern := range confidencePatterns {
		confidenceCount += len(pattern.FindAllString(output, -1))
	}

	contradictionCount := 0
	for _, pattern := range contradictionPatterns {
		if pattern.MatchString(textLower) {
			contradictionCount++
		}
	}

	score := 0.5
	boost := float64(confidenceCount) * 0.08
	if boost > 0.4 {
		boost = 0.4
	}
	score += boost
	score -= hedgeRatio * 3.0
	score -= float64(phraseCount) * 0.08
	score -= float64(contradictionCount) * 0.15

	if wordCount < 20 && confidenceCount == 0 {
		score -= 0.1
	}

	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	score = roundTo4(score)

	var flags []string
	var details []string

	switch {
	case score < 0.35:
		flags = append(flags, "high_uncertainty")
		details = append(details, "Output shows significant hedging and lacks specific details.")
	case score < 0.65:
		flags = append(flags, "moderate_uncertainty")
		details = append(details, "Output contains some hedging language.")
	}

	if contradictionCount > 0 {
		flags = append(flags, "self_contradicting")
		details = append(details, "Output contains self-contradicting statements.")
	}

	if hedgeCount > 0 && len(details) == 0 {
		details = append(details, "Detected hedge word(s) but overall confidence is acceptable.")
	}

	if len(details) == 0 {
		details = append(details, "Output shows high confidence with specific facts and definitive language.")
	}

	return FallbackResult{Score: score, Flags: flags, Detail: strings.Join(details, " ")}
}
