package numerical

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/codeready-toolchain/meerkat/pkg/config"
)

var (
	wordPattern        = regexp.MustCompile(`[a-zA-Z]{2,}`)
	boundedWordPattern = regexp.MustCompile(`\b[a-zA-Z]{2,}\b`)
	digitPattern       = regexp.MustCompile(`\d`)
)

// contextSimilarity scores how likely a and b refer to the same quantity,
// using context-word jaccard overlap plus an immediate-label match boost.
// Grounded on comparator.py's _context_similarity.
func contextSimilarity(a, b ExtractedNumber) float64 {
	wordsA := toSet(wordPattern.FindAllString(strings.ToLower(a.Context), -1))
	wordsB := toSet(wordPattern.FindAllString(strings.ToLower(b.Context), -1))

	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	intersection, union := 0, len(wordsA)
	for w := range wordsB {
		if wordsA[w] {
			intersection++
		} else {
			union++
		}
	}
	jaccard := float64(intersection) / float64(union)

	labelA := extractLabel(a.Context, a.Raw)
	labelB := extractLabel(b.Context, b.Raw)
	if labelA != "" && labelB != "" && labelA == labelB {
		jaccard += 0.4
	}
	return jaccard
}

func toSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// extractLabel returns the lowercase word immediately preceding the number
// within context, matching comparator.py's _extract_label.
func extractLabel(context, raw string) string {
	if raw != "" {
		if idx := strings.Index(context, raw); idx >= 0 {
			pre := strings.TrimRight(context[:idx], " \t\n")
			words := boundedWordPattern.FindAllString(pre, -1)
			if len(words) > 0 {
				return strings.ToLower(words[len(words)-1])
			}
		}
	}
	if loc := digitPattern.FindStringIndex(context); loc != nil {
		pre := strings.TrimRight(context[:loc[0]], " \t\n")
		words := boundedWordPattern.FindAllString(pre, -1)
		if len(words) > 0 {
			return strings.ToLower(words[len(words)-1])
		}
	}
	return ""
}

// computeDeviation returns the relative deviation between source and AI
// values, capping at 999.0 (instead of +Inf) when source is zero and ai is
// not, so the result stays serializable.
func computeDeviation(source, ai float64) float64 {
	if source == 0 && ai == 0 {
		return 0
	}
	if source == 0 {
		return 999.0
	}
	return absFloat(ai-source) / absFloat(source)
}

func absFloat(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// MatchAndCompare pairs each AI number with its best-matching source number
// by context similarity, compares matched pairs against domain tolerances,
// and flags unmatched AI numbers as ungrounded. Grounded on
// comparator.py's match_and_compare.
func MatchAndCompare(cfg *config.GovernanceConfig, domain config.DomainType, sourceNumbers, aiNumbers []ExtractedNumber) ComparisonResult {
	if len(aiNumbers) == 0 {
		return ComparisonResult{
			Score: 1.0, Status: StatusPass,
			NumbersInSource: len(sourceNumbers), NumbersInAI: 0,
			Detail: "No numbers found in AI output to verify.",
		}
	}

	if len(sourceNumbers) == 0 {
		return ComparisonResult{
			Score: 0.5, Status: StatusWarning,
			Ungrounded: aiNumbers,
			NumbersInSource: 0, NumbersInAI: len(aiNumbers),
			Detail: fmt.Sprintf("%d number(s) in AI output but none in source to compare against.", len(aiNumbers)),
		}
	}

	var matches []MatchDetail
	var ungrounded []ExtractedNumber
	usedSource := make(map[int]bool)
	criticalCount := 0

	for _, aiNum := range aiNumbers {
		bestIdx := -1
		bestSim := 0.3

		for i, srcNum := range sourceNumbers {
			if usedSource[i] {
				continue
			}
			sim := contextSimilarity(aiNum, srcNum)
			if aiNum.ContextType == srcNum.ContextType && aiNum.ContextType != ContextDefault {
				sim += 0.2
			}
			if aiNum.Unit != "" && srcNum.Unit != "" && strings.EqualFold(aiNum.Unit, srcNum.Unit) {
				sim += 0.15
			}
			if sim > bestSim {
				bestSim = sim
				bestIdx = i
			}
		}

		if bestIdx == -1 {
			ungrounded = append(ungrounded, aiNum)
			continue
		}

		srcNum := sourceNumbers[bestIdx]
		usedSource[bestIdx] = true

		srcVal, _ := NormalizeValue(srcNum.Value, srcNum.Unit)
		aiVal, _ := NormalizeValue(aiNum.Value, aiNum.Unit)

		rule := GetToleranceRule(cfg, domain, aiNum.ContextType)
		deviation := computeDeviation(srcVal, aiVal)
		withinTol := deviation <= rule.Tolerance

		if !withinTol && rule.Severity == config.SeverityCritical {
			criticalCount++
		}

		verdict := "PASS"
		if !withinTol {
			verdict = "FAIL (" + string(rule.Severity) + ")"
		}
		detail := fmt.Sprintf(
			"%s: source=%s (%s), ai=%s, deviation=%s, tolerance=%s, %s",
			aiNum.ContextType, srcNum.Raw, srcNum.ContextType, aiNum.Raw,
			formatPercent(deviation), formatPercent(rule.Tolerance), verdict,
		)

		matches = append(matches, MatchDetail{
			Source: srcNum, AI: aiNum,
			Similarity: bestSim, Deviation: roundTo(deviation, 4),
			Tolerance: rule, WithinTol: withinTol, Detail: detail,
		})
	}

	var score float64
	if len(matches) == 0 {
		if len(ungrounded) > 0 {
			score = 0.5
		} else {
			score = 1.0
		}
	} else {
		passing := 0
		for _, m := range matches {
			if m.WithinTol {
				passing++
			}
		}
		score = float64(passing) / float64(len(matches))
	}

	var status Status
	switch {
	case criticalCount > 0:
		status = StatusFail
	case score < 0.5:
		status = StatusFail
	case score < 1.0 || len(ungrounded) > 0:
		status = StatusWarning
	default:
		status = StatusPass
	}

	passing := 0
	for _, m := range matches {
		if m.WithinTol {
			passing++
		}
	}
	failing := len(matches) - passing
	detailParts := []string{fmt.Sprintf("%d matched pair(s): %d pass, %d fail.", len(matches), passing, failing)}
	if len(ungrounded) > 0 {
		detailParts = append(detailParts, fmt.Sprintf("%d ungrounded number(s) in AI output.", len(ungrounded)))
	}
	if criticalCount > 0 {
		detailParts = append(detailParts, fmt.Sprintf("%d CRITICAL mismatch(es).", criticalCount))
	}

	return ComparisonResult{
		Score: roundTo(score, 4), Status: status,
		Matches: matches, Ungrounded: ungrounded,
		NumbersInSource: len(sourceNumbers), NumbersInAI: len(aiNumbers),
		CriticalMismatches: criticalCount,
		Detail:             strings.Join(detailParts, " "),
	}
}

func roundTo(v float64, places int) float64 {
	shift := 1.0
	for i := 0; i < places; i++ {
		shift *= 10
	}
	return float64(int64(v*shift+sign(v)*0.5)) / shift
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v*100, 'f', 1, 64) + "%"
}
