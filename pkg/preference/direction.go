package preference

import (
	"regexp"
	"strings"

	"github.com/codeready-toolchain/meerkat/pkg/config"
)

// domainKeywords holds the closed per-domain directional keyword sets,
// transcribed from direction.py's DOMAIN_KEYWORDS.
var domainKeywords = map[config.DomainType]map[string][]string{
	config.DomainLegal: {
		"plaintiff": {
			"liable", "negligent", "breach", "at fault", "culpable",
			"responsible for damages", "violated", "failed to comply",
			"in violation", "should be held accountable",
		},
		"defendant": {
			"not liable", "without fault", "compliant", "within rights",
			"no breach", "properly discharged", "acted reasonably",
			"no evidence of negligence", "lawfully", "in good faith",
		},
	},
	config.DomainFinancial: {
		"buy": {
			"strong buy", "undervalued", "upside potential", "growth opportunity",
			"outperform", "bullish", "attractive valuation", "recommend buying",
			"accumulate", "price target above",
		},
		"sell": {
			"overvalued", "downside risk", "sell", "bearish", "underperform",
			"reduce position", "take profits", "declining fundamentals",
			"negative outlook", "price target below",
		},
	},
	config.DomainHealthcare: {
		"treatment": {
			"recommend treatment", "beneficial", "effective therapy",
			"clinically indicated", "evidence supports", "improved outcomes",
			"significant benefit", "first-line treatment", "strongly indicated",
			"favorable risk-benefit",
		},
		"conservative": {
			"watchful waiting", "monitor", "conservative approach",
			"not clinically indicated", "risks outweigh", "defer treatment",
			"insufficient evidence", "observation preferred", "side effects concern",
			"no immediate intervention",
		},
	},
}

var generalKeywords = map[string][]string{
	"option_a": {
		"clearly better", "superior", "strongly recommend", "the best choice",
		"obvious advantage", "far preferable", "without question",
	},
	"option_b": {
		"inferior", "not recommended", "worse option", "should avoid",
		"disadvantage", "problematic", "less suitable",
	},
}

// partyLabels gives the default (party_a, party_b) labels per domain,
// overridden by extractParties when context yields named parties.
var partyLabels = map[config.DomainType][2]string{
	config.DomainLegal:      {"plaintiff", "defendant"},
	config.DomainFinancial:  {"buy_side", "sell_side"},
	config.DomainHealthcare: {"treatment", "conservative"},
}

var legalPartyPattern = regexp.MustCompile(`([A-Z][a-zA-Z\s]+?)\s+(?:v\.|vs\.?|versus)\s+([A-Z][a-zA-Z\s]+?)(?:\s|$|,|\.)`)
var tickerPattern = regexp.MustCompile(`\b([A-Z]{2,5})\b`)
var treatmentPattern = regexp.MustCompile(`(?i)(?:treatment|therapy|medication|drug)[:\s]+([A-Za-z\s]+?)(?:\s|$|,|\.)`)

// extractParties attempts to pull named parties out of context using
// domain-specific patterns, matching direction.py's _extract_parties.
func extractParties(context string, domain config.DomainType) (a, b string) {
	if strings.TrimSpace(context) == "" {
		return "", ""
	}

	switch domain {
	case config.DomainLegal:
		if m := legalPartyPattern.FindStringSubmatch(context); m != nil {
			return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
		}
	case config.DomainFinancial:
		tickers := tickerPattern.FindAllString(context, -1)
		if len(tickers) >= 2 {
			return tickers[0], tickers[1]
		}
		if len(tickers) == 1 {
			return tickers[0], "market"
		}
	case config.DomainHealthcare:
		if m := treatmentPattern.FindStringSubmatch(context); m != nil {
			return strings.TrimSpace(m[1]), "conservative_care"
		}
	}
	return "", ""
}

// AnalyzeDirection detects which of two parties/sides an output favors via
// domain keyword counting, normalized against the larger keyword set.
// Grounded on direction.py's analyze_direction.
func AnalyzeDirection(text string, domain config.DomainType, context string) DirectionDetail {
	lowerText := strings.ToLower(text)

	keywords, ok := domainKeywords[domain]
	if !ok {
		keywords = generalKeywords
	}
	sides := sortedSides(domain)
	sideA, sideB := sides[0], sides[1]

	partyA, partyB := "option_a", "option_b"
	if labels, ok := partyLabels[domain]; ok {
		partyA, partyB = labels[0], labels[1]
	}
	if extractedA, extractedB := extractParties(context, domain); extractedA != "" || extractedB != "" {
		if extractedA != "" {
			partyA = extractedA
		}
		if extractedB != "" {
			partyB = extractedB
		}
	}

	var aFound, bFound []string
	for _, kw := range keywords[sideA] {
		if strings.Contains(lowerText, strings.ToLower(kw)) {
			aFound = append(aFound, kw)
		}
	}
	for _, kw := range keywords[sideB] {
		if strings.Contains(lowerText, strings.ToLower(kw)) {
			bFound = append(bFound, kw)
		}
	}

	aScore, bScore := len(aFound), len(bFound)

	var direction string
	switch {
	case aScore == 0 && bScore == 0:
		direction = "neutral"
	case aScore > bScore:
		direction = "favors_" + sideA
	case bScore > aScore:
		direction = "favors_" + sideB
	default:
		direction = "balanced"
	}

	maxPossible := len(keywords[sideA])
	if len(keywords[sideB]) > maxPossible {
		maxPossible = len(keywords[sideB])
	}
	var aNorm, bNorm float64
	if maxPossible > 0 {
		aNorm = roundTo4(float64(aScore) / float64(maxPossible))
		bNorm = roundTo4(float64(bScore) / float64(maxPossible))
	}

	return DirectionDetail{
		Direction:     direction,
		PartyA:        partyA,
		PartyB:        partyB,
		PartyAScore:   aNorm,
		PartyBScore:   bNorm,
		KeywordsFound: append(aFound, bFound...),
	}
}

// sortedSides returns the two keyword-set keys in the fixed order the
// domain defines them, or the general-purpose (option_a, option_b) order
// when the domain has no dedicated keyword set.
func sortedSides(domain config.DomainType) [2]string {
	switch domain {
	case config.DomainLegal:
		return [2]string{"plaintiff", "defendant"}
	case config.DomainFinancial:
		return [2]string{"buy", "sell"}
	case config.DomainHealthcare:
		return [2]string{"treatment", "conservative"}
	default:
		return [2]string{"option_a", "option_b"}
	}
}
