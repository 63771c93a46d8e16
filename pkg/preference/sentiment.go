package preference

import (
	"regexp"
	"strings"
)

// Lexicon-based polarity scorer standing in for sentiment.py's
// distilbert-base-uncased-finetuned-sst-2-english classifier (no
// ecosystem sentiment-classification library was present in the retrieval
// pack; see DESIGN.md). Word lists are deliberately small and domain-
// agnostic, covering common evaluative language across legal, financial,
// and healthcare register.
var positiveWords = map[string]bool{
	"good": true, "great": true, "excellent": true, "positive": true,
	"beneficial": true, "effective": true, "favorable": true, "favourable": true,
	"strong": true, "improved": true, "improvement": true, "success": true,
	"successful": true, "recommend": true, "recommended": true, "superior": true,
	"best": true, "safe": true, "stable": true, "promising": true,
	"significant benefit": true, "outperform": true, "bullish": true,
	"undervalued": true, "upside": true, "compliant": true, "lawful": true,
	"reasonable": true, "sound": true, "robust": true, "healthy": true,
	"encouraging": true, "reassuring": true, "gain": true, "gains": true,
	"profit": true, "profitable": true, "resolved": true, "resolving": true,
}

var negativeWords = map[string]bool{
	"bad": true, "poor": true, "negative": true, "harmful": true,
	"ineffective": true, "unfavorable": true, "unfavourable": true,
	"weak": true, "worsened": true, "worsening": true, "failure": true,
	"failed": true, "avoid": true, "inferior": true, "worst": true,
	"unsafe": true, "unstable": true, "concerning": true, "adverse": true,
	"risk": true, "risky": true, "underperform": true, "bearish": true,
	"overvalued": true, "downside": true, "noncompliant": true, "unlawful": true,
	"unreasonable": true, "problematic": true, "alarming": true,
	"decline": true, "declined": true, "declining": true, "loss": true,
	"losses": true, "unprofitable": true, "breach": true, "violation": true,
	"liable": true, "negligent": true, "culpable": true,
}

var sentenceSplitPattern = regexp.MustCompile(`(?:[.!?])\s+`)
var wordSplitPattern = regexp.MustCompile(`[a-zA-Z']+`)

func splitSentencesForSentiment(text string) []string {
	parts := sentenceSplitPattern.Split(strings.TrimSpace(text), -1)
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); len(trimmed) > 5 {
			out = append(out, trimmed)
		}
	}
	return out
}

// scoreSentence returns a (positive, negative) probability pair for one
// sentence, splitting the lexicon-hit count the way the classifier's
// two-way softmax would: ties and hitless sentences land at neutral 0.5/0.5.
func scoreSentence(sentence string) (positive, negative float64) {
	lower := strings.ToLower(sentence)
	words := wordSplitPattern.FindAllString(lower, -1)

	var posHits, negHits int
	for _, w := range words {
		if positiveWords[w] {
			posHits++
		}
		if negativeWords[w] {
			negHits++
		}
	}
	for phrase := range positiveWords {
		if strings.Contains(phrase, " ") && strings.Contains(lower, phrase) {
			posHits++
		}
	}

	total := posHits + negHits
	if total == 0 {
		return 0.5, 0.5
	}
	positive = float64(posHits) / float64(total)
	negative = float64(negHits) / float64(total)
	return positive, negative
}

// AnalyzeSentiment averages per-sentence positive/negative polarity across
// text and labels the result, with a NEUTRAL band when the two averages
// are within 0.15 of each other. Grounded on sentiment.py's
// analyze_sentiment.
func AnalyzeSentiment(text string) SentimentDetail {
	sentences := splitSentencesForSentiment(text)
	if len(sentences) == 0 {
		return SentimentDetail{Label: SentimentNeutral, PositiveScore: 0.5, NegativeScore: 0.5}
	}

	var posTotal, negTotal float64
	for _, s := range sentences {
		p, n := scoreSentence(s)
		posTotal += p
		negTotal += n
	}
	n := float64(len(sentences))
	posAvg := roundTo4(posTotal / n)
	negAvg := roundTo4(negTotal / n)

	label := SentimentNegative
	if posAvg > negAvg {
		label = SentimentPositive
	}
	if absFloat(posAvg-negAvg) < 0.15 {
		label = SentimentNeutral
	}

	return SentimentDetail{Label: label, PositiveScore: posAvg, NegativeScore: negAvg}
}

func absFloat(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func roundTo4(v float64) float64 {
	return float64(int(v*10000+0.5)) / 10000
}
