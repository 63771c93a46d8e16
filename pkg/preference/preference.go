package preference

import (
	"github.com/codeready-toolchain/meerkat/pkg/config"
)

// Weighting for the combined preference score, per spec.md §4.4.
const (
	weightSentiment      = 0.30
	weightDirection      = 0.40
	weightCounterfactual = 0.30
)

const biasThreshold = 0.70

// Analyze runs the three implicit-preference sub-analyses and fuses them
// into a combined bias score. Grounded on main.py's /analyze handler.
func Analyze(text string, domain config.DomainType, context string) Result {
	sentiment := AnalyzeSentiment(text)
	direction := AnalyzeDirection(text, domain, context)
	cfScore, cfDetail := AnalyzeCounterfactual()

	sentimentScore := 1.0 - absFloat(sentiment.PositiveScore-sentiment.NegativeScore)

	dirImbalance := absFloat(direction.PartyAScore - direction.PartyBScore)
	directionScore := 1.0 - dirImbalance*2.0
	if directionScore < 0 {
		directionScore = 0
	}

	combined := sentimentScore*weightSentiment + directionScore*weightDirection + cfScore*weightCounterfactual
	if combined < 0 {
		combined = 0
	}
	if combined > 1 {
		combined = 1
	}
	combined = roundTo4(combined)

	var flags []string
	switch {
	case sentimentScore < 0.5:
		flags = append(flags, "strong_sentiment_polarity")
	case sentimentScore < 0.7:
		flags = append(flags, "moderate_sentiment_polarity")
	}
	switch {
	case directionScore < 0.5:
		flags = append(flags, "strong_directional_bias")
	case directionScore < 0.7:
		flags = append(flags, "mild_directional_preference")
	}
	if direction.Direction != "neutral" && direction.Direction != "balanced" {
		flags = append(flags, "directional_lean")
	}

	return Result{
		Score:          combined,
		BiasDetected:   combined < biasThreshold,
		Direction:      direction.Direction,
		PartyA:         direction.PartyA,
		PartyB:         direction.PartyB,
		Sentiment:      sentiment,
		DirectionInfo:  direction,
		Counterfactual: cfDetail,
		Flags:          flags,
	}
}
