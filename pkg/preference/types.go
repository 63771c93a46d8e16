// Package preference implements the implicit-preference analyzer (C7): it
// combines sentiment-polarity balance, domain-specific directional-keyword
// balance, and a counterfactual-consistency stub into a bias score.
// Grounded on
// original_source/meerkat-implicit-preference/app/{sentiment,direction,
// counterfactual,main}.py.
package preference

// SentimentLabel is the dominant polarity of a text's average sentiment.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "POSITIVE"
	SentimentNegative SentimentLabel = "NEGATIVE"
	SentimentNeutral  SentimentLabel = "NEUTRAL"
)

// SentimentDetail is the per-sentence-averaged polarity sub-analysis.
type SentimentDetail struct {
	Label          SentimentLabel
	PositiveScore  float64
	NegativeScore  float64
}

// DirectionDetail is the domain-keyword directional-lean sub-analysis.
type DirectionDetail struct {
	Direction     string
	PartyA        string
	PartyB        string
	PartyAScore   float64
	PartyBScore   float64
	KeywordsFound []string
}

// CounterfactualDetail carries the (currently stubbed) counterfactual
// consistency check's explanatory note.
type CounterfactualDetail struct {
	Note string
}

// Result is the C7 analysis output (spec.md §4.4).
type Result struct {
	Score         float64
	BiasDetected  bool
	Direction     string
	PartyA        string
	PartyB        string
	Sentiment     SentimentDetail
	DirectionInfo DirectionDetail
	Counterfactual CounterfactualDetail
	Flags         []string
}
