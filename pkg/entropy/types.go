// Package entropy implements the semantic-entropy engine (C5): it samples N
// completions for a prompt, clusters them by bidirectional NLI entailment,
// and computes the Shannon entropy of the cluster distribution to detect
// confabulation (Farquhar et al. 2024). Grounded on
// original_source/meerkat-semantic-entropy/app/{entropy,entailment_client,
// main,union_find}.py.
package entropy

// ClusterInfo describes one semantic-equivalence cluster of completions.
type ClusterInfo struct {
	ClusterID      int
	Size           int
	Representative string
	Members        []int
}

// Interpretation buckets the normalized entropy into a human-readable
// confabulation-risk label, per entropy.py's interpret_entropy.
type Interpretation string

const (
	InterpretationCertain              Interpretation = "certain"
	InterpretationLowUncertainty       Interpretation = "low_uncertainty"
	InterpretationModerateUncertainty  Interpretation = "moderate_uncertainty"
	InterpretationHighUncertainty      Interpretation = "high_uncertainty"
	InterpretationConfabulationLikely  Interpretation = "confabulation_likely"
)

// Interpret classifies normalized entropy into an Interpretation bucket.
func Interpret(normalized float64) Interpretation {
	switch {
	case normalized < 0.1:
		return InterpretationCertain
	case normalized < 0.3:
		return InterpretationLowUncertainty
	case normalized < 0.5:
		return InterpretationModerateUncertainty
	case normalized < 0.7:
		return InterpretationHighUncertainty
	default:
		return InterpretationConfabulationLikely
	}
}

// Result is the C5 analysis output (spec.md §4.2).
type Result struct {
	SemanticEntropy    float64
	RawEntropy         float64
	NumClusters        int
	NumCompletions     int
	Clusters           []ClusterInfo
	Interpretation     Interpretation
	AIOutputCluster    int
	AIOutputInMajority bool
	Completions        []string
	InferenceTimeMs    float64
	Fallback           bool
}
