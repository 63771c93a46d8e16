// Package nli defines the NLI predictor contract (C1): a black-box service
// that, given a premise and a hypothesis, returns entailment/contradiction/
// neutral probabilities. The model runtime itself is out of scope
// (spec.md §1); this package only defines the contract and an HTTP client
// against it.
package nli

import "context"

// Label is the dominant NLI class for a (premise, hypothesis) pair.
type Label string

const (
	LabelEntailment    Label = "entailment"
	LabelContradiction Label = "contradiction"
	LabelNeutral       Label = "neutral"
)

// Result is the NLI predictor's response for one (premise, hypothesis)
// pair. Entailment, Contradiction, and Neutral sum to ~1.0.
type Result struct {
	Entailment    float64
	Contradiction float64
	Neutral       float64
	Label         Label
}

// Entails reports whether the dominant label is entailment.
func (r Result) Entails() bool {
	return r.Label == LabelEntailment
}

// Contradicts reports whether the dominant label is contradiction.
func (r Result) Contradicts() bool {
	return r.Label == LabelContradiction
}

// Predictor is the C1 contract: given (premise, hypothesis), return NLI
// probabilities and a dominant label.
type Predictor interface {
	Predict(ctx context.Context, premise, hypothesis string) (Result, error)
}

// Bidirectional reports whether a and b mutually entail each other: a
// entails b AND b entails a (the relation of spec.md §4.2 step 2 and §4.3
// step 4). pkg/entropy and pkg/claims make their own Predict calls rather
// than calling this helper.
func Bidirectional(ctx context.Context, p Predictor, a, b string) (bool, error) {
	forward, err := p.Predict(ctx, a, b)
	if err != nil {
		return false, err
	}
	if !forward.Entails() {
		return false, nil
	}
	backward, err := p.Predict(ctx, b, a)
	if err != nil {
		return false, err
	}
	return backward.Entails(), nil
}
