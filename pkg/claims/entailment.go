package claims

import (
	"context"
	"strings"

	"github.com/codeready-toolchain/meerkat/pkg/nli"
)

// EntailmentResult is the holistic-entailment check's output: does the AI
// output as a whole hold up against the source context, independent of
// any individual-claim breakdown. This is the orchestrator's "entailment"
// check (weight 0.40, spec.md §3) — the coarser, cheaper sibling of the
// full claim-by-claim Analyze pipeline ("claim_extraction", weight 0.15).
type EntailmentResult struct {
	Score  float64
	Status Status
	Flags  []string
	Detail string
}

// AnalyzeEntailment runs a single bidirectional-NLI pass between the whole
// AI output and the whole source context, using the same
// verified/contradicted/unverified scoring ladder as per-claim
// verification (spec.md §4.3 step 4), but over one (output, context) pair
// rather than per-claim, per-line.
func AnalyzeEntailment(ctx context.Context, predictor nli.Predictor, output, sourceContext string) (EntailmentResult, error) {
	if strings.TrimSpace(sourceContext) == "" {
		return EntailmentResult{
			Score:  0.5,
			Status: StatusUnverified,
			Flags:  []string{"no_context_provided"},
			Detail: "No source context provided; entailment cannot be checked.",
		}, nil
	}

	forward, err := predictor.Predict(ctx, sourceContext, output)
	if err != nil {
		return EntailmentResult{}, err
	}
	backward, err := predictor.Predict(ctx, output, sourceContext)
	if err != nil {
		return EntailmentResult{}, err
	}

	switch {
	case forward.Entails() && backward.Entails():
		return EntailmentResult{Score: 1.0, Status: StatusVerified, Detail: "Output is bidirectionally entailed by the source context."}, nil
	case forward.Contradicts() || backward.Contradicts():
		return EntailmentResult{Score: 0.0, Status: StatusContradicted, Flags: []string{"contradicted_claims"}, Detail: "Output contradicts the source context."}, nil
	case forward.Entails():
		return EntailmentResult{Score: 0.8, Status: StatusVerified, Detail: "Output is entailed by the source context (forward only)."}, nil
	default:
		return EntailmentResult{Score: 0.5, Status: StatusUnverified, Detail: "Output is not clearly entailed by the source context."}, nil
	}
}
