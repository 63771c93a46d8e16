package claims

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/codeready-toolchain/meerkat/pkg/nli"
)

// batchSize caps concurrent per-claim verification in flight, per spec.md
// §5's "claim verifier batches verify calls across claims in groups of 10".
const batchSize = 10

// groundednessThreshold is the minimum keyword-overlap score a claim needs
// against its best-matching source line before NLI verification runs.
const groundednessThreshold = 0.15

// topLinesConsidered bounds how many top-scoring source lines are run
// through bidirectional NLI per claim.
const topLinesConsidered = 3

var tokenPattern = regexp.MustCompile(`[a-zA-Z]{2,}|\d+`)

// stopWords excludes common function words from keyword-overlap scoring,
// transcribed from clinical_preprocessing.py's find_relevant_chunk stop
// list.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "is": true, "was": true, "were": true,
	"are": true, "been": true, "be": true, "have": true, "has": true,
	"had": true, "do": true, "does": true, "did": true, "will": true,
	"would": true, "could": true, "should": true, "may": true, "might": true,
	"shall": true, "can": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true, "as": true, "into": true,
	"that": true, "which": true, "who": true, "whom": true, "this": true,
	"these": true, "those": true, "it": true, "its": true, "not": true,
	"no": true, "nor": true, "so": true, "if": true, "then": true,
	"than": true, "too": true, "very": true, "just": true, "about": true,
	"also": true, "only": true,
}

// tokenize returns lowercase word/number tokens with stop words removed,
// per spec.md §4.3 step 2's "letters ≥2 chars plus digit tokens, minus a
// closed stop-word list".
func tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		if !stopWords[t] {
			out = append(out, t)
		}
	}
	return out
}

func toTokenSet(tokens []string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return set
}

// keywordOverlapScore weighs matched tokens against a line's token set,
// counting entity tokens double so entity-bearing overlaps dominate the
// ranking, matching spec.md §4.3 step 2's "boosting by entity tokens".
func keywordOverlapScore(claimTokens []string, lineTokens, entityTokens map[string]bool) float64 {
	if len(claimTokens) == 0 {
		return 0
	}
	var matched, total float64
	for _, t := range claimTokens {
		weight := 1.0
		if entityTokens[t] {
			weight = 2.0
		}
		total += weight
		if lineTokens[t] {
			matched += weight
		}
	}
	if total == 0 {
		return 0
	}
	return matched / total
}

// verifyClaim scores claim against every source line by keyword overlap,
// applies the groundedness gate, and if grounded runs bidirectional NLI
// against the top topLinesConsidered lines. Grounded on
// verifier.py's _verify_single, generalized from "every source sentence"
// to "top-3 ranked lines".
func verifyClaim(ctx context.Context, predictor nli.Predictor, claim Claim, lines []string, lineTokenSets []map[string]bool, sourceLower string) (Claim, error) {
	claimTokens := tokenize(claim.Text)
	entityTokens := map[string]bool{}
	for _, e := range claim.Entities {
		for _, t := range tokenize(e) {
			entityTokens[t] = true
		}
	}

	type scored struct {
		idx   int
		score float64
	}
	scores := make([]scored, len(lines))
	for i, tokens := range lineTokenSets {
		scores[i] = scored{idx: i, score: keywordOverlapScore(claimTokens, tokens, entityTokens)}
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })

	best := 0.0
	if len(scores) > 0 {
		best = scores[0].score
	}

	entityInSource := false
	for _, e := range claim.Entities {
		if e != "" && strings.Contains(sourceLower, strings.ToLower(e)) {
			entityInSource = true
			break
		}
	}

	if best < groundednessThreshold && !entityInSource {
		claim.Status = StatusUngrounded
		claim.EntailmentScore = 0.0
		return claim, nil
	}

	n := topLinesConsidered
	if len(scores) < n {
		n = len(scores)
	}

	bestStatus := StatusUnverified
	bestScore := 0.5
	for i := 0; i < n; i++ {
		line := lines[scores[i].idx]

		forward, err := predictor.Predict(ctx, line, claim.Text)
		if err != nil {
			return claim, err
		}
		backward, err := predictor.Predict(ctx, claim.Text, line)
		if err != nil {
			return claim, err
		}

		if forward.Entails() && backward.Entails() {
			claim.Status = StatusVerified
			claim.EntailmentScore = 1.0
			return claim, nil
		}
		if forward.Contradicts() || backward.Contradicts() {
			bestStatus = StatusContradicted
			bestScore = 0.0
			continue
		}
		if forward.Entails() && bestStatus != StatusContradicted {
			bestStatus = StatusVerified
			bestScore = 0.8
		}
	}

	claim.Status = bestStatus
	claim.EntailmentScore = bestScore
	return claim, nil
}

// Analyze runs full claim extraction, entity cross-reference, and
// bidirectional-NLI verification over aiOutput against sourceContext, per
// spec.md §4.3.
func Analyze(ctx context.Context, predictor nli.Predictor, aiOutput, sourceContext string) (Result, error) {
	if strings.TrimSpace(sourceContext) == "" {
		return Result{
			Score:  0.5,
			Flags:  []string{"no_context_provided"},
			Detail: "No source context provided; claims cannot be verified.",
		}, nil
	}

	extracted := Extract(aiOutput)
	hallucinated := FindHallucinatedEntities(aiOutput, sourceContext)

	if len(extracted) == 0 {
		res := Result{HallucinatedEntities: hallucinated, Detail: "No factual claims detected in the output."}
		if len(strings.Fields(aiOutput)) > 20 {
			res.Flags = append(res.Flags, "no_claims_extracted")
		}
		applyHallucinationFlags(&res)
		return res, nil
	}

	lines := splitSourceLines(sourceContext)
	lineTokenSets := make([]map[string]bool, len(lines))
	for i, l := range lines {
		lineTokenSets[i] = toTokenSet(tokenize(l))
	}
	sourceLower := strings.ToLower(sourceContext)

	verified := make([]Claim, len(extracted))
	sem := semaphore.NewWeighted(batchSize)
	g, gctx := errgroup.WithContext(ctx)
	for i, c := range extracted {
		i, c := i, c
		if err := sem.Acquire(gctx, 1); err != nil {
			return Result{}, err
		}
		g.Go(func() error {
			defer sem.Release(1)
			out, err := verifyClaim(gctx, predictor, c, lines, lineTokenSets, sourceLower)
			if err != nil {
				return err
			}
			verified[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	res := Result{Claims: verified, HallucinatedEntities: hallucinated, Total: len(verified)}
	for _, c := range verified {
		switch c.Status {
		case StatusVerified:
			res.Verified++
		case StatusContradicted:
			res.Contradicted++
		case StatusUnverified:
			res.Unverified++
		case StatusUngrounded:
			res.Ungrounded++
		}
	}
	if res.Total > 0 {
		res.Score = float64(res.Verified) / float64(res.Total)
	}
	if res.Contradicted > 0 {
		res.Flags = append(res.Flags, "contradicted_claims")
	}
	if float64(res.Unverified) > 0.5*float64(res.Total) {
		res.Flags = append(res.Flags, "majority_unverified")
	}
	applyHallucinationFlags(&res)
	res.Detail = fmt.Sprintf("Extracted %d claim(s): %d verified, %d contradicted, %d unverified, %d ungrounded.",
		res.Total, res.Verified, res.Contradicted, res.Unverified, res.Ungrounded)
	return res, nil
}

func applyHallucinationFlags(res *Result) {
	if len(res.HallucinatedEntities) > 0 {
		res.Flags = append(res.Flags, "hallucinated_entities")
	}
	if len(res.HallucinatedEntities) > 3 {
		res.Flags = append(res.Flags, "many_hallucinated_entities")
	}
}
