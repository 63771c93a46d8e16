// Package claims implements the claim extractor/verifier (C6): it pulls
// verifiable factual-claim sentences out of AI output, matches each to the
// source context by keyword overlap, verifies them with bidirectional NLI,
// and cross-references named entities to flag hallucinations. Grounded on
// original_source/meerkat-claim-extractor/app/{extractor,
// clinical_preprocessing,entities,verifier}.py and
// original_source/api/governance/claims.py (heuristic fallback).
package claims

// Status is a claim's verification outcome against the source context.
type Status string

const (
	StatusVerified     Status = "verified"
	StatusContradicted Status = "contradicted"
	StatusUnverified   Status = "unverified"
	StatusUngrounded   Status = "ungrounded"
)

// Claim is one extracted factual-claim candidate, along with its
// verification outcome once Verify has run (spec.md §4.3).
type Claim struct {
	Text            string
	SourceSentence  string
	Entities        []string
	Status          Status
	EntailmentScore float64
}

// Result is the C6 analysis output: the extracted/verified claims, any
// hallucinated entities found by cross-reference, the fused score, and the
// flags raised along the way.
type Result struct {
	Score                float64
	Claims               []Claim
	Total                int
	Verified             int
	Contradicted         int
	Unverified           int
	Ungrounded           int
	HallucinatedEntities []string
	Flags                []string
	Detail               string
	Fallback             bool
}
