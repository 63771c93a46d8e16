package preference

// AnalyzeCounterfactual is a stubbed consistency check: a full
// implementation would generate a mirror prompt with party names/roles
// swapped, re-run the generator at temperature 0, and compare embedding
// similarity between the two responses — low similarity would indicate
// the model's answer changes with party identity. That requires a
// sentence-embedding model outside this gateway's scope (spec.md §1), so
// it stays a constant-neutral placeholder, matching
// counterfactual.py's stub.
func AnalyzeCounterfactual() (score float64, detail CounterfactualDetail) {
	return 0.5, CounterfactualDetail{
		Note: "Counterfactual check is a stub; mirror-prompt similarity comparison is not implemented.",
	}
}
