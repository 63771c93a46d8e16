// Package generator defines the completion-generator contract (C2): a
// black-box LLM that, given a prompt, temperature, and N, returns N string
// completions. The model itself is out of scope (spec.md §1); this
// package defines the contract and an HTTP client against it.
package generator

import "context"

// Generator is the C2 contract.
type Generator interface {
	Generate(ctx context.Context, prompt string, temperature float64, n int) ([]string, error)
}
