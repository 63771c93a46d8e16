package entropy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckFallback_ConfidentFactualText(t *testing.T) {
	out := "The contract requires payment within 30 days and specifies a $5,000 penalty for late delivery under Section 4."
	result := CheckFallback(out)
	assert.Greater(t, result.Score, 0.5)
	assert.Empty(t, result.Flags)
}

func TestCheckFallback_HedgyUncertainText(t *testing.T) {
	out := "It is unclear, but it might possibly be the case that the result could perhaps be arguably uncertain."
	result := CheckFallback(out)
	assert.Less(t, result.Score, 0.35)
	assert.Contains(t, result.Flags, "high_uncertainty")
}

func TestCheckFallback_SelfContradictingText(t *testing.T) {
	out := "The policy covers all claims but also however excludes pre-existing conditions entirely without exception whatsoever today."
	result := CheckFallback(out)
	assert.Contains(t, result.Flags, "self_contradicting")
}
