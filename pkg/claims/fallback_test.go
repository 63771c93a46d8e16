package claims

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeFallback_EmptyContextIsUnverified(t *testing.T) {
	res := AnalyzeFallback("anything", "")
	assert.True(t, res.Fallback)
	assert.Equal(t, 0.5, res.Score)
	assert.Contains(t, res.Flags, "no_context_provided")
}

func TestAnalyzeFallback_NoPatternClaimsFoundScoresNeutralHigh(t *testing.T) {
	res := AnalyzeFallback("Nothing quantifiable was said here.", "some source context")
	assert.True(t, res.Fallback)
	assert.Equal(t, 0.7, res.Score)
	assert.Zero(t, res.Total)
}

func TestAnalyzeFallback_MatchingDurationIsVerified(t *testing.T) {
	res := AnalyzeFallback("You have 30 days to respond.", "The policy requires a 30 day response window.")
	require.Equal(t, 1, res.Total)
	assert.Equal(t, 1, res.Verified)
	assert.Equal(t, 1.0, res.Score)
}

func TestAnalyzeFallback_MismatchedMonetaryValueIsContradicted(t *testing.T) {
	res := AnalyzeFallback("The fine is $500.", "The fine is $750 for violations.")
	require.Equal(t, 1, res.Total)
	assert.Equal(t, 1, res.Contradicted)
	assert.Equal(t, 0.0, res.Score)
	assert.Contains(t, res.Flags[0], "contradicts source")
}

func TestAnalyzeFallback_UnmatchedPercentageIsUnverified(t *testing.T) {
	res := AnalyzeFallback("Sales grew by 15%.", "Nothing about growth rates mentioned here.")
	require.Equal(t, 1, res.Total)
	assert.Equal(t, 1, res.Unverified)
	assert.Contains(t, res.Flags[0], "not found in source")
}

func TestAnalyzeFallback_SectionReferenceIsVerified(t *testing.T) {
	res := AnalyzeFallback("Section 4.2 prohibits this action.", "As stated in Section 4.2, certain actions are prohibited.")
	require.Equal(t, 1, res.Total)
	assert.Equal(t, 1, res.Verified)
}
