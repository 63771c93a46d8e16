package claims

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_CausalClaimQualifies(t *testing.T) {
	claims := Extract("Excessive sodium intake causes high blood pressure in most patients.")
	require.Len(t, claims, 1)
	assert.Equal(t, "Excessive sodium intake causes high blood pressure in most patients.", claims[0].Text)
}

func TestExtract_HedgedSentenceIsExcluded(t *testing.T) {
	claims := Extract("It seems that this treatment may help with recovery times.")
	assert.Empty(t, claims)
}

func TestExtract_NumberWithUnitQualifies(t *testing.T) {
	claims := Extract("The treatment improved outcomes by 45 percent for patients.")
	require.Len(t, claims, 1)
}

func TestExtract_GenericSentenceWithNoSignalIsExcluded(t *testing.T) {
	claims := Extract("The weather today is nice.")
	assert.Empty(t, claims)
}

func TestExtract_StripsLeadingTransitionWord(t *testing.T) {
	claims := Extract("However, the dosage was increased to 10 mg daily.")
	require.Len(t, claims, 1)
	assert.Equal(t, "the dosage was increased to 10 mg daily.", claims[0].Text)
}

func TestQualifiesAsClaim_DomainAssertionPattern(t *testing.T) {
	assert.True(t, qualifiesAsClaim("The contract is enforceable under state law."))
}

func TestIsHedged_OpinionMarkersAreHedged(t *testing.T) {
	assert.True(t, isHedged("In my opinion, this was the wrong approach."))
	assert.False(t, isHedged("The dose was increased to 10 mg daily."))
}
