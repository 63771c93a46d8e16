package numerical

import (
	"testing"

	"github.com/codeready-toolchain/meerkat/pkg/config"
	"github.com/stretchr/testify/assert"
)

func TestMatchAndCompare_NoAINumbers(t *testing.T) {
	result := MatchAndCompare(nil, config.DomainGeneral, nil, nil)
	assert.Equal(t, 1.0, result.Score)
	assert.Equal(t, StatusPass, result.Status)
}

func TestMatchAndCompare_NoSourceNumbers(t *testing.T) {
	ai := ExtractNumbers("Revenue was $4.2 million.")
	result := MatchAndCompare(nil, config.DomainFinancial, nil, ai)
	assert.Equal(t, 0.5, result.Score)
	assert.Equal(t, StatusWarning, result.Status)
	assert.Len(t, result.Ungrounded, len(ai))
}

func TestMatchAndCompare_MatchingMedicationDoseWithinTolerance(t *testing.T) {
	source := ExtractNumbers("Prescribed lisinopril 10mg daily.")
	ai := ExtractNumbers("The patient takes lisinopril 10mg once a day.")
	result := MatchAndCompare(nil, config.DomainHealthcare, source, ai)
	assert.GreaterOrEqual(t, result.Score, 0.5)
}

func TestMatchAndCompare_MedicationDoseMismatchIsCritical(t *testing.T) {
	source := ExtractNumbers("Prescribed lisinopril 10mg daily.")
	ai := ExtractNumbers("The patient takes lisinopril 20mg once a day.")
	result := MatchAndCompare(nil, config.DomainHealthcare, source, ai)
	assert.Equal(t, StatusFail, result.Status)
	assert.Greater(t, result.CriticalMismatches, 0)
}

func TestMatchAndCompare_LegalMonetaryValueHallucinated(t *testing.T) {
	source := ExtractNumbers("Settlement amount was $50,000.")
	ai := ExtractNumbers("The settlement amount was $500,000.")
	result := MatchAndCompare(nil, config.DomainLegal, source, ai)
	assert.Equal(t, StatusFail, result.Status)
	assert.Greater(t, result.CriticalMismatches, 0)
}

func TestMatchAndCompare_LegalAccurateMonetaryValue(t *testing.T) {
	source := ExtractNumbers("Settlement amount was $50,000.")
	ai := ExtractNumbers("The settlement amount was $50,000.")
	result := MatchAndCompare(nil, config.DomainLegal, source, ai)
	assert.Equal(t, StatusPass, result.Status)
	assert.Equal(t, 0, result.CriticalMismatches)
}

func TestComputeDeviation_ZeroSourceNonZeroAICapsAt999(t *testing.T) {
	assert.Equal(t, 999.0, computeDeviation(0, 5))
}

func TestComputeDeviation_BothZero(t *testing.T) {
	assert.Equal(t, 0.0, computeDeviation(0, 0))
}
