package numerical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findByContextType(nums []ExtractedNumber, ct ContextType) []ExtractedNumber {
	var out []ExtractedNumber
	for _, n := range nums {
		if n.ContextType == ct {
			out = append(out, n)
		}
	}
	return out
}

func TestExtractNumbers_MedicationDose(t *testing.T) {
	nums := ExtractNumbers("Patient prescribed 50mg of lisinopril daily.")
	doses := findByContextType(nums, ContextMedicationDose)
	require.NotEmpty(t, doses)
	assert.Equal(t, 50.0, doses[0].Value)
}

func TestExtractNumbers_LabValue(t *testing.T) {
	nums := ExtractNumbers("WBC 14.2, up from prior visit.")
	labs := findByContextType(nums, ContextLabValue)
	require.NotEmpty(t, labs)
	assert.Equal(t, 14.2, labs[0].Value)
}

func TestExtractNumbers_BloodPressure(t *testing.T) {
	nums := ExtractNumbers("BP 120/80 mmHg on arrival.")
	vitals := findByContextType(nums, ContextVitalSign)
	require.Len(t, vitals, 2)
	assert.Equal(t, 120.0, vitals[0].Value)
	assert.Equal(t, 80.0, vitals[1].Value)
	assert.Equal(t, "mmHg", vitals[0].Unit)
}

func TestExtractNumbers_Year(t *testing.T) {
	nums := ExtractNumbers("The contract was signed in 2024 and renewed annually.")
	found := false
	for _, n := range nums {
		if n.Raw == "2024" {
			found = true
			assert.Equal(t, 2024.0, n.Value)
		}
	}
	assert.True(t, found)
}

func TestExtractNumbers_MonetaryWithMultiplier(t *testing.T) {
	nums := ExtractNumbers("Revenue grew to $4.2 million last quarter.")
	money := findByContextType(nums, ContextMonetaryValue)
	require.NotEmpty(t, money)
	assert.InDelta(t, 4_200_000.0, money[0].Value, 0.01)
	assert.Equal(t, "", money[0].Unit)
}

func TestExtractNumbers_Percentage(t *testing.T) {
	nums := ExtractNumbers("The drug showed 87% efficacy in trials.")
	pct := findByContextType(nums, ContextPercentage)
	require.NotEmpty(t, pct)
	assert.Equal(t, 87.0, pct[0].Value)
}

func TestExtractNumbers_SkipsDigitEmbeddedInAbbreviation(t *testing.T) {
	nums := ExtractNumbers("SpO2 was 98% on room air.")
	for _, n := range nums {
		assert.NotEqual(t, "2", n.Raw)
	}
}

func TestExtractNumbers_DurationDefaultMapping(t *testing.T) {
	nums := ExtractNumbers("Treatment lasted 6 months with no complications.")
	durations := findByContextType(nums, ContextDuration)
	require.NotEmpty(t, durations)
	assert.Equal(t, 6.0, durations[0].Value)
}
