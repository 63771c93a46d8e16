package numerical

import (
	"testing"

	"github.com/codeready-toolchain/meerkat/pkg/config"
	"github.com/stretchr/testify/assert"
)

func TestGetToleranceRule_HealthcareMedicationDose(t *testing.T) {
	rule := GetToleranceRule(nil, config.DomainHealthcare, ContextMedicationDose)
	assert.Equal(t, 0.0, rule.Tolerance)
	assert.Equal(t, config.SeverityCritical, rule.Severity)
}

func TestGetToleranceRule_FallsBackToDomainDefault(t *testing.T) {
	rule := GetToleranceRule(nil, config.DomainHealthcare, ContextDefault)
	assert.Equal(t, 0.01, rule.Tolerance)
	assert.Equal(t, config.SeverityMedium, rule.Severity)
}

func TestGetToleranceRule_UnknownDomainFallsBackToUltimateDefault(t *testing.T) {
	rule := GetToleranceRule(nil, config.DomainGeneral, ContextMonetaryValue)
	assert.Equal(t, defaultFallback, rule)
}

func TestGetToleranceRule_PharmaHasNoDefaultEntry(t *testing.T) {
	rule := GetToleranceRule(nil, config.DomainPharma, ContextDuration)
	assert.Equal(t, defaultFallback, rule)
}

func TestGetToleranceRule_ConfigOverrideWins(t *testing.T) {
	cfg := &config.GovernanceConfig{
		Domain: config.DomainHealthcare,
		DomainRules: map[string]config.ToleranceRule{
			"medication_dose": {Tolerance: 0.05, Severity: config.SeverityLow},
		},
	}
	rule := GetToleranceRule(cfg, config.DomainHealthcare, ContextMedicationDose)
	assert.Equal(t, 0.05, rule.Tolerance)
	assert.Equal(t, config.SeverityLow, rule.Severity)
}
