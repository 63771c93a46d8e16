package preference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeready-toolchain/meerkat/pkg/config"
)

func TestAnalyzeCounterfactual_IsANeutralStub(t *testing.T) {
	score, detail := AnalyzeCounterfactual()
	assert.Equal(t, 0.5, score)
	assert.NotEmpty(t, detail.Note)
}

func TestAnalyze_NeutralBalancedTextScoresHigh(t *testing.T) {
	res := Analyze("The meeting covered scheduling for next quarter.", config.DomainGeneral, "")
	assert.False(t, res.BiasDetected)
	assert.GreaterOrEqual(t, res.Score, 0.0)
	assert.LessOrEqual(t, res.Score, 1.0)
}

func TestAnalyze_StronglyOneSidedLegalTextIsFlagged(t *testing.T) {
	res := Analyze(
		"The defendant was clearly negligent and breached the contract, acting unlawfully and causing terrible harm.",
		config.DomainLegal, "",
	)
	assert.True(t, res.BiasDetected)
	assert.Equal(t, "favors_plaintiff", res.Direction)
	assert.Contains(t, res.Flags, "directional_lean")
}

func TestAnalyze_ScoreIsClampedAndRounded(t *testing.T) {
	res := Analyze("", config.DomainGeneral, "")
	require.GreaterOrEqual(t, res.Score, 0.0)
	require.LessOrEqual(t, res.Score, 1.0)
}
