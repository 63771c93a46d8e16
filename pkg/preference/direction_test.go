package preference

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/codeready-toolchain/meerkat/pkg/config"
)

func TestAnalyzeDirection_NoKeywordsIsNeutral(t *testing.T) {
	res := AnalyzeDirection("The weather was mild today.", config.DomainGeneral, "")
	assert.Equal(t, "neutral", res.Direction)
}

func TestAnalyzeDirection_LegalFavorsPlaintiff(t *testing.T) {
	res := AnalyzeDirection("The defendant was negligent and breached the contract, and is liable for damages.", config.DomainLegal, "")
	assert.Equal(t, "favors_plaintiff", res.Direction)
	assert.Equal(t, "plaintiff", res.PartyA)
	assert.Equal(t, "defendant", res.PartyB)
	assert.Greater(t, res.PartyAScore, res.PartyBScore)
}

func TestAnalyzeDirection_FinancialFavorsBuySide(t *testing.T) {
	res := AnalyzeDirection("This stock is undervalued with strong upside potential, a bullish setup.", config.DomainFinancial, "")
	assert.Equal(t, "favors_buy", res.Direction)
}

func TestAnalyzeDirection_ExtractsNamedLegalParties(t *testing.T) {
	res := AnalyzeDirection("The ruling was mixed.", config.DomainLegal, "Smith v. Jones was decided today.")
	assert.Equal(t, "Smith", res.PartyA)
	assert.Equal(t, "Jones", res.PartyB)
}

func TestAnalyzeDirection_EqualKeywordCountsAreBalanced(t *testing.T) {
	res := AnalyzeDirection(
		"The evidence shows the defendant was negligent in some regards, yet the company remained compliant with all regulations.",
		config.DomainLegal, "",
	)
	assert.Equal(t, "balanced", res.Direction)
}
