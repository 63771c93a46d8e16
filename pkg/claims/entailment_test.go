package claims

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeready-toolchain/meerkat/pkg/nli"
)

type fnPredictor func(ctx context.Context, premise, hypothesis string) (nli.Result, error)

func (f fnPredictor) Predict(ctx context.Context, premise, hypothesis string) (nli.Result, error) {
	return f(ctx, premise, hypothesis)
}

func TestAnalyzeEntailment_NoContextIsUnverified(t *testing.T) {
	res, err := AnalyzeEntailment(context.Background(), fnPredictor(func(context.Context, string, string) (nli.Result, error) {
		t.Fatal("predictor should not be called with empty context")
		return nli.Result{}, nil
	}), "some output", "")
	require.NoError(t, err)
	assert.Equal(t, 0.5, res.Score)
	assert.Equal(t, StatusUnverified, res.Status)
	assert.Contains(t, res.Flags, "no_context_provided")
}

func TestAnalyzeEntailment_BidirectionalEntailmentIsVerified(t *testing.T) {
	always := fnPredictor(func(context.Context, string, string) (nli.Result, error) {
		return nli.Result{Label: nli.LabelEntailment}, nil
	})
	res, err := AnalyzeEntailment(context.Background(), always, "output", "context")
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.Score)
	assert.Equal(t, StatusVerified, res.Status)
}

func TestAnalyzeEntailment_AnyContradictionIsContradicted(t *testing.T) {
	calls := 0
	p := fnPredictor(func(context.Context, string, string) (nli.Result, error) {
		calls++
		if calls == 1 {
			return nli.Result{Label: nli.LabelEntailment}, nil
		}
		return nli.Result{Label: nli.LabelContradiction}, nil
	})
	res, err := AnalyzeEntailment(context.Background(), p, "output", "context")
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Score)
	assert.Equal(t, StatusContradicted, res.Status)
	assert.Contains(t, res.Flags, "contradicted_claims")
}

func TestAnalyzeEntailment_ForwardOnlyEntailmentScoresPoint8(t *testing.T) {
	calls := 0
	p := fnPredictor(func(context.Context, string, string) (nli.Result, error) {
		calls++
		if calls == 1 {
			return nli.Result{Label: nli.LabelEntailment}, nil
		}
		return nli.Result{Label: nli.LabelNeutral}, nil
	})
	res, err := AnalyzeEntailment(context.Background(), p, "output", "context")
	require.NoError(t, err)
	assert.Equal(t, 0.8, res.Score)
	assert.Equal(t, StatusVerified, res.Status)
}

func TestAnalyzeEntailment_NeitherEntailsNorContradictsIsUnverified(t *testing.T) {
	neutral := fnPredictor(func(context.Context, string, string) (nli.Result, error) {
		return nli.Result{Label: nli.LabelNeutral}, nil
	})
	res, err := AnalyzeEntailment(context.Background(), neutral, "output", "context")
	require.NoError(t, err)
	assert.Equal(t, 0.5, res.Score)
	assert.Equal(t, StatusUnverified, res.Status)
}

func TestAnalyzeEntailment_PredictorErrorPropagates(t *testing.T) {
	boom := errors.New("predictor unavailable")
	p := fnPredictor(func(context.Context, string, string) (nli.Result, error) {
		return nli.Result{}, boom
	})
	_, err := AnalyzeEntailment(context.Background(), p, "output", "context")
	assert.ErrorIs(t, err, boom)
}
