package entropy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeready-toolchain/meerkat/pkg/nli"
)

type stubGenerator struct {
	completions []string
}

func (s stubGenerator) Generate(ctx context.Context, prompt string, temperature float64, n int) ([]string, error) {
	return s.completions, nil
}

// stubPredictor entails two strings iff they are byte-identical.
type stubPredictor struct{}

func (stubPredictor) Predict(ctx context.Context, premise, hypothesis string) (nli.Result, error) {
	if premise == hypothesis {
		return nli.Result{Entailment: 0.95, Label: nli.LabelEntailment}, nil
	}
	return nli.Result{Neutral: 0.9, Label: nli.LabelNeutral}, nil
}

func TestEngine_Analyze_IdenticalCompletionsFormOneCluster(t *testing.T) {
	gen := stubGenerator{completions: []string{"Paris", "Paris", "Paris", "Paris"}}
	engine := NewEngine(gen, stubPredictor{})

	result, err := engine.Analyze(context.Background(), "Where is the Eiffel Tower?", "Paris", 4, 1.0)
	require.NoError(t, err)
	assert.Equal(t, 1, result.NumClusters)
	assert.Equal(t, InterpretationCertain, result.Interpretation)
	assert.True(t, result.AIOutputInMajority)
}

func TestInterpret_Buckets(t *testing.T) {
	assert.Equal(t, InterpretationCertain, Interpret(0.05))
	assert.Equal(t, InterpretationLowUncertainty, Interpret(0.2))
	assert.Equal(t, InterpretationModerateUncertainty, Interpret(0.4))
	assert.Equal(t, InterpretationHighUncertainty, Interpret(0.6))
	assert.Equal(t, InterpretationConfabulationLikely, Interpret(0.9))
}

func TestComputeSemanticEntropy_AllSameClusterIsCertain(t *testing.T) {
	completions := []string{"Paris", "Paris", "Paris"}
	groups := map[int][]int{0: {0, 1, 2}}
	raw, normalized, clusters := computeSemanticEntropy(groups, completions, 3)
	assert.Equal(t, 0.0, raw)
	assert.Equal(t, 0.0, normalized)
	require.Len(t, clusters, 1)
	assert.Equal(t, 3, clusters[0].Size)
}

func TestComputeSemanticEntropy_SplitClustersHaveEntropy(t *testing.T) {
	completions := []string{"Paris", "Paris", "London", "London", "Berlin"}
	groups := map[int][]int{0: {0, 1}, 2: {2, 3}, 4: {4}}
	raw, normalized, clusters := computeSemanticEntropy(groups, completions, 5)
	assert.Greater(t, raw, 0.0)
	assert.Greater(t, normalized, 0.0)
	assert.LessOrEqual(t, normalized, 1.0)
	assert.Len(t, clusters, 3)
}

func TestComputeSemanticEntropy_ClusterIDsAscendingByMinMember(t *testing.T) {
	completions := []string{"a", "b", "c", "d"}
	groups := map[int][]int{3: {2, 3}, 0: {0, 1}}
	_, _, clusters := computeSemanticEntropy(groups, completions, 4)
	require.Len(t, clusters, 2)
	assert.Equal(t, 0, clusters[0].ClusterID)
	assert.Equal(t, []int{0, 1}, clusters[0].Members)
	assert.Equal(t, 1, clusters[1].ClusterID)
	assert.Equal(t, []int{2, 3}, clusters[1].Members)
}

func TestLargestCluster_PicksMaxSize(t *testing.T) {
	clusters := []ClusterInfo{
		{ClusterID: 0, Size: 2},
		{ClusterID: 1, Size: 5},
		{ClusterID: 2, Size: 1},
	}
	largest := largestCluster(clusters)
	require.NotNil(t, largest)
	assert.Equal(t, 1, largest.ClusterID)
}
