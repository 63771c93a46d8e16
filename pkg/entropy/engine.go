package entropy

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/codeready-toolchain/meerkat/pkg/generator"
	"github.com/codeready-toolchain/meerkat/pkg/nli"
	"github.com/codeready-toolchain/meerkat/pkg/unionfind"
)

// entailmentThreshold is the per-direction score cutoff used to decide
// whether two completions are bidirectionally equivalent. Matches
// main.py's ENTAILMENT_THRESHOLD; deliberately compares the raw
// Entailment score rather than nli.Result.Entails()'s dominant-label test,
// since that is what the original service does.
const entailmentThreshold = 0.5

// batchSize caps concurrent entailment calls in flight, matching
// entailment_client.py's BATCH_SIZE.
const batchSize = 20

// ErrTooFewCompletions is returned when fewer than two completions are
// available to cluster.
var ErrTooFewCompletions = errors.New("entropy: need at least 2 sampled completions")

// Engine computes semantic entropy for a (question, ai_output) pair by
// sampling completions from a Generator and clustering them with a
// Predictor.
type Engine struct {
	generator generator.Generator
	predictor nli.Predictor
}

// NewEngine wires a completion generator and an NLI predictor into an
// Engine.
func NewEngine(gen generator.Generator, predictor nli.Predictor) *Engine {
	return &Engine{generator: gen, predictor: predictor}
}

// Analyze samples numCompletions completions for question, clusters them by
// bidirectional entailment, and locates aiOutput's cluster membership.
func (e *Engine) Analyze(ctx context.Context, question, aiOutput string, numCompletions int, temperature float64) (*Result, error) {
	start := time.Now()

	if numCompletions < 2 {
		numCompletions = 10
	}
	if numCompletions > 20 {
		numCompletions = 20
	}

	completions, err := e.generator.Generate(ctx, question, temperature, numCompletions)
	if err != nil && !errors.Is(err, generator.ErrInsufficientCompletions) {
		return nil, err
	}
	n := len(completions)
	if n < 2 {
		return nil, ErrTooFewCompletions
	}

	uf := unionfind.New(n)
	if err := e.clusterCompletions(ctx, uf, completions); err != nil {
		return nil, err
	}

	clusterGroups := uf.Clusters()
	rawEntropy, normalized, clusterInfos := computeSemanticEntropy(clusterGroups, completions, n)
	interpretation := Interpret(normalized)

	aiCluster, err := e.locateAIOutputCluster(ctx, aiOutput, completions, clusterInfos)
	if err != nil {
		return nil, err
	}

	largest := largestCluster(clusterInfos)
	inMajority := aiCluster != -1 && largest != nil && aiCluster == largest.ClusterID

	return &Result{
		SemanticEntropy:    roundTo4(normalized),
		RawEntropy:         rawEntropy,
		NumClusters:        len(clusterInfos),
		NumCompletions:     n,
		Clusters:           clusterInfos,
		Interpretation:     interpretation,
		AIOutputCluster:    aiCluster,
		AIOutputInMajority: inMajority,
		Completions:        completions,
		InferenceTimeMs:    float64(time.Since(start).Microseconds()) / 1000.0,
	}, nil
}

// clusterCompletions unions every pair (i, j) whose forward AND backward
// entailment scores both exceed entailmentThreshold, fanning out under a
// batch-of-20 semaphore per entailment_client.py.
func (e *Engine) clusterCompletions(ctx context.Context, uf *unionfind.UnionFind, completions []string) error {
	sem := semaphore.NewWeighted(batchSize)
	g, ctx := errgroup.WithContext(ctx)

	type pairResult struct {
		i, j    int
		related bool
	}
	results := make(chan pairResult, len(completions)*len(completions))

	n := len(completions)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			i, j := i, j
			if err := sem.Acquire(ctx, 1); err != nil {
				return err
			}
			g.Go(func() error {
				defer sem.Release(1)
				related, err := e.bidirectionalAboveThreshold(ctx, completions[i], completions[j])
				if err != nil {
					return err
				}
				results <- pairResult{i: i, j: j, related: related}
				return nil
			})
		}
	}

	go func() {
		_ = g.Wait()
		close(results)
	}()

	var joinErr error
	for r := range results {
		if r.related {
			uf.Union(r.i, r.j)
		}
	}
	if err := g.Wait(); err != nil {
		joinErr = err
	}
	return joinErr
}

// bidirectionalAboveThreshold calls the predictor in both directions and
// reports whether both raw entailment scores exceed entailmentThreshold.
func (e *Engine) bidirectionalAboveThreshold(ctx context.Context, a, b string) (bool, error) {
	forward, err := e.predictor.Predict(ctx, a, b)
	if err != nil {
		return false, err
	}
	if forward.Entailment <= entailmentThreshold {
		return false, nil
	}
	backward, err := e.predictor.Predict(ctx, b, a)
	if err != nil {
		return false, err
	}
	return backward.Entailment > entailmentThreshold, nil
}

// locateAIOutputCluster finds the first completion bidirectionally
// entailed with aiOutput and returns that completion's cluster id, or -1.
func (e *Engine) locateAIOutputCluster(ctx context.Context, aiOutput string, completions []string, clusters []ClusterInfo) (int, error) {
	for i := range completions {
		related, err := e.bidirectionalAboveThreshold(ctx, aiOutput, completions[i])
		if err != nil {
			return -1, err
		}
		if related {
			for _, c := range clusters {
				for _, m := range c.Members {
					if m == i {
						return c.ClusterID, nil
					}
				}
			}
		}
	}
	return -1, nil
}

// computeSemanticEntropy builds ClusterInfo entries (cluster ids assigned
// in ascending order of minimum member index) and computes Shannon entropy over the cluster
// size distribution, normalized by ln(totalN). Grounded on entropy.py's
// compute_semantic_entropy.
func computeSemanticEntropy(clusterGroups map[int][]int, completions []string, totalN int) (float64, float64, []ClusterInfo) {
	// Cluster ids are assigned in ascending order of minimum-member index
	// (spec.md §4.2's ordering guarantee), not by union-find root value —
	// the root of a cluster need not be its smallest member.
	roots := make([]int, 0, len(clusterGroups))
	for root := range clusterGroups {
		roots = append(roots, root)
	}
	sort.Slice(roots, func(i, j int) bool {
		return clusterGroups[roots[i]][0] < clusterGroups[roots[j]][0]
	})

	var clusterInfos []ClusterInfo
	var probabilities []float64

	for cid, root := range roots {
		members := clusterGroups[root]
		p := float64(len(members)) / float64(totalN)
		probabilities = append(probabilities, p)

		representative := completions[members[0]]
		for _, m := range members[1:] {
			if len(completions[m]) < len(representative) {
				representative = completions[m]
			}
		}

		sorted := append([]int(nil), members...)
		sort.Ints(sorted)

		clusterInfos = append(clusterInfos, ClusterInfo{
			ClusterID:      cid,
			Size:           len(members),
			Representative: representative,
			Members:        sorted,
		})
	}

	rawEntropy := 0.0
	for _, p := range probabilities {
		if p > 0 {
			rawEntropy -= p * math.Log(p)
		}
	}

	maxEntropy := 1.0
	if totalN > 1 {
		maxEntropy = math.Log(float64(totalN))
	}
	normalized := 0.0
	if maxEntropy > 0 {
		normalized = rawEntropy / maxEntropy
	}
	if normalized > 1.0 {
		normalized = 1.0
	}
	if normalized < 0.0 {
		normalized = 0.0
	}

	return rawEntropy, normalized, clusterInfos
}

func largestCluster(clusters []ClusterInfo) *ClusterInfo {
	if len(clusters) == 0 {
		return nil
	}
	largest := clusters[0]
	for _, c := range clusters[1:] {
		if c.Size > largest.Size {
			largest = c
		}
	}
	return &largest
}

func roundTo4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
