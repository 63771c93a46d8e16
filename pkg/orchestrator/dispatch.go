package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/codeready-toolchain/meerkat/pkg/claims"
	"github.com/codeready-toolchain/meerkat/pkg/config"
	"github.com/codeready-toolchain/meerkat/pkg/entropy"
	"github.com/codeready-toolchain/meerkat/pkg/generator"
	"github.com/codeready-toolchain/meerkat/pkg/nli"
	"github.com/codeready-toolchain/meerkat/pkg/numerical"
	"github.com/codeready-toolchain/meerkat/pkg/preference"
)

// defaultNumCompletions and defaultTemperature match
// original_source/meerkat-semantic-entropy/app/main.py's request defaults
// when a caller doesn't need to tune them per-call.
const (
	defaultNumCompletions = 10
	defaultTemperature    = 1.0
)

// runCheck executes one governance check against req and returns its
// contribution, never an error. Upstream unavailability (and, for entropy,
// too few completions) is handled inside dispatch by a heuristic fallback
// that counts normally; a deadline overrun or any other failure becomes a
// CheckResult with Included=false so fuse() can exclude it from the
// denominator while still surfacing it as a recommendation, per spec.md §4.6.
func (o *Orchestrator) runCheck(ctx context.Context, check config.GovernanceCheck, req Request, cfg *config.GovernanceConfig) CheckResult {
	start := time.Now()
	deadline, ok := checkDeadlines[check]
	if !ok {
		deadline = 30 * time.Second
	}
	cctx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	type outcome struct {
		result CheckResult
	}
	done := make(chan outcome, 1)
	go func() {
		done <- outcome{result: o.dispatch(cctx, check, req, cfg)}
	}()

	select {
	case out := <-done:
		out.result.DurationMs = msSince(start)
		return out.result
	case <-cctx.Done():
		return CheckResult{
			Name:       check,
			Score:      0.5,
			Flags:      []string{"check_timeout"},
			Detail:     fmt.Sprintf("%s exceeded its %s deadline", check, deadline),
			Included:   false,
			DurationMs: msSince(start),
		}
	}
}

// dispatch runs a single check to completion (or to ctx's deadline) and
// translates upstream failures into either a heuristic fallback (counted
// normally) or an excluded failure, per check.
func (o *Orchestrator) dispatch(ctx context.Context, check config.GovernanceCheck, req Request, cfg *config.GovernanceConfig) CheckResult {
	switch check {
	case config.CheckEntailment:
		return o.runEntailment(ctx, req)
	case config.CheckSemanticEntropy:
		return o.runEntropy(ctx, req)
	case config.CheckImplicitPreference:
		return o.runPreference(req)
	case config.CheckClaimExtraction:
		return o.runClaimExtraction(ctx, req)
	case config.CheckNumericalVerify:
		return o.runNumerical(req, cfg)
	default:
		return CheckResult{Name: check, Detail: "unrecognized check", Included: false}
	}
}

func (o *Orchestrator) runEntailment(ctx context.Context, req Request) CheckResult {
	res, err := claims.AnalyzeEntailment(ctx, o.predictor, req.Output, req.Context)
	if err != nil {
		if errors.Is(err, nli.ErrUpstreamUnavailable) {
			fb := claims.AnalyzeFallback(req.Output, req.Context)
			return CheckResult{
				Name: config.CheckEntailment, Score: fb.Score, Flags: fb.Flags,
				Detail: fb.Detail + " (NLI unavailable; keyword fallback used.)", Included: true,
			}
		}
		return failedCheck(config.CheckEntailment, err)
	}
	return CheckResult{Name: config.CheckEntailment, Score: res.Score, Flags: res.Flags, Detail: res.Detail, Included: true}
}

func (o *Orchestrator) runClaimExtraction(ctx context.Context, req Request) CheckResult {
	res, err := claims.Analyze(ctx, o.predictor, req.Output, req.Context)
	if err != nil {
		if errors.Is(err, nli.ErrUpstreamUnavailable) {
			fb := claims.AnalyzeFallback(req.Output, req.Context)
			return CheckResult{Name: config.CheckClaimExtraction, Score: fb.Score, Flags: fb.Flags, Detail: fb.Detail, Included: true}
		}
		return failedCheck(config.CheckClaimExtraction, err)
	}
	return CheckResult{Name: config.CheckClaimExtraction, Score: res.Score, Flags: res.Flags, Detail: res.Detail, Included: true}
}

func (o *Orchestrator) runEntropy(ctx context.Context, req Request) CheckResult {
	if o.entropyEngine == nil {
		fb := entropy.CheckFallback(req.Output)
		return CheckResult{Name: config.CheckSemanticEntropy, Score: fb.Score, Flags: fb.Flags, Detail: fb.Detail, Included: true}
	}
	res, err := o.entropyEngine.Analyze(ctx, req.Input, req.Output, defaultNumCompletions, defaultTemperature)
	if err != nil {
		if errors.Is(err, generator.ErrUpstreamUnavailable) || errors.Is(err, nli.ErrUpstreamUnavailable) || errors.Is(err, entropy.ErrTooFewCompletions) {
			fb := entropy.CheckFallback(req.Output)
			return CheckResult{
				Name: config.CheckSemanticEntropy, Score: fb.Score, Flags: fb.Flags,
				Detail: fb.Detail + " (generator/NLI unavailable; hedging heuristic used.)", Included: true,
			}
		}
		return failedCheck(config.CheckSemanticEntropy, err)
	}

	score := 1.0 - res.SemanticEntropy
	var flags []string
	if res.Interpretation == entropy.InterpretationConfabulationLikely || res.Interpretation == entropy.InterpretationHighUncertainty {
		flags = append(flags, string(res.Interpretation))
	}
	if !res.AIOutputInMajority && res.AIOutputCluster != -1 {
		flags = append(flags, "output_not_in_majority_cluster")
	}
	detail := fmt.Sprintf("%s across %d cluster(s) from %d completions.", res.Interpretation, res.NumClusters, res.NumCompletions)
	return CheckResult{Name: config.CheckSemanticEntropy, Score: score, Flags: flags, Detail: detail, Included: true}
}

func (o *Orchestrator) runPreference(req Request) CheckResult {
	res := preference.Analyze(req.Output, req.Domain, req.Context)
	detail := fmt.Sprintf("sentiment=%s direction=%s", res.Sentiment.Label, res.Direction)
	return CheckResult{Name: config.CheckImplicitPreference, Score: res.Score, Flags: res.Flags, Detail: detail, Included: true}
}

func (o *Orchestrator) runNumerical(req Request, cfg *config.GovernanceConfig) CheckResult {
	if req.Context == "" {
		return CheckResult{
			Name: config.CheckNumericalVerify, Score: 0.5, Flags: []string{"no_context_provided"},
			Detail: "No source context provided; numbers cannot be verified.", Included: true,
		}
	}
	sourceNumbers := numerical.ExtractNumbers(req.Context)
	aiNumbers := numerical.ExtractNumbers(req.Output)
	res := numerical.MatchAndCompare(cfg, req.Domain, sourceNumbers, aiNumbers)

	var flags []string
	if res.CriticalMismatches > 0 {
		flags = append(flags, "critical_mismatch")
	}
	if len(res.Ungrounded) > 0 {
		flags = append(flags, "ungrounded_numbers")
	}
	if res.Status == numerical.StatusFail {
		flags = append(flags, "numerical_fail")
	}
	return CheckResult{Name: config.CheckNumericalVerify, Score: res.Score, Flags: flags, Detail: res.Detail, Included: true}
}

// failedCheck builds the excluded-from-fusion result for a genuine
// (non-fallback-eligible) error: context cancellation, or an upstream
// error type with no defined heuristic fallback.
func failedCheck(check config.GovernanceCheck, err error) CheckResult {
	return CheckResult{Name: check, Detail: err.Error(), Included: false}
}

func msSince(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
