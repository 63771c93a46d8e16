package orchestrator

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/codeready-toolchain/meerkat/pkg/config"
	"github.com/codeready-toolchain/meerkat/pkg/entropy"
	"github.com/codeready-toolchain/meerkat/pkg/nli"
	"github.com/codeready-toolchain/meerkat/pkg/store"
)

// summaryMaxChars is the AuditRecord input/output summary truncation
// length, per spec.md §3 "(≤200 chars)".
const summaryMaxChars = 200

// Orchestrator wires the five analyzer components plus the config/audit
// stores into the C9 fan-out/fuse/audit contract.
type Orchestrator struct {
	predictor     nli.Predictor
	entropyEngine *entropy.Engine
	configStore   store.ConfigStore
	auditStore    store.AuditStore
}

// New wires an Orchestrator. entropyEngine may be nil in tests that don't
// exercise the semantic-entropy check; production wiring always supplies
// one (spec.md §5 "loaded eagerly at process start").
func New(predictor nli.Predictor, entropyEngine *entropy.Engine, configStore store.ConfigStore, auditStore store.AuditStore) *Orchestrator {
	return &Orchestrator{
		predictor:     predictor,
		entropyEngine: entropyEngine,
		configStore:   configStore,
		auditStore:    auditStore,
	}
}

// Verify resolves req's governance config, dispatches every enabled check
// concurrently, fuses the results, assigns a status, appends an audit
// record, and returns the verdict. Grounded on
// original_source/api/routes/verify.py.
func (o *Orchestrator) Verify(ctx context.Context, req Request) (Verdict, error) {
	start := time.Now()

	cfg, err := o.resolveConfig(ctx, req.ConfigID)
	if err != nil {
		return Verdict{}, err
	}

	checks := req.Checks
	if len(checks) == 0 {
		checks = cfg.EnabledChecks()
	}

	results := o.fanOut(ctx, checks, req, cfg)

	trustScore, recommendations := fuse(checks, results, cfg.Weights)
	status := cfg.StatusFor(trustScore)

	verdict := Verdict{
		TrustScore:      trustScore,
		Status:          status,
		Checks:          results,
		AuditID:         store.NewAuditID(),
		SessionID:       req.SessionID,
		LatencyMs:       msSince(start),
		Recommendations: recommendations,
	}

	if err := o.appendAudit(ctx, verdict, req, cfg); err != nil {
		return verdict, fmt.Errorf("orchestrator: append audit record: %w", err)
	}
	return verdict, nil
}

// fanOut dispatches checks concurrently, each under its own per-check
// deadline (§5), and collects every result without letting one check's
// failure or cancellation affect its siblings.
func (o *Orchestrator) fanOut(ctx context.Context, checks []config.GovernanceCheck, req Request, cfg *config.GovernanceConfig) map[config.GovernanceCheck]CheckResult {
	results := make(map[config.GovernanceCheck]CheckResult, len(checks))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, check := range checks {
		check := check
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := o.runCheck(ctx, check, req, cfg)
			mu.Lock()
			results[check] = res
			mu.Unlock()
		}()
	}
	wg.Wait()
	return results
}

// fuse combines per-check scores into a 0-100 trust_score over the
// successful (Included) checks only, and builds the recommendation list
// in dispatch order, per spec.md §4.6.
func fuse(checks []config.GovernanceCheck, results map[config.GovernanceCheck]CheckResult, weights config.Weights) (int, []string) {
	var weightedSum, weightSum float64
	var recommendations []string
	anySucceeded := false

	for _, check := range config.AllChecks() {
		res, ran := results[check]
		if !ran {
			continue
		}
		if res.Included {
			anySucceeded = true
			w := weights.WeightFor(check)
			weightedSum += w * res.Score
			weightSum += w
		} else {
			recommendations = append(recommendations, fmt.Sprintf("%s: %s", check, res.Detail))
			continue
		}
		if len(res.Flags) > 0 {
			recommendations = append(recommendations, fmt.Sprintf("%s: %s", check, res.Detail))
		}
	}

	if !anySucceeded || weightSum == 0 {
		return 50, append(recommendations, "no_checks_completed")
	}
	return int(math.Round(100 * weightedSum / weightSum)), recommendations
}

// resolveConfig returns the default configuration when req.ConfigID is
// omitted (spec.md §6 "config_id?" is optional). An explicitly supplied but
// unknown configID is NOT silently coerced to default: it propagates
// store.ErrNotFound so the API layer maps it to 404, per spec.md §7's
// not_found taxonomy entry for "unknown ... config_id".
func (o *Orchestrator) resolveConfig(ctx context.Context, configID string) (*config.GovernanceConfig, error) {
	if configID == "" {
		configID = "default"
	}
	cfg, err := o.configStore.GetConfig(ctx, configID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, fmt.Errorf("orchestrator: config %q: %w", configID, store.ErrNotFound)
		}
		return nil, fmt.Errorf("orchestrator: resolve config %q: %w", configID, err)
	}
	return cfg, nil
}

// appendAudit assembles and persists the immutable AuditRecord for one
// verify call, per spec.md §3's "AuditRecord".
func (o *Orchestrator) appendAudit(ctx context.Context, v Verdict, req Request, cfg *config.GovernanceConfig) error {
	var flags []string
	checksRun := make([]config.GovernanceCheck, 0, len(v.Checks))
	for _, check := range config.AllChecks() {
		res, ok := v.Checks[check]
		if !ok {
			continue
		}
		checksRun = append(checksRun, check)
		flags = append(flags, res.Flags...)
	}

	rec := store.AuditRecord{
		AuditID:        v.AuditID,
		TimestampUTC:   time.Now().UTC(),
		Domain:         req.Domain,
		User:           req.User,
		Model:          req.Model,
		Plugin:         req.Plugin,
		TrustScore:     v.TrustScore,
		Status:         v.Status,
		ChecksRun:      checksRun,
		Flags:          flags,
		FlagsCount:     len(flags),
		ReviewRequired: v.Status != config.StatusPass,
		InputSummary:   truncate(req.Input, summaryMaxChars),
		OutputSummary:  truncate(req.Output, summaryMaxChars),
	}
	return o.auditStore.Append(ctx, rec)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
