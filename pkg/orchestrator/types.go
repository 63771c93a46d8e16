// Package orchestrator implements the verification orchestrator (C9): it
// resolves a request's governance config, fans out every enabled check
// concurrently, fuses the per-check scores into a single trust_score,
// assigns a PASS/FLAG/BLOCK status, assembles recommendations, and appends
// an audit record. Grounded on original_source/api/routes/verify.py's
// fan-out/fuse/threshold/audit-record structure. Dispatch uses a plain
// sync.WaitGroup rather than errgroup.WithContext: one check's failure or
// timeout must never cancel its siblings (spec.md §5), so each check gets
// its own independent context.WithTimeout instead of a shared group context.
package orchestrator

import (
	"time"

	"github.com/codeready-toolchain/meerkat/pkg/config"
)

// Request is one /v1/verify call, matching spec.md §3's "Request (verify)".
type Request struct {
	Input     string
	Output    string
	Context   string
	Domain    config.DomainType
	Checks    []config.GovernanceCheck
	ConfigID  string
	SessionID string
	User      string
	Model     string
	Plugin    string
}

// CheckResult is one check's contribution to a TrustVerdict, per spec.md
// §3's "CheckResult: {name, score, flags, detail}". Included reports
// whether the check counts toward fusion (false for timeouts and genuine
// failures, per spec.md §4.6).
type CheckResult struct {
	Name     config.GovernanceCheck
	Score    float64
	Flags    []string
	Detail   string
	Included bool

	// DurationMs is wall-clock time spent in this check, surfaced for
	// operational visibility only; it does not affect fusion.
	DurationMs float64
}

// Verdict is the orchestrator's output, matching spec.md §3's
// "TrustVerdict".
type Verdict struct {
	TrustScore      int
	Status          config.VerdictStatus
	Checks          map[config.GovernanceCheck]CheckResult
	AuditID         string
	SessionID       string
	LatencyMs       float64
	Recommendations []string
}

// checkDeadlines are the per-check default deadlines from spec.md §5.
// CheckNumericalVerify has no external collaborator (pure local regex/
// arithmetic) and is given the same bound as Shield/external for
// consistency, though it never approaches it in practice.
var checkDeadlines = map[config.GovernanceCheck]time.Duration{
	config.CheckEntailment:         10 * time.Second,
	config.CheckSemanticEntropy:    180 * time.Second,
	config.CheckImplicitPreference: 60 * time.Second,
	config.CheckClaimExtraction:    120 * time.Second,
	config.CheckNumericalVerify:    30 * time.Second,
}
