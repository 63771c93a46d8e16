package api

// CheckResultBody is one entry in TrustVerdictBody.Checks.
type CheckResultBody struct {
	Score  float64  `json:"score"`
	Flags  []string `json:"flags,omitempty"`
	Detail string   `json:"detail"`
}

// TrustVerdictBody is returned by POST /v1/verify, per spec.md §3's
// "TrustVerdict".
type TrustVerdictBody struct {
	TrustScore      int                        `json:"trust_score"`
	Status          string                     `json:"status"`
	Checks          map[string]CheckResultBody `json:"checks"`
	AuditID         string                     `json:"audit_id"`
	SessionID       string                     `json:"session_id,omitempty"`
	LatencyMs       float64                    `json:"latency_ms"`
	Recommendations []string                   `json:"recommendations,omitempty"`
}

// ShieldResponseBody is returned by POST /v1/shield.
type ShieldResponseBody struct {
	Safe           bool    `json:"safe"`
	ThreatLevel    string  `json:"threat_level"`
	AttackType     string  `json:"attack_type,omitempty"`
	Detail         string  `json:"detail"`
	Action         string  `json:"action"`
	SanitizedInput *string `json:"sanitized_input,omitempty"`
}

// AuditResponseBody is returned by GET /v1/audit/{id}.
type AuditResponseBody struct {
	AuditID        string   `json:"audit_id"`
	TimestampUTC   string   `json:"timestamp_utc"`
	Domain         string   `json:"domain"`
	User           string   `json:"user,omitempty"`
	Model          string   `json:"model,omitempty"`
	Plugin         string   `json:"plugin,omitempty"`
	TrustScore     int      `json:"trust_score"`
	Status         string   `json:"status"`
	ChecksRun      []string `json:"checks_run"`
	FlagsCount     int      `json:"flags_count"`
	ReviewRequired bool     `json:"review_required"`
	InputSummary   string   `json:"input_summary"`
	OutputSummary  string   `json:"output_summary"`
}

// ConfigureResponseBody is returned by POST /v1/configure.
type ConfigureResponseBody struct {
	ConfigID string `json:"config_id"`
	Status   string `json:"status"`
	Domain   string `json:"domain"`
	Created  bool   `json:"created"`
}

// DashboardResponseBody is returned by GET /v1/dashboard.
type DashboardResponseBody struct {
	Period                   string          `json:"period"`
	TotalVerifications       int             `json:"total_verifications"`
	AvgTrustScore            float64         `json:"avg_trust_score"`
	AutoApproved             int             `json:"auto_approved"`
	FlaggedForReview         int             `json:"flagged_for_review"`
	AutoBlocked              int             `json:"auto_blocked"`
	InjectionAttemptsBlocked int             `json:"injection_attempts_blocked"`
	TopFlags                 []FlagCountBody `json:"top_flags"`
	ComplianceScore          float64         `json:"compliance_score"`
	Trend                    string          `json:"trend"`
}

// FlagCountBody is one row of DashboardResponseBody.TopFlags.
type FlagCountBody struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// HealthResponse is returned by GET /v1/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
