package api

import (
	"log/slog"
	"net/http"
	"time"

	echo "github.com/labstack/echo/v5"

	"github.com/codeready-toolchain/meerkat/pkg/config"
	"github.com/codeready-toolchain/meerkat/pkg/shield"
	"github.com/codeready-toolchain/meerkat/pkg/store"
)

// shieldHandler handles POST /v1/shield.
func (s *Server) shieldHandler(c *echo.Context) error {
	var body ShieldRequestBody
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if body.Input == "" {
		return mapServiceError(&ValidationError{Field: "input", Msg: "is required"})
	}

	sensitivity := config.Sensitivity(body.Sensitivity)
	if sensitivity == "" {
		sensitivity = defaultShieldSensitivity
	}
	if !sensitivity.IsValid() {
		return mapServiceError(&ValidationError{Field: "sensitivity", Msg: "unrecognized sensitivity"})
	}
	domain := config.DomainType(body.Domain)
	if domain != "" && !domain.IsValid() {
		return mapServiceError(&ValidationError{Field: "domain", Msg: "unrecognized domain"})
	}

	result := shield.Scan(body.Input, sensitivity)
	s.logShieldScan(c, result, domain, body.Input)
	if s.registry != nil {
		s.registry.RecordShieldScan(string(result.Action))
	}

	var sanitized *string
	if result.HasSanitized {
		sanitized = &result.SanitizedInput
	}

	return c.JSON(http.StatusOK, &ShieldResponseBody{
		Safe:           result.Safe,
		ThreatLevel:    string(result.ThreatLevel),
		AttackType:     string(result.AttackType),
		Detail:         result.Detail,
		Action:         string(result.Action),
		SanitizedInput: sanitized,
	})
}

// logShieldScan appends a lightweight audit record for the scan so the
// metrics aggregator's injection_attempts_blocked counter reflects real
// Shield activity. Failures are logged, not surfaced to the caller — a
// scan result is still useful even if its audit trail write fails.
func (s *Server) logShieldScan(c *echo.Context, result shield.Result, domain config.DomainType, input string) {
	if s.auditStore == nil {
		return
	}
	attackTypes := make([]string, 0, len(result.Matches))
	seen := make(map[string]bool)
	for _, m := range result.Matches {
		if !seen[string(m.AttackType)] {
			seen[string(m.AttackType)] = true
			attackTypes = append(attackTypes, string(m.AttackType))
		}
	}

	status := config.StatusPass
	switch result.Action {
	case config.ActionFlag:
		status = config.StatusFlag
	case config.ActionBlock:
		status = config.StatusBlock
	}

	rec := store.AuditRecord{
		AuditID:        store.NewAuditID(),
		TimestampUTC:   time.Now().UTC(),
		Domain:         domain,
		Plugin:         store.ShieldPluginTag,
		Status:         status,
		Flags:          attackTypes,
		FlagsCount:     len(attackTypes),
		ReviewRequired: result.Action == config.ActionBlock,
		InputSummary:   truncate(input, summaryMaxChars),
		OutputSummary:  truncate(result.Detail, summaryMaxChars),
	}
	if err := s.auditStore.Append(c.Request().Context(), rec); err != nil {
		slog.Warn("failed to append shield audit record", "error", err)
	}
}
