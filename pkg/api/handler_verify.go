package api

import (
	"net/http"

	echo "github.com/labstack/echo/v5"

	"github.com/codeready-toolchain/meerkat/pkg/config"
	"github.com/codeready-toolchain/meerkat/pkg/orchestrator"
)

// verifyHandler handles POST /v1/verify.
func (s *Server) verifyHandler(c *echo.Context) error {
	var body VerifyRequestBody
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if body.Output == "" {
		return mapServiceError(&ValidationError{Field: "output", Msg: "is required"})
	}
	domain := config.DomainType(body.Domain)
	if domain == "" {
		domain = config.DomainGeneral
	}
	if !domain.IsValid() {
		return mapServiceError(&ValidationError{Field: "domain", Msg: "unrecognized domain"})
	}

	checks := make([]config.GovernanceCheck, 0, len(body.Checks))
	for _, name := range body.Checks {
		check := config.GovernanceCheck(name)
		if !check.IsValid() {
			return mapServiceError(&ValidationError{Field: "checks", Msg: "unrecognized check " + name})
		}
		checks = append(checks, check)
	}

	req := orchestrator.Request{
		Input:     body.Input,
		Output:    body.Output,
		Context:   body.Context,
		Domain:    domain,
		Checks:    checks,
		ConfigID:  body.ConfigID,
		SessionID: body.SessionID,
		User:      body.User,
		Model:     body.Model,
		Plugin:    body.Plugin,
	}

	verdict, err := s.orchestrator.Verify(c.Request().Context(), req)
	if err != nil {
		return mapServiceError(err)
	}

	checkBodies := make(map[string]CheckResultBody, len(verdict.Checks))
	for name, res := range verdict.Checks {
		checkBodies[string(name)] = CheckResultBody{Score: res.Score, Flags: res.Flags, Detail: res.Detail}
	}

	if s.registry != nil {
		durations := make(map[string]float64, len(verdict.Checks))
		excluded := make(map[string]string)
		for name, res := range verdict.Checks {
			durations[string(name)] = res.DurationMs
			if !res.Included {
				excluded[string(name)] = res.Detail
			}
		}
		s.registry.RecordVerdict(string(verdict.Status), verdict.TrustScore, durations, excluded)
	}

	return c.JSON(http.StatusOK, &TrustVerdictBody{
		TrustScore:      verdict.TrustScore,
		Status:          string(verdict.Status),
		Checks:          checkBodies,
		AuditID:         verdict.AuditID,
		SessionID:       verdict.SessionID,
		LatencyMs:       verdict.LatencyMs,
		Recommendations: verdict.Recommendations,
	})
}
