package api

import (
	"net/http"
	"time"

	echo "github.com/labstack/echo/v5"

	"github.com/codeready-toolchain/meerkat/pkg/config"
	"github.com/codeready-toolchain/meerkat/pkg/store"
)

// configureHandler handles POST /v1/configure, creating or replacing a
// per-organization GovernanceConfig.
func (s *Server) configureHandler(c *echo.Context) error {
	var body ConfigureRequestBody
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if body.OrgID == "" {
		return mapServiceError(&ValidationError{Field: "org_id", Msg: "is required"})
	}

	domain := config.DomainType(body.Domain)
	if domain == "" {
		domain = config.DomainGeneral
	}
	if !domain.IsValid() {
		return mapServiceError(&ValidationError{Field: "domain", Msg: "unrecognized domain"})
	}

	required, err := parseChecks(body.RequiredChecks, "required_checks")
	if err != nil {
		return mapServiceError(err)
	}
	optional, err := parseChecks(body.OptionalChecks, "optional_checks")
	if err != nil {
		return mapServiceError(err)
	}

	defaults := config.DefaultGovernanceConfig()
	approveThreshold := defaults.ApproveThreshold
	if body.ApproveThreshold != 0 {
		approveThreshold = body.ApproveThreshold
	}
	blockThreshold := defaults.BlockThreshold
	if body.BlockThreshold != 0 {
		blockThreshold = body.BlockThreshold
	}
	if blockThreshold > approveThreshold {
		return mapServiceError(&ValidationError{Field: "block_threshold", Msg: "must not exceed approve_threshold"})
	}

	weights := defaults.Weights
	if body.Weights != nil {
		weights = config.Weights{
			Entailment: body.Weights.Entailment,
			Entropy:    body.Weights.Entropy,
			Preference: body.Weights.Preference,
			Claims:     body.Weights.Claims,
			Numerical:  body.Weights.Numerical,
		}
	}
	if len(required) == 0 && len(optional) == 0 {
		required = config.AllChecks()
	}

	cfg := &config.GovernanceConfig{
		ConfigID:         store.NewConfigID(body.OrgID),
		OrgID:            body.OrgID,
		Domain:           domain,
		ApproveThreshold: approveThreshold,
		BlockThreshold:   blockThreshold,
		Weights:          weights,
		RequiredChecks:   required,
		OptionalChecks:   optional,
		CreatedAt:        time.Now().UTC(),
	}

	if err := s.configStore.Put(c.Request().Context(), cfg); err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, &ConfigureResponseBody{
		ConfigID: cfg.ConfigID,
		Status:   "active",
		Domain:   string(cfg.Domain),
		Created:  true,
	})
}

// parseChecks validates a list of check names from a request body,
// returning a ValidationError tagged with the offending field on the
// first unrecognized entry.
func parseChecks(names []string, field string) ([]config.GovernanceCheck, error) {
	checks := make([]config.GovernanceCheck, 0, len(names))
	for _, name := range names {
		check := config.GovernanceCheck(name)
		if !check.IsValid() {
			return nil, &ValidationError{Field: field, Msg: "unrecognized check " + name}
		}
		checks = append(checks, check)
	}
	return checks, nil
}
