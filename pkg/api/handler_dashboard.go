package api

import (
	"net/http"

	echo "github.com/labstack/echo/v5"

	"github.com/codeready-toolchain/meerkat/pkg/config"
)

// dashboardHandler handles GET /v1/dashboard?period=.
func (s *Server) dashboardHandler(c *echo.Context) error {
	period := config.Period(c.QueryParam("period"))
	if period == "" {
		period = config.Period7d
	}
	if !period.IsValid() {
		return mapServiceError(&ValidationError{Field: "period", Msg: "unrecognized period"})
	}

	dash, err := s.metricsAggregator.Aggregate(c.Request().Context(), period)
	if err != nil {
		return mapServiceError(err)
	}

	if s.registry != nil && period == config.Period7d {
		s.registry.SetComplianceScore(dash.ComplianceScore)
	}

	topFlags := make([]FlagCountBody, 0, len(dash.TopFlags))
	for _, f := range dash.TopFlags {
		topFlags = append(topFlags, FlagCountBody{Type: f.Type, Count: f.Count})
	}

	return c.JSON(http.StatusOK, &DashboardResponseBody{
		Period:                   string(dash.Period),
		TotalVerifications:       dash.TotalVerifications,
		AvgTrustScore:            dash.AvgTrustScore,
		AutoApproved:             dash.AutoApproved,
		FlaggedForReview:         dash.FlaggedForReview,
		AutoBlocked:              dash.AutoBlocked,
		InjectionAttemptsBlocked: dash.InjectionAttemptsBlocked,
		TopFlags:                 topFlags,
		ComplianceScore:          dash.ComplianceScore,
		Trend:                    string(dash.Trend),
	})
}
