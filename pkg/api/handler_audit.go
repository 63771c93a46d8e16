package api

import (
	"net/http"
	"time"

	echo "github.com/labstack/echo/v5"
)

// auditHandler handles GET /v1/audit/:id.
func (s *Server) auditHandler(c *echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return mapServiceError(&ValidationError{Field: "id", Msg: "is required"})
	}

	rec, err := s.auditStore.GetAudit(c.Request().Context(), id)
	if err != nil {
		return mapServiceError(err)
	}

	checksRun := make([]string, 0, len(rec.ChecksRun))
	for _, check := range rec.ChecksRun {
		checksRun = append(checksRun, string(check))
	}

	return c.JSON(http.StatusOK, &AuditResponseBody{
		AuditID:        rec.AuditID,
		TimestampUTC:   rec.TimestampUTC.UTC().Format(time.RFC3339),
		Domain:         string(rec.Domain),
		User:           rec.User,
		Model:          rec.Model,
		Plugin:         rec.Plugin,
		TrustScore:     rec.TrustScore,
		Status:         string(rec.Status),
		ChecksRun:      checksRun,
		FlagsCount:     rec.FlagsCount,
		ReviewRequired: rec.ReviewRequired,
		InputSummary:   rec.InputSummary,
		OutputSummary:  rec.OutputSummary,
	})
}
