package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	echo "github.com/labstack/echo/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeready-toolchain/meerkat/pkg/config"
	"github.com/codeready-toolchain/meerkat/pkg/store"
)

func TestDashboardHandler_InvalidPeriodIsBadRequest(t *testing.T) {
	s := newTestServer(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/dashboard?period=3d", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := s.dashboardHandler(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestDashboardHandler_DefaultsToSevenDays(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.auditStore.Append(context.Background(), store.AuditRecord{
		AuditID:      "audit-1",
		TimestampUTC: time.Now().UTC(),
		Domain:       config.DomainGeneral,
		TrustScore:   90,
		Status:       config.StatusPass,
	}))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, s.dashboardHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body DashboardResponseBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "7d", body.Period)
	assert.Equal(t, 1, body.TotalVerifications)
	assert.Equal(t, 90.0, body.AvgTrustScore)
}
