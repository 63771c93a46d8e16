package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	echo "github.com/labstack/echo/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureHandler_MissingOrgIDIsBadRequest(t *testing.T) {
	s := newTestServer(t)
	body, err := json.Marshal(&ConfigureRequestBody{Domain: "legal"})
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/configure", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err = s.configureHandler(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestConfigureHandler_CreatesConfigAndEnablesAllChecksByDefault(t *testing.T) {
	s := newTestServer(t)
	body, err := json.Marshal(&ConfigureRequestBody{OrgID: "acme", Domain: "financial"})
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/configure", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, s.configureHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp ConfigureResponseBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Created)
	assert.Equal(t, "financial", resp.Domain)
	assert.NotEmpty(t, resp.ConfigID)

	stored, err := s.configStore.GetConfig(c.Request().Context(), resp.ConfigID)
	require.NoError(t, err)
	assert.Len(t, stored.RequiredChecks, 5)
}

func TestConfigureHandler_BlockThresholdAboveApproveIsRejected(t *testing.T) {
	s := newTestServer(t)
	body, err := json.Marshal(&ConfigureRequestBody{
		OrgID: "acme", Domain: "general",
		ApproveThreshold: 50, BlockThreshold: 80,
	})
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/configure", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err = s.configureHandler(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}
