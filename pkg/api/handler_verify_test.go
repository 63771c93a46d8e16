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

	"github.com/codeready-toolchain/meerkat/pkg/metrics"
	"github.com/codeready-toolchain/meerkat/pkg/orchestrator"
	"github.com/codeready-toolchain/meerkat/pkg/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	mem := store.NewMemoryStore()

	s := NewServer()
	s.SetOrchestrator(orchestrator.New(nil, nil, mem, mem))
	s.SetConfigStore(mem)
	s.SetAuditStore(mem)
	s.SetMetricsAggregator(metrics.New(mem))
	return s
}

func TestVerifyHandler_MissingOutputIsBadRequest(t *testing.T) {
	s := newTestServer(t)
	body, err := json.Marshal(&VerifyRequestBody{Input: "source text"})
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/verify", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err = s.verifyHandler(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestVerifyHandler_ReturnsTrustVerdict(t *testing.T) {
	s := newTestServer(t)
	body, err := json.Marshal(&VerifyRequestBody{
		Input:  "The invoice totals $100.",
		Output: "The invoice totals $100.",
	})
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/verify", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, s.verifyHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var verdict TrustVerdictBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &verdict))
	assert.GreaterOrEqual(t, verdict.TrustScore, 0)
	assert.LessOrEqual(t, verdict.TrustScore, 100)
	assert.NotEmpty(t, verdict.AuditID)
}
