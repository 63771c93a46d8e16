package nli

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Predict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req predictRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		assert.Equal(t, "the sky is blue", req.Premise)
		assert.Equal(t, "the sky has color", req.Hypothesis)

		_ = json.NewEncoder(w).Encode(predictResponse{
			Entailment: 0.9, Contradiction: 0.02, Neutral: 0.08, Label: "entailment",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	result, err := client.Predict(context.Background(), "the sky is blue", "the sky has color")
	require.NoError(t, err)
	assert.Equal(t, LabelEntailment, result.Label)
	assert.InDelta(t, 0.9, result.Entailment, 0.001)
}

func TestClient_PredictUpstreamUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.Predict(context.Background(), "a", "b")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}
