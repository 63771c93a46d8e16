package generator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		assert.Equal(t, "gpt-test", req.Model)
		assert.Equal(t, 3, req.N)

		_ = json.NewEncoder(w).Encode(generateResponse{
			Completions: []string{"Paris", "Paris", "London"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "gpt-test", nil)
	completions, err := client.Generate(context.Background(), "Where is the Eiffel Tower?", 1.0, 3)
	require.NoError(t, err)
	assert.Len(t, completions, 3)
}

func TestClient_GenerateInsufficientCompletions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(generateResponse{Completions: []string{"only one"}})
	}))
	defer server.Close()

	client := NewClient(server.URL, "gpt-test", nil)
	_, err := client.Generate(context.Background(), "prompt", 1.0, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientCompletions)
}

func TestClient_GenerateUpstreamUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "gpt-test", nil)
	_, err := client.Generate(context.Background(), "prompt", 1.0, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}
