package nli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// ErrUpstreamUnavailable is returned when the NLI service is unreachable or
// returns a non-2xx status, matching spec.md §7's upstream_unavailable
// taxonomy entry.
var ErrUpstreamUnavailable = errors.New("nli: upstream unavailable")

// Client is the HTTP implementation of Predictor against NLI_URL. It is
// process-wide and safe for concurrent use (spec.md §5 "shared resources"),
// pooling connections via the standard http.Client transport and wrapping
// calls in a circuit breaker so a flapping NLI service degrades fast
// instead of stacking up timeouts under the orchestrator's fan-out.
type Client struct {
	httpClient *http.Client
	baseURL    string
	breaker    *gobreaker.CircuitBreaker
}

// NewClient creates an HTTP-backed Predictor against baseURL (NLI_URL).
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "nli-predictor",
		MaxRequests: 5,
		Interval:    30 * time.Second,
		Timeout:     15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return &Client{httpClient: httpClient, baseURL: baseURL, breaker: breaker}
}

type predictRequest struct {
	Premise    string `json:"premise"`
	Hypothesis string `json:"hypothesis"`
}

type predictResponse struct {
	Entailment    float64 `json:"entailment"`
	Contradiction float64 `json:"contradiction"`
	Neutral       float64 `json:"neutral"`
	Label         string  `json:"label"`
}

// Predict implements Predictor by POSTing {premise, hypothesis} to
// baseURL and parsing the returned probabilities, per spec.md §6's
// downstream NLI predictor contract.
func (c *Client) Predict(ctx context.Context, premise, hypothesis string) (Result, error) {
	out, err := c.breaker.Execute(func() (any, error) {
		return c.doPredict(ctx, premise, hypothesis)
	})
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	return out.(Result), nil
}

func (c *Client) doPredict(ctx context.Context, premise, hypothesis string) (Result, error) {
	body, err := json.Marshal(predictRequest{Premise: premise, Hypothesis: hypothesis})
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{}, fmt.Errorf("nli service returned status %d", resp.StatusCode)
	}

	var parsed predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Result{}, err
	}

	return Result{
		Entailment:    parsed.Entailment,
		Contradiction: parsed.Contradiction,
		Neutral:       parsed.Neutral,
		Label:         Label(parsed.Label),
	}, nil
}
