package generator

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

// ErrUpstreamUnavailable is returned when the generator service is
// unreachable or returns a non-2xx status (spec.md §7).
var ErrUpstreamUnavailable = errors.New("generator: upstream unavailable")

// ErrInsufficientCompletions is returned when the generator returns fewer
// than two completions, matching spec.md §4.2 step 1 / §7
// insufficient_completions.
var ErrInsufficientCompletions = errors.New("generator: fewer than 2 completions returned")

// Client is the HTTP implementation of Generator against GENERATOR_URL,
// using GENERATOR_MODEL as the model identifier. Process-wide, safe for
// concurrent use, circuit-broken like pkg/nli.Client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	model      string
	breaker    *gobreaker.CircuitBreaker
}

// NewClient creates an HTTP-backed Generator against baseURL using model.
func NewClient(baseURL, model string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "completion-generator",
		MaxRequests: 5,
		Interval:    30 * time.Second,
		Timeout:     15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return &Client{httpClient: httpClient, baseURL: baseURL, model: model, breaker: breaker}
}

type generateRequest struct {
	Prompt      string  `json:"prompt"`
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	N           int     `json:"n"`
}

type generateResponse struct {
	Completions []string `json:"completions"`
}

// Generate implements Generator by POSTing {prompt, model, temperature, n}
// to baseURL, per spec.md §6's downstream completion-generator contract.
func (c *Client) Generate(ctx context.Context, prompt string, temperature float64, n int) ([]string, error) {
	out, err := c.breaker.Execute(func() (any, error) {
		return c.doGenerate(ctx, prompt, temperature, n)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	completions := out.([]string)
	if len(completions) < 2 {
		return completions, ErrInsufficientCompletions
	}
	return completions, nil
}

func (c *Client) doGenerate(ctx context.Context, prompt string, temperature float64, n int) ([]string, error) {
	body, err := json.Marshal(generateRequest{Prompt: prompt, Model: c.model, Temperature: temperature, N: n})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("generator service returned status %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	return parsed.Completions, nil
}
