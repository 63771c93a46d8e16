package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codeready-toolchain/meerkat/pkg/api"
)

var (
	verifyInput  string
	verifyOutput string
	verifyDomain string
	verifyChecks string
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Submit an input/output pair for trust scoring",
	RunE:  runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVar(&verifyInput, "input", "", "Original user prompt")
	verifyCmd.Flags().StringVar(&verifyOutput, "output", "", "Model output to verify (required)")
	verifyCmd.Flags().StringVar(&verifyDomain, "domain", "general", "Governance domain (general|legal|financial|healthcare|pharma)")
	verifyCmd.Flags().StringVar(&verifyChecks, "checks", "", "Comma-separated check names, defaults to the enabled checks of the server's default config")
	_ = verifyCmd.MarkFlagRequired("output")
}

func runVerify(cmd *cobra.Command, args []string) error {
	body := api.VerifyRequestBody{
		Input:  verifyInput,
		Output: verifyOutput,
		Domain: verifyDomain,
	}
	if verifyChecks != "" {
		body.Checks = strings.Split(verifyChecks, ",")
	}

	var verdict api.TrustVerdictBody
	if err := postJSON(cmd.Context(), "/v1/verify", body, &verdict); err != nil {
		return err
	}

	fmt.Printf("trust_score=%d status=%s audit_id=%s\n", verdict.TrustScore, verdict.Status, verdict.AuditID)
	for name, check := range verdict.Checks {
		fmt.Printf("  %-18s score=%.2f detail=%s\n", name, check.Score, check.Detail)
	}
	if len(verdict.Recommendations) > 0 {
		fmt.Printf("recommendations: %s\n", strings.Join(verdict.Recommendations, "; "))
	}
	return nil
}

// postJSON sends body as a JSON POST to path on the configured server and
// decodes the response into out. A connection failure is reported as a
// plain error so main's cobra.Execute exit path surfaces exit code 1.
func postJSON(ctx context.Context, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, serverURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", serverURL, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("server returned %s: %s", resp.Status, string(data))
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
