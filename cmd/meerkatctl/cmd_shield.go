package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codeready-toolchain/meerkat/pkg/api"
)

var (
	shieldInput       string
	shieldDomain      string
	shieldSensitivity string
)

var shieldCmd = &cobra.Command{
	Use:   "shield",
	Short: "Scan a prompt for injection attacks before it reaches a model",
	RunE:  runShield,
}

func init() {
	rootCmd.AddCommand(shieldCmd)

	shieldCmd.Flags().StringVar(&shieldInput, "input", "", "Prompt text to scan (required)")
	shieldCmd.Flags().StringVar(&shieldDomain, "domain", "", "Governance domain (general|legal|financial|healthcare|pharma)")
	shieldCmd.Flags().StringVar(&shieldSensitivity, "sensitivity", "medium", "Detection sensitivity (low|medium|high)")
	_ = shieldCmd.MarkFlagRequired("input")
}

func runShield(cmd *cobra.Command, args []string) error {
	body := api.ShieldRequestBody{
		Input:       shieldInput,
		Domain:      shieldDomain,
		Sensitivity: shieldSensitivity,
	}

	var result api.ShieldResponseBody
	if err := postJSON(cmd.Context(), "/v1/shield", body, &result); err != nil {
		return err
	}

	fmt.Printf("safe=%t threat_level=%s action=%s\n", result.Safe, result.ThreatLevel, result.Action)
	if result.AttackType != "" {
		fmt.Printf("attack_type=%s detail=%s\n", result.AttackType, result.Detail)
	}
	if result.SanitizedInput != nil {
		fmt.Printf("sanitized_input=%q\n", *result.SanitizedInput)
	}
	return nil
}
