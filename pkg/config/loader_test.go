package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "governance.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConfigNotFound)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeTempConfig(t, "domain: [this is not valid")
		_, err := Load(path)
		require.Error(t, err)
	})

	t.Run("overrides defaults", func(t *testing.T) {
		path := writeTempConfig(t, `
org_id: acme
domain: legal
approve_threshold: 80
block_threshold: 50
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "acme", cfg.OrgID)
		assert.Equal(t, DomainLegal, cfg.Domain)
		assert.Equal(t, 80, cfg.ApproveThreshold)
		assert.Equal(t, 50, cfg.BlockThreshold)
		// unspecified fields keep defaults
		assert.Equal(t, DefaultWeights(), cfg.Weights)
		assert.NotEmpty(t, cfg.RequiredChecks)
	})

	t.Run("fails validation", func(t *testing.T) {
		path := writeTempConfig(t, "domain: not-a-real-domain\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidationFailed)
	})

	t.Run("env var expansion", func(t *testing.T) {
		t.Setenv("MEERKAT_ORG_ID", "envorg")
		path := writeTempConfig(t, "org_id: ${MEERKAT_ORG_ID}\ndomain: general\n")
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "envorg", cfg.OrgID)
	})
}
