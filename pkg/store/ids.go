package store

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewAuditID mints an audit record identifier in the
// aud_{YYYYMMDD}_{hex8} shape from original_source/api/routes/verify.py,
// so audit IDs sort roughly chronologically by day even across stores.
func NewAuditID() string {
	day := time.Now().UTC().Format("20060102")
	return "aud_" + day + "_" + uuid.NewString()[:8]
}

// NewConfigID mints a governance config identifier in the
// cfg_{org_slug}_{hex6} shape from
// original_source/api/routes/configure.py.
func NewConfigID(orgID string) string {
	slug := strings.ToLower(strings.ReplaceAll(orgID, " ", "_"))
	return "cfg_" + slug + "_" + uuid.NewString()[:6]
}
