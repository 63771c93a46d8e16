package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	echo "github.com/labstack/echo/v5"

	"github.com/codeready-toolchain/meerkat/pkg/store"
)

// ValidationError reports a request-body field that failed validation,
// mapped to 400 per spec.md §7's invalid_request.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// mapServiceError maps orchestrator/store errors to HTTP error responses,
// per spec.md §7's taxonomy. Individual governance-check failures never
// reach here — they degrade gracefully inside the orchestrator — only
// schema-level and store-write failures do.
func mapServiceError(err error) *echo.HTTPError {
	var validErr *ValidationError
	if errors.As(err, &validErr) {
		return echo.NewHTTPError(http.StatusBadRequest, validErr.Error())
	}
	if errors.Is(err, store.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "resource not found")
	}

	slog.Error("unexpected service error", "error", err)
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
}
