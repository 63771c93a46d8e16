// Package api provides the HTTP surface for the governance gateway:
// /v1/verify, /v1/shield, /v1/audit/{id}, /v1/configure, /v1/dashboard,
// /v1/health, and a Prometheus /metrics endpoint. Grounded on the
// teacher's pkg/api/{server,middleware,errors}.go: the Server struct,
// Set*/ValidateWiring wiring pattern, and echo-v5 route-group layout are
// kept near-verbatim and re-pointed at this module's own services.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	echo "github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/codeready-toolchain/meerkat/pkg/metrics"
	"github.com/codeready-toolchain/meerkat/pkg/orchestrator"
	"github.com/codeready-toolchain/meerkat/pkg/store"
	"github.com/codeready-toolchain/meerkat/pkg/version"
)

// defaultShieldSensitivity is used when a /v1/shield request omits it.
const defaultShieldSensitivity = "medium"

// summaryMaxChars bounds InputSummary/OutputSummary on audit records
// written from this package, per spec.md §3's "(<=200 chars)".
const summaryMaxChars = 200

// truncate shortens s to at most n runes, leaving it untouched if it
// already fits.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// Server is the HTTP API server.
type Server struct {
	echo       *echo.Echo
	httpServer *http.Server

	orchestrator      *orchestrator.Orchestrator // nil until set
	configStore       store.ConfigStore          // nil until set
	auditStore        store.AuditStore           // nil until set
	metricsAggregator *metrics.Aggregator        // nil until set
	registry          *metrics.Registry          // nil if Prometheus export disabled
}

// NewServer creates a new API server with Echo v5 and registers routes.
// Dependencies are wired afterward via Set* methods, then ValidateWiring
// is called before Start.
func NewServer() *Server {
	e := echo.New()
	s := &Server{echo: e}

	e.Use(securityHeaders())
	e.Use(middleware.BodyLimit(2 * 1024 * 1024))

	s.setupRoutes()
	return s
}

// SetOrchestrator wires the verification orchestrator for /v1/verify.
func (s *Server) SetOrchestrator(o *orchestrator.Orchestrator) {
	s.orchestrator = o
}

// SetConfigStore wires the config store for /v1/configure.
func (s *Server) SetConfigStore(cs store.ConfigStore) {
	s.configStore = cs
}

// SetAuditStore wires the audit store for /v1/audit/{id} and Shield's
// per-scan audit logging.
func (s *Server) SetAuditStore(as store.AuditStore) {
	s.auditStore = as
}

// SetMetricsAggregator wires the metrics aggregator for /v1/dashboard.
func (s *Server) SetMetricsAggregator(a *metrics.Aggregator) {
	s.metricsAggregator = a
}

// SetRegistry wires the Prometheus registry and registers /metrics. Call
// once, after NewServer.
func (s *Server) SetRegistry(r *metrics.Registry) {
	s.registry = r
	s.echo.GET("/metrics", func(c *echo.Context) error {
		promhttp.Handler().ServeHTTP(c.Response(), c.Request())
		return nil
	})
}

// ValidateWiring checks that all required services have been wired via
// their Set* methods, so wiring gaps surface at startup rather than as
// 500s at request time. The Prometheus registry is optional.
func (s *Server) ValidateWiring() error {
	var errs []error
	if s.orchestrator == nil {
		errs = append(errs, fmt.Errorf("orchestrator not set (call SetOrchestrator)"))
	}
	if s.configStore == nil {
		errs = append(errs, fmt.Errorf("configStore not set (call SetConfigStore)"))
	}
	if s.auditStore == nil {
		errs = append(errs, fmt.Errorf("auditStore not set (call SetAuditStore)"))
	}
	if s.metricsAggregator == nil {
		errs = append(errs, fmt.Errorf("metricsAggregator not set (call SetMetricsAggregator)"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("server wiring incomplete: %w", errors.Join(errs...))
	}
	return nil
}

// setupRoutes registers all API routes.
func (s *Server) setupRoutes() {
	s.echo.GET("/v1/health", s.healthHandler)

	v1 := s.echo.Group("/v1")
	v1.POST("/verify", s.verifyHandler)
	v1.POST("/shield", s.shieldHandler)
	v1.GET("/audit/:id", s.auditHandler)
	v1.POST("/configure", s.configureHandler)
	v1.GET("/dashboard", s.dashboardHandler)
}

// Start starts the HTTP server on the given address (blocking).
func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.echo,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s.httpServer.ListenAndServe()
}

// StartWithListener starts the HTTP server on a pre-created listener.
// Used by test infrastructure to serve on a random OS-assigned port.
func (s *Server) StartWithListener(ln net.Listener) error {
	s.httpServer = &http.Server{Handler: s.echo, ReadHeaderTimeout: 10 * time.Second}
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// healthHandler handles GET /v1/health.
func (s *Server) healthHandler(c *echo.Context) error {
	return c.JSON(http.StatusOK, &HealthResponse{Status: "healthy", Version: version.Full()})
}
