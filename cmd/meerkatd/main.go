// Command meerkatd runs the governance gateway HTTP server: it wires the
// NLI predictor, completion generator, five analyzer components, the
// config/audit store, and the API surface, then serves until signaled.
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/codeready-toolchain/meerkat/pkg/api"
	"github.com/codeready-toolchain/meerkat/pkg/config"
	"github.com/codeready-toolchain/meerkat/pkg/entropy"
	"github.com/codeready-toolchain/meerkat/pkg/generator"
	"github.com/codeready-toolchain/meerkat/pkg/metrics"
	"github.com/codeready-toolchain/meerkat/pkg/nli"
	"github.com/codeready-toolchain/meerkat/pkg/orchestrator"
	"github.com/codeready-toolchain/meerkat/pkg/store"
	"github.com/codeready-toolchain/meerkat/pkg/version"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	configPath := flag.String("config", getEnv("CONFIG_PATH", ""),
		"Path to a governance.yaml overriding the default configuration")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file loaded, continuing with process environment", "error", err)
	}

	addr := ":" + getEnv("HTTP_PORT", "8080")
	nliURL := getEnv("NLI_URL", "http://localhost:9001/predict")
	generatorURL := getEnv("GENERATOR_URL", "http://localhost:9002/generate")
	generatorModel := getEnv("GENERATOR_MODEL", "meerkat-sampler")

	slog.Info("starting meerkat", "version", version.Full(), "addr", addr)

	defaultCfg := config.DefaultGovernanceConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			slog.Error("failed to load governance config", "path", *configPath, "error", err)
			os.Exit(1)
		}
		defaultCfg = loaded
	}

	var auditStore interface {
		store.ConfigStore
		store.AuditStore
	}
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
		auditStore = store.NewRedisStore(rdb)
		slog.Info("using Redis-backed store", "addr", redisAddr)
	} else {
		mem := store.NewMemoryStore()
		auditStore = mem
		slog.Info("using in-memory store (set REDIS_ADDR to persist across restarts)")
	}
	// MemoryStore already seeds "default" at construction; this Put is a
	// no-op overwrite there but is required for RedisStore, which starts
	// empty.
	if err := auditStore.Put(context.Background(), defaultCfg); err != nil {
		slog.Error("failed to seed default governance config", "error", err)
		os.Exit(1)
	}

	// NLI and generator clients are process-wide and loaded eagerly (spec.md
	// §5 "loaded eagerly at process start (warmup)").
	predictor := nli.NewClient(nliURL, nil)
	gen := generator.NewClient(generatorURL, generatorModel, nil)
	entropyEngine := entropy.NewEngine(gen, predictor)

	orch := orchestrator.New(predictor, entropyEngine, auditStore, auditStore)
	aggregator := metrics.New(auditStore)
	// DefaultRegisterer, not a fresh Registry: the server's GET /metrics
	// route serves promhttp.Handler(), which reads the default gatherer.
	registry := metrics.NewRegistry(prometheus.DefaultRegisterer)

	server := api.NewServer()
	server.SetOrchestrator(orch)
	server.SetConfigStore(auditStore)
	server.SetAuditStore(auditStore)
	server.SetMetricsAggregator(aggregator)
	server.SetRegistry(registry)

	if err := server.ValidateWiring(); err != nil {
		slog.Error("server wiring incomplete", "error", err)
		os.Exit(1)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("server exited unexpectedly", "error", err)
		os.Exit(1)
	case sig := <-sigCh:
		slog.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	slog.Info("shutdown complete")
}
