// cmd/scoring-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"marketplace-scoring/internal/common/aws"
	"marketplace-scoring/internal/common/config"
	"marketplace-scoring/internal/common/database"
	"marketplace-scoring/internal/common/logger"
	"marketplace-scoring/internal/common/observability"
	"marketplace-scoring/internal/repository"
	"marketplace-scoring/internal/scoring/engine"
	"marketplace-scoring/internal/scoring/fraud"
	"marketplace-scoring/internal/scoring/matching"
	"marketplace-scoring/internal/scoring/pricing"
	"marketplace-scoring/internal/scoring/remote"
	"marketplace-scoring/internal/scoring/tracking"
	"marketplace-scoring/internal/server"
	"marketplace-scoring/pkg/registry"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting scoring server...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var rdb *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer rdb.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Load and validate the domain registry ---
	reg, err := registry.Load(cfg.Scoring.RegistryPath)
	if err != nil {
		zapLog.Fatal("domain registry invalid", zap.Error(err))
	}
	zapLog.Info("Domain registry loaded", zap.Strings("domains", reg.Names()))

	// --- Repositories ---
	freelancerRepo := repository.NewFreelancerRepository(
		pg.DB, rdb.Client, config.GetDuration(cfg.Scoring.Matching.CacheTTL), log)
	projectRepo := repository.NewProjectRepository(pg.DB, log)
	candidateSearch := repository.NewCandidateSearch(esClient.Client, cfg.Database.Elasticsearch.Index, log)

	// --- Exposure tracking ---
	var tracker *tracking.Tracker
	if cfg.Tracking.Enabled {
		var sink tracking.Sink
		switch cfg.Tracking.Sink {
		case "sns":
			snsClient, err := aws.NewSNSClient(ctx, cfg.Tracking.AWS.Region)
			if err != nil {
				zapLog.Fatal("sns client init failed", zap.Error(err))
			}
			sink = tracking.NewSNSSink(snsClient, cfg.Tracking.AWS.TopicARN)
		default:
			sink = tracking.NewPostgresSink(pg.DB)
		}
		tracker = tracking.NewTracker(sink, cfg.Tracking.BufferSize, log)
		defer tracker.Close()
		zapLog.Info("Exposure tracking enabled", zap.String("sink", cfg.Tracking.Sink))
	}

	// --- Remote scoring client ---
	var remoteScorer matching.RemoteScorer
	if cfg.Scoring.Remote.BaseURL != "" {
		remoteScorer = remote.NewClient(remote.Config{
			BaseURL: cfg.Scoring.Remote.BaseURL,
			APIKey:  cfg.Scoring.Remote.APIKey,
			Timeout: config.GetDuration(cfg.Scoring.Remote.Timeout),
		}, log)
		zapLog.Info("Remote scoring enabled", zap.String("baseUrl", cfg.Scoring.Remote.BaseURL))
	}

	// --- Domain handlers ---
	deps := matching.Deps{
		Remote:      remoteScorer,
		Freelancers: freelancerRepo,
		Projects:    projectRepo,
		Search:      candidateSearch,
		Obs:         obs,
	}
	if tracker != nil {
		deps.Tracker = tracker
	}
	matchingHandler, err := matching.NewHandler(matching.LoadConfig(cfg), deps, log)
	if err != nil {
		zapLog.Fatal("matching domain init failed", zap.Error(err))
	}

	pricingHandler, err := pricing.NewHandler(pricing.LoadConfig(cfg), obs, log)
	if err != nil {
		zapLog.Fatal("pricing domain init failed", zap.Error(err))
	}

	fraudHandler, err := fraud.NewHandler(fraud.LoadConfig(cfg), obs, log)
	if err != nil {
		zapLog.Fatal("fraud domain init failed", zap.Error(err))
	}

	// The registry document must agree with the compiled-in engines.
	engines := map[string]engine.Introspection{
		matching.Domain: matchingHandler.Engine().Introspect(),
		pricing.Domain:  pricingHandler.Engine().Introspect(),
		fraud.Domain:    fraudHandler.Engine().Introspect(),
	}
	if err := crossCheckRegistry(reg, engines); err != nil {
		zapLog.Fatal("registry does not match compiled engines", zap.Error(err))
	}
	zapLog.Info("All scoring domains initialized")

	// --- HTTP server ---
	srv := server.New(matchingHandler, pricingHandler, fraudHandler, reg, log)
	mux := srv.Routes()
	mux.Handle("GET /metrics", promhttp.Handler())

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("Scoring server listening", zap.String("addr", addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// pprof stays on its own loopback port.
	go func() {
		if err := http.ListenAndServe("localhost:6060", nil); err != nil {
			zapLog.Error("pprof server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("http shutdown failed", zap.Error(err))
	}

	zapLog.Info("Scoring server stopped gracefully")
}

// crossCheckRegistry verifies that every compiled engine is described by the
// registry document with the same factor set and weights, so the served
// introspection can never drift from what the code actually computes.
func crossCheckRegistry(reg *registry.Registry, engines map[string]engine.Introspection) error {
	for name, info := range engines {
		domain, ok := reg.Find(name)
		if !ok {
			return fmt.Errorf("domain %q not in registry", name)
		}
		if len(domain.Factors) != len(info.Factors) {
			return fmt.Errorf("domain %q: registry declares %d factors, engine has %d",
				name, len(domain.Factors), len(info.Factors))
		}
		for _, factor := range domain.Factors {
			weight, ok := info.Weights[factor]
			if !ok {
				return fmt.Errorf("domain %q: registry factor %q unknown to engine", name, factor)
			}
			if diff := weight - domain.Weights[factor]; diff > 1e-9 || diff < -1e-9 {
				return fmt.Errorf("domain %q: factor %q weight mismatch (registry %.4f, engine %.4f)",
					name, factor, domain.Weights[factor], weight)
			}
		}
	}
	return nil
}
