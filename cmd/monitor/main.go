// Command monitor runs the groundwater monitoring service: it consumes water
// records from Kafka, evaluates them against thresholds and stored history,
// publishes alert bundles, serves the dashboard REST API, and publishes daily
// government advisories on a cron schedule.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	apiadapter "github.com/Coder-aditya-04/Jal-Rakshya/internal/adapter/api"
	httpadapter "github.com/Coder-aditya-04/Jal-Rakshya/internal/adapter/http"
	kafkaadapter "github.com/Coder-aditya-04/Jal-Rakshya/internal/adapter/kafka"
	"github.com/Coder-aditya-04/Jal-Rakshya/internal/config"
	"github.com/Coder-aditya-04/Jal-Rakshya/internal/domain"
	"github.com/Coder-aditya-04/Jal-Rakshya/internal/observability"
	"github.com/Coder-aditya-04/Jal-Rakshya/internal/pipeline"
	"github.com/Coder-aditya-04/Jal-Rakshya/internal/repository"
	"github.com/Coder-aditya-04/Jal-Rakshya/internal/scheduler"
	"github.com/Coder-aditya-04/Jal-Rakshya/internal/scoring"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	repo, err := repository.NewSQLiteDB(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open record store", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}

	engine := domain.NewEngine(
		domain.NewEvaluator(domain.DefaultThresholds()),
		domain.NewTrendScanner(scoring.NewWeightedCalculator()),
	)

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	advisoryWriter := kafkaadapter.NewAdvisoryWriter(cfg, logger)
	transformer := pipeline.NewTransformer(engine, repo, logger, metrics)

	p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)

	opsSrv := httpadapter.NewServer(cfg.HTTPAddr, p, logger)

	apiHandler := apiadapter.NewHandler(repo, engine, logger)
	apiSrv := &http.Server{
		Addr:    cfg.APIAddr,
		Handler: apiadapter.NewRouter(apiHandler, cfg.APIRateLimit),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched := scheduler.New(repo, advisoryWriter, logger, metrics, cfg.AdvisorySchedule)
	if err := sched.Start(ctx); err != nil {
		logger.Error("failed to start advisory scheduler", "error", err)
		os.Exit(1)
	}

	// Start ops server.
	go func() {
		if err := opsSrv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("ops server error", "error", err)
		}
	}()

	// Start dashboard API server.
	go func() {
		logger.Info("api server starting", "addr", apiSrv.Addr)
		if err := apiSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("api server error", "error", err)
		}
	}()

	// Start monitoring pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	sched.Stop()
	if err := opsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("ops server shutdown error", "error", err)
	}
	if err := apiSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("api server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}
	if err := advisoryWriter.Close(); err != nil {
		logger.Error("advisory writer close error", "error", err)
	}
	if err := repo.Close(); err != nil {
		logger.Error("record store close error", "error", err)
	}

	logger.Info("shutdown complete")
}
