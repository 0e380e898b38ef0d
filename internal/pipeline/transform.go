package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Coder-aditya-04/Jal-Rakshya/internal/domain"
	"github.com/Coder-aditya-04/Jal-Rakshya/internal/observability"
	"github.com/Coder-aditya-04/Jal-Rakshya/internal/repository"
)

// AlertTransformer implements Transformer. Each raw water record is parsed,
// persisted, evaluated against the location's stored history, and serialized
// as an alert bundle.
type AlertTransformer struct {
	engine  *domain.Engine
	repo    repository.RecordRepository
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewTransformer creates an AlertTransformer backed by the given engine and
// record repository.
func NewTransformer(engine *domain.Engine, repo repository.RecordRepository, logger *slog.Logger, metrics *observability.Metrics) *AlertTransformer {
	return &AlertTransformer{
		engine:  engine,
		repo:    repo,
		logger:  logger,
		metrics: metrics,
	}
}

func (t *AlertTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	rec, err := domain.ParseRawEvent(raw)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	if err := t.repo.UpsertRecord(ctx, rec); err != nil {
		return domain.OutputEvent{}, fmt.Errorf("store record: %w", err)
	}

	history, err := t.repo.History(ctx, rec.Location)
	if err != nil {
		return domain.OutputEvent{}, fmt.Errorf("load history: %w", err)
	}

	start := time.Now()
	alerts := t.engine.GenerateAlerts(rec, history)
	t.metrics.EvaluationDuration.Observe(time.Since(start).Seconds())

	for _, a := range alerts {
		t.metrics.AlertsGenerated.WithLabelValues(string(a.Type), string(a.Category)).Inc()
	}

	bundle := domain.NewAlertBundle(rec.Location, rec.Year, alerts)
	return domain.SerializeAlertBundle(bundle)
}
