package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/robfig/cron/v3"

	"github.com/Coder-aditya-04/Jal-Rakshya/internal/domain"
	"github.com/Coder-aditya-04/Jal-Rakshya/internal/observability"
	"github.com/Coder-aditya-04/Jal-Rakshya/internal/repository"
)

// Publisher writes a single advisory event to the advisory topic.
type Publisher interface {
	Publish(ctx context.Context, event domain.OutputEvent) error
}

// AdvisoryScheduler publishes the daily advisory bulletin for every known
// location on a cron schedule.
type AdvisoryScheduler struct {
	repo      repository.RecordRepository
	publisher Publisher
	logger    *slog.Logger
	metrics   *observability.Metrics
	schedule  string
	cron      *cron.Cron
}

func New(repo repository.RecordRepository, publisher Publisher, logger *slog.Logger, metrics *observability.Metrics, schedule string) *AdvisoryScheduler {
	return &AdvisoryScheduler{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		schedule:  schedule,
		cron:      cron.New(),
	}
}

// Start registers the cron job and begins the schedule. The job itself uses
// the given context so a service shutdown stops in-flight publishes.
func (s *AdvisoryScheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		if err := s.PublishAll(ctx); err != nil {
			s.logger.Error("scheduled advisory publish failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid advisory schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	s.logger.Info("advisory scheduler started", "schedule", s.schedule)
	return nil
}

// Stop halts the schedule and waits for a running job to finish.
func (s *AdvisoryScheduler) Stop() {
	<-s.cron.Stop().Done()
}

// PublishAll generates and publishes advisories for every stored location.
// A failing location is logged and skipped so one bad row cannot starve the
// rest of the bulletin.
func (s *AdvisoryScheduler) PublishAll(ctx context.Context) error {
	locations, err := s.repo.Locations(ctx)
	if err != nil {
		return fmt.Errorf("list locations: %w", err)
	}

	published := 0
	for _, location := range locations {
		if err := s.publishLocation(ctx, location); err != nil {
			s.logger.Warn("advisory publish failed", "location", location, "error", err)
			continue
		}
		published++
	}

	s.logger.Info("advisory bulletin published", "locations", published, "total", len(locations))
	return nil
}

func (s *AdvisoryScheduler) publishLocation(ctx context.Context, location string) error {
	latest, err := s.repo.Latest(ctx, location)
	if err != nil {
		return fmt.Errorf("load latest record: %w", err)
	}

	updates := domain.GenerateAdvisories(latest)
	payload, err := json.Marshal(map[string]any{
		"location":   location,
		"year":       latest.Year,
		"advisories": updates,
	})
	if err != nil {
		return fmt.Errorf("serialize advisories: %w", err)
	}

	event := domain.OutputEvent{
		Key:   []byte(location),
		Value: payload,
		Headers: map[string]string{
			"location":       location,
			"advisory_count": strconv.Itoa(len(updates)),
		},
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		return fmt.Errorf("publish advisories: %w", err)
	}

	s.metrics.AdvisoriesPublished.Add(float64(len(updates)))
	return nil
}
