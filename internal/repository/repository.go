package repository

import (
	"context"
	"errors"

	"github.com/Coder-aditya-04/Jal-Rakshya/internal/domain"
)

// ErrNotFound is returned when a location has no stored records.
var ErrNotFound = errors.New("location not found")

// RecordRepository stores yearly water records keyed by (location, year).
// A second write for the same key replaces the earlier record, so replayed
// Kafka messages converge on the latest reading.
type RecordRepository interface {
	UpsertRecord(ctx context.Context, rec domain.WaterRecord) error
	// History returns all records for a location ordered by year ascending.
	History(ctx context.Context, location string) ([]domain.WaterRecord, error)
	// Latest returns the record with the highest year for a location.
	Latest(ctx context.Context, location string) (domain.WaterRecord, error)
	Locations(ctx context.Context) ([]string, error)
	Close() error
}
