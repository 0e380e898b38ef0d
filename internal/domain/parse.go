package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseRawEvent deserializes a RawEvent's value into a WaterRecord. Metric
// fields the collector omitted stay nil, which is the normal shape of a
// partial station report, not an error. Only a record that cannot be keyed
// (no location, no usable year) is rejected.
func ParseRawEvent(raw RawEvent) (WaterRecord, error) {
	var rec WaterRecord
	if err := json.Unmarshal(raw.Value, &rec); err != nil {
		return WaterRecord{}, fmt.Errorf("parse raw event: %w", err)
	}

	rec.Location = strings.TrimSpace(rec.Location)
	if rec.Location == "" {
		return WaterRecord{}, fmt.Errorf("parse raw event: missing location")
	}
	if rec.Year == 0 {
		rec.Year = yearFromTimestamp(raw.Timestamp)
	}
	if rec.Year < 1900 || rec.Year > 3000 {
		return WaterRecord{}, fmt.Errorf("parse raw event: implausible year %d", rec.Year)
	}
	if rec.ScarcityLevel != "" && !rec.ScarcityLevel.Valid() {
		return WaterRecord{}, fmt.Errorf("parse raw event: unknown scarcity level %q", rec.ScarcityLevel)
	}

	return rec, nil
}

// yearFromTimestamp falls back to the message timestamp's year when the
// payload omits one. Zero timestamps yield 0 and fail the plausibility check.
func yearFromTimestamp(ts time.Time) int {
	if ts.IsZero() {
		return 0
	}
	return ts.UTC().Year()
}

// AlertBundle is the sink-topic payload: every alert generated for one
// location by one evaluation pass.
type AlertBundle struct {
	Location    string    `json:"location"`
	Year        int       `json:"year"`
	Alerts      []Alert   `json:"alerts"`
	GeneratedAt time.Time `json:"generated_at"`
}

// NewAlertBundle stamps a bundle with the package clock.
func NewAlertBundle(location string, year int, alerts []Alert) AlertBundle {
	if alerts == nil {
		alerts = []Alert{}
	}
	return AlertBundle{
		Location:    location,
		Year:        year,
		Alerts:      alerts,
		GeneratedAt: clock.Now().UTC(),
	}
}

// SerializeAlertBundle marshals a bundle into an output event keyed by
// location, so all bundles for one location land on one partition in order.
func SerializeAlertBundle(bundle AlertBundle) (OutputEvent, error) {
	data, err := json.Marshal(bundle)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize alert bundle: %w", err)
	}
	return OutputEvent{
		Key:   []byte(bundle.Location),
		Value: data,
		Headers: map[string]string{
			"location":     bundle.Location,
			"year":         strconv.Itoa(bundle.Year),
			"alert_count":  strconv.Itoa(len(bundle.Alerts)),
			"generated_at": bundle.GeneratedAt.Format(time.RFC3339),
		},
	}, nil
}
