package domain

import (
	"context"
	"time"
)

// ScarcityLevel classifies a location's water stress. Supplied upstream,
// consumed but never computed here.
type ScarcityLevel string

const (
	ScarcityLow      ScarcityLevel = "Low"
	ScarcityModerate ScarcityLevel = "Moderate"
	ScarcityHigh     ScarcityLevel = "High"
	ScarcitySevere   ScarcityLevel = "Severe"
	ScarcityExtreme  ScarcityLevel = "Extreme"
)

// Valid reports whether the level is one of the five known classifications.
func (s ScarcityLevel) Valid() bool {
	switch s {
	case ScarcityLow, ScarcityModerate, ScarcityHigh, ScarcitySevere, ScarcityExtreme:
		return true
	}
	return false
}

// WaterRecord holds one year of metrics for one monitored location.
// Metric fields are pointers because stations report what they measure;
// a nil metric fails every threshold comparison and raises nothing.
type WaterRecord struct {
	Year     int    `json:"year"`
	Location string `json:"location"`

	GroundwaterLevel *float64 `json:"groundwaterLevel,omitempty"` // meters below reference, higher = worse
	DepletionRate    *float64 `json:"depletionRate,omitempty"`    // percent over natural recharge
	Rainfall         *float64 `json:"rainfall,omitempty"`         // mm annual total
	PH               *float64 `json:"ph,omitempty"`

	AgriculturalUsage *float64 `json:"agriculturalUsage,omitempty"` // ML
	IndustrialUsage   *float64 `json:"industrialUsage,omitempty"`   // ML
	HouseholdUsage    *float64 `json:"householdUsage,omitempty"`    // ML
	Consumption       *float64 `json:"consumption,omitempty"`       // ML, total usage

	ScarcityLevel ScarcityLevel `json:"scarcityLevel,omitempty"`
	WaterScore    *float64      `json:"waterScore,omitempty"` // composite 0-100, computed externally
}

// TotalConsumption returns the precomputed consumption when present, otherwise
// the sum of the three usage fields when all are present, otherwise nil.
func (r WaterRecord) TotalConsumption() *float64 {
	if r.Consumption != nil {
		return r.Consumption
	}
	if r.AgriculturalUsage == nil || r.IndustrialUsage == nil || r.HouseholdUsage == nil {
		return nil
	}
	total := *r.AgriculturalUsage + *r.IndustrialUsage + *r.HouseholdUsage
	return &total
}

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// OutputEvent is the serialized form destined for a sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
