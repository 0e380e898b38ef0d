package domain

import (
	"fmt"
	"time"
)

// Evaluator runs the point-in-time threshold checks against one record.
type Evaluator struct {
	thresholds Thresholds
}

// NewEvaluator creates an Evaluator closed over the given rule table.
func NewEvaluator(t Thresholds) *Evaluator {
	return &Evaluator{thresholds: t}
}

// Evaluate classifies a record's current readings. Six independent checks run
// in a fixed order (Water Level, Depletion, Rainfall, Water Quality,
// Consumption, Scarcity) and each contributes at most one alert; within a
// metric the critical branch suppresses the warning branch. A nil metric is
// never a failure, it simply raises nothing.
func (e *Evaluator) Evaluate(rec WaterRecord) []Alert {
	ts := clock.Now().UTC().Format(time.RFC3339)
	alerts := make([]Alert, 0, 6)

	if level := rec.GroundwaterLevel; level != nil {
		switch {
		case *level >= e.thresholds.CriticalWaterLevel:
			alerts = append(alerts, Alert{
				Type:           SeverityCritical,
				Category:       CategoryWaterLevel,
				Title:          "Critical Water Depletion",
				Message:        fmt.Sprintf("Groundwater level in %s has fallen to %.1fm below reference, past the critical mark of %.0fm.", rec.Location, *level, e.thresholds.CriticalWaterLevel),
				Recommendation: "Halt non-essential extraction and activate emergency recharge measures.",
				Value:          *level,
				Threshold:      e.thresholds.CriticalWaterLevel,
				Timestamp:      ts,
			})
		case *level >= e.thresholds.WarningWaterLevel:
			alerts = append(alerts, Alert{
				Type:           SeverityWarning,
				Category:       CategoryWaterLevel,
				Title:          "Low Water Level Warning",
				Message:        fmt.Sprintf("Groundwater level in %s is %.1fm below reference, beyond the warning mark of %.0fm.", rec.Location, *level, e.thresholds.WarningWaterLevel),
				Recommendation: "Reduce extraction and monitor weekly readings closely.",
				Value:          *level,
				Threshold:      e.thresholds.WarningWaterLevel,
				Timestamp:      ts,
			})
		}
	}

	if rate := rec.DepletionRate; rate != nil {
		switch {
		case *rate >= e.thresholds.CriticalDepletion:
			alerts = append(alerts, Alert{
				Type:           SeverityCritical,
				Category:       CategoryDepletion,
				Title:          "Severe Aquifer Depletion",
				Message:        fmt.Sprintf("Extraction is outpacing recharge by %.1f%% per year, above the critical rate of %.0f%%.", *rate, e.thresholds.CriticalDepletion),
				Recommendation: "Enforce extraction limits and fast-track rainwater harvesting projects.",
				Value:          *rate,
				Threshold:      e.thresholds.CriticalDepletion,
				Timestamp:      ts,
			})
		case *rate >= e.thresholds.HighDepletion:
			alerts = append(alerts, Alert{
				Type:           SeverityWarning,
				Category:       CategoryDepletion,
				Title:          "High Depletion Rate",
				Message:        fmt.Sprintf("Extraction is outpacing recharge by %.1f%% per year, above the sustainable rate of %.0f%%.", *rate, e.thresholds.HighDepletion),
				Recommendation: "Promote drip irrigation and review industrial water allocations.",
				Value:          *rate,
				Threshold:      e.thresholds.HighDepletion,
				Timestamp:      ts,
			})
		}
	}

	if rain := rec.Rainfall; rain != nil {
		switch {
		case *rain <= e.thresholds.CriticalRainfall:
			alerts = append(alerts, Alert{
				Type:           SeverityCritical,
				Category:       CategoryRainfall,
				Title:          "Critical Rainfall Deficit",
				Message:        fmt.Sprintf("Annual rainfall of %.0fmm is at or below the critical deficit line of %.0fmm.", *rain, e.thresholds.CriticalRainfall),
				Recommendation: "Prepare drought contingency supplies and prioritize drinking water reserves.",
				Value:          *rain,
				Threshold:      e.thresholds.CriticalRainfall,
				Timestamp:      ts,
			})
		case *rain <= e.thresholds.LowRainfall:
			alerts = append(alerts, Alert{
				Type:           SeverityWarning,
				Category:       CategoryRainfall,
				Title:          "Below Average Rainfall",
				Message:        fmt.Sprintf("Annual rainfall of %.0fmm is at or below the %.0fmm low-rainfall line.", *rain, e.thresholds.LowRainfall),
				Recommendation: "Expand rainwater capture before the next monsoon season.",
				Value:          *rain,
				Threshold:      e.thresholds.LowRainfall,
				Timestamp:      ts,
			})
		}
	}

	if ph := rec.PH; ph != nil && (*ph >= e.thresholds.HighPH || *ph <= e.thresholds.LowPH) {
		alerts = append(alerts, Alert{
			Type:           SeverityWarning,
			Category:       CategoryWaterQuality,
			Title:          "Water Quality Concern",
			Message:        fmt.Sprintf("Groundwater pH of %.1f is outside the acceptable %.1f-%.1f band.", *ph, e.thresholds.LowPH, e.thresholds.HighPH),
			Recommendation: "Commission a full water quality assessment and identify contamination sources.",
			Value:          *ph,
			Threshold:      fmt.Sprintf("%.1f-%.1f", e.thresholds.LowPH, e.thresholds.HighPH),
			Timestamp:      ts,
		})
	}

	if total := rec.TotalConsumption(); total != nil && *total >= e.thresholds.HighConsumption {
		alerts = append(alerts, Alert{
			Type:           SeverityInfo,
			Category:       CategoryConsumption,
			Title:          "High Consumption Notice",
			Message:        fmt.Sprintf("Total water consumption of %.0f ML has reached the %.0f ML review level.", *total, e.thresholds.HighConsumption),
			Recommendation: "Audit sectoral usage and identify efficiency opportunities.",
			Value:          *total,
			Threshold:      e.thresholds.HighConsumption,
			Timestamp:      ts,
		})
	}

	if rec.ScarcityLevel == ScarcitySevere || rec.ScarcityLevel == ScarcityExtreme {
		alerts = append(alerts, Alert{
			Type:           SeverityCritical,
			Category:       CategoryScarcity,
			Title:          "Water Scarcity Emergency",
			Message:        fmt.Sprintf("%s is classified under %s water scarcity.", rec.Location, rec.ScarcityLevel),
			Recommendation: "Coordinate with district authorities on emergency water distribution.",
			Value:          string(rec.ScarcityLevel),
			Timestamp:      ts,
		})
	}

	return alerts
}
