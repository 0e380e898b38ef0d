package domain

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// MinTrendYears is the shortest history the trend scanner accepts, and also
// the shortest trailing streak that raises a trend alert.
const MinTrendYears = 3

// healthDeclineDelta is how far the second-half mean score must fall below the
// first-half mean before the composite health alert fires (strict inequality).
const healthDeclineDelta = 10

// ScoreCalculator produces the composite 0-100 health score for one record.
// The scoring formula is owned elsewhere; the scanner only consumes it.
type ScoreCalculator interface {
	Score(rec WaterRecord) float64
}

// TrendScanner detects sustained multi-year movements in a location's history.
type TrendScanner struct {
	scorer ScoreCalculator
}

// NewTrendScanner creates a scanner using the given score collaborator.
func NewTrendScanner(scorer ScoreCalculator) *TrendScanner {
	return &TrendScanner{scorer: scorer}
}

// Scan inspects the full chronological history of one location and returns
// trend alerts in a fixed order: water level, depletion, rainfall, then the
// composite health decline. Histories shorter than MinTrendYears produce
// nothing. The input slice is never mutated; the scanner sorts a copy.
//
// Streaks are trailing-only: a run of bad-direction steps counts solely when
// it reaches the most recent year. An earlier, possibly longer run that has
// since been broken is deliberately ignored.
func (s *TrendScanner) Scan(location string, history []WaterRecord) []Alert {
	if len(history) < MinTrendYears {
		return nil
	}

	sorted := make([]WaterRecord, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Year < sorted[j].Year })

	ts := clock.Now().UTC().Format(time.RFC3339)
	var alerts []Alert

	levelOf := func(r WaterRecord) *float64 { return r.GroundwaterLevel }
	if streak := trailingStreak(sorted, levelOf, rising); streak >= MinTrendYears {
		last := *sorted[len(sorted)-1].GroundwaterLevel
		start := *sorted[len(sorted)-1-streak].GroundwaterLevel
		alerts = append(alerts, Alert{
			Type:           SeverityWarning,
			Category:       CategoryTrend,
			Title:          "Sustained Water Level Decline",
			Message:        fmt.Sprintf("Groundwater level in %s has dropped for %d consecutive years, falling %.1fm over the period.", location, streak, last-start),
			Recommendation: "Commission a long-term recharge study for the aquifer.",
			Value:          streak,
			Threshold:      MinTrendYears,
			Timestamp:      ts,
		})
	}

	rateOf := func(r WaterRecord) *float64 { return r.DepletionRate }
	if streak := trailingStreak(sorted, rateOf, rising); streak >= MinTrendYears {
		alerts = append(alerts, Alert{
			Type:           SeverityCritical,
			Category:       CategoryTrend,
			Title:          "Accelerating Depletion",
			Message:        fmt.Sprintf("Depletion rate in %s has risen for %d consecutive years.", location, streak),
			Recommendation: "Escalate to the groundwater authority for extraction caps.",
			Value:          streak,
			Threshold:      MinTrendYears,
			Timestamp:      ts,
		})
	}

	rainOf := func(r WaterRecord) *float64 { return r.Rainfall }
	if streak := trailingStreak(sorted, rainOf, falling); streak >= MinTrendYears {
		alerts = append(alerts, Alert{
			Type:           SeverityWarning,
			Category:       CategoryTrend,
			Title:          "Declining Rainfall Pattern",
			Message:        fmt.Sprintf("Annual rainfall in %s has fallen for %d consecutive years.", location, streak),
			Recommendation: "Revisit crop planning and storage capacity for drier seasons.",
			Value:          streak,
			Threshold:      MinTrendYears,
			Timestamp:      ts,
		})
	}

	if alert, ok := s.healthDecline(location, sorted, ts); ok {
		alerts = append(alerts, alert)
	}

	return alerts
}

// healthDecline scores the sorted history and compares half-means. The split
// is floor division: for odd lengths the middle record joins the second half.
func (s *TrendScanner) healthDecline(location string, sorted []WaterRecord, ts string) (Alert, bool) {
	scores := make([]float64, len(sorted))
	for i, rec := range sorted {
		scores[i] = s.scorer.Score(rec)
	}

	half := len(scores) / 2
	first, second := scores[:half], scores[half:]
	if len(first) == 0 || len(second) == 0 {
		return Alert{}, false
	}

	diff := mean(second) - mean(first)
	if diff >= -healthDeclineDelta {
		return Alert{}, false
	}

	return Alert{
		Type:           SeverityWarning,
		Category:       CategoryTrend,
		Title:          "Overall Water Health Declining",
		Message:        fmt.Sprintf("Composite water health score for %s has dropped %d points between the earlier and later halves of the record.", location, -int(math.Round(diff))),
		Recommendation: "Review all contributing metrics; no single factor explains the decline.",
		Value:          int(math.Round(diff)),
		Threshold:      -healthDeclineDelta,
		Timestamp:      ts,
	}, true
}

// trailingStreak counts the bad-direction steps in the run ending at the last
// record. Any equal, opposite, or nil-valued step resets the count to zero;
// a streak must be contiguous and must reach the end of the series.
func trailingStreak(sorted []WaterRecord, metric func(WaterRecord) *float64, worse func(prev, next float64) bool) int {
	streak := 0
	for i := 1; i < len(sorted); i++ {
		prev, next := metric(sorted[i-1]), metric(sorted[i])
		if prev != nil && next != nil && worse(*prev, *next) {
			streak++
		} else {
			streak = 0
		}
	}
	return streak
}

// rising reports a strictly increasing step (bad for level and depletion).
func rising(prev, next float64) bool { return next > prev }

// falling reports a strictly decreasing step (bad for rainfall).
func falling(prev, next float64) bool { return next < prev }

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
