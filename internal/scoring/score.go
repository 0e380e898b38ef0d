// Package scoring owns the composite 0-100 water health score. The alert
// engine consumes it only through the domain.ScoreCalculator interface, so
// the formula can change without touching trend detection.
package scoring

import "github.com/Coder-aditya-04/Jal-Rakshya/internal/domain"

// Component weights. They sum to 1.
const (
	weightLevel       = 0.30
	weightRainfall    = 0.25
	weightDepletion   = 0.20
	weightPH          = 0.15
	weightConsumption = 0.10
)

// neutralComponent stands in for a metric the station did not report. An
// absent reading should neither sink nor inflate the composite.
const neutralComponent = 50.0

// WeightedCalculator scores records as a weighted sum of per-metric ramps.
type WeightedCalculator struct{}

// NewWeightedCalculator returns the production score calculator.
func NewWeightedCalculator() *WeightedCalculator {
	return &WeightedCalculator{}
}

// Score computes the composite health score for one record, clamped to
// [0, 100]. Each metric maps linearly from its worst to best operating value.
func (c *WeightedCalculator) Score(rec domain.WaterRecord) float64 {
	score := weightLevel*component(rec.GroundwaterLevel, 25, 5) +
		weightDepletion*component(rec.DepletionRate, 10, 0) +
		weightRainfall*component(rec.Rainfall, 300, 1200) +
		weightPH*phComponent(rec.PH) +
		weightConsumption*component(rec.TotalConsumption(), 800, 200)

	return clamp(score, 0, 100)
}

// component ramps a reading linearly from worst (scores 0) to best (scores
// 100). Worst may sit on either side of best; nil readings score neutral.
func component(v *float64, worst, best float64) float64 {
	if v == nil {
		return neutralComponent
	}
	frac := (*v - worst) / (best - worst)
	return clamp(frac*100, 0, 100)
}

// phComponent scores by distance from the center of the 6.5-8.0 band.
// Dead center scores 100; 2.5 pH units out scores 0.
func phComponent(ph *float64) float64 {
	if ph == nil {
		return neutralComponent
	}
	const center, span = 7.25, 2.5
	dev := *ph - center
	if dev < 0 {
		dev = -dev
	}
	return clamp((1-dev/span)*100, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
