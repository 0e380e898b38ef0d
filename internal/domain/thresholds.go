package domain

// Thresholds is the immutable rule table an Evaluator is built from. All
// numeric comparisons are inclusive at the boundary; rainfall thresholds are
// lower bounds (at or below triggers), everything else is an upper bound.
type Thresholds struct {
	CriticalWaterLevel float64 // meters below reference
	WarningWaterLevel  float64
	CriticalDepletion  float64 // percent
	HighDepletion      float64
	CriticalRainfall   float64 // mm, at or below
	LowRainfall        float64
	HighPH             float64
	LowPH              float64
	HighConsumption    float64 // ML
}

// DefaultThresholds returns the operational rule table. These are fixed
// constants of the product, not runtime configuration; alternate tables exist
// only so tests can probe boundary behavior.
func DefaultThresholds() Thresholds {
	return Thresholds{
		CriticalWaterLevel: 15,
		WarningWaterLevel:  12,
		CriticalDepletion:  7,
		HighDepletion:      5,
		CriticalRainfall:   600,
		LowRainfall:        700,
		HighPH:             8.0,
		LowPH:              6.5,
		HighConsumption:    500,
	}
}
