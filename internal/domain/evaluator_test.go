package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

// alertsFor filters alerts by category.
func alertsFor(alerts []Alert, c Category) []Alert {
	var out []Alert
	for _, a := range alerts {
		if a.Category == c {
			out = append(out, a)
		}
	}
	return out
}

func TestEvaluate_WaterLevelBoundaries(t *testing.T) {
	e := NewEvaluator(DefaultThresholds())

	tests := []struct {
		name     string
		level    *float64
		expected Severity // "" means no alert
	}{
		{"well below warning", f(8.0), ""},
		{"just below warning", f(11.9), ""},
		{"exactly at warning", f(12.0), SeverityWarning},
		{"between thresholds", f(13.5), SeverityWarning},
		{"just below critical", f(14.9), SeverityWarning},
		{"exactly at critical", f(15.0), SeverityCritical},
		{"above critical", f(18.2), SeverityCritical},
		{"metric absent", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alerts := alertsFor(e.Evaluate(WaterRecord{Year: 2024, Location: "Jaipur", GroundwaterLevel: tt.level}), CategoryWaterLevel)
			if tt.expected == "" {
				assert.Empty(t, alerts)
				return
			}
			require.Len(t, alerts, 1)
			assert.Equal(t, tt.expected, alerts[0].Type)
			assert.Equal(t, *tt.level, alerts[0].Value)
		})
	}
}

func TestEvaluate_CriticalSuppressesWarning(t *testing.T) {
	e := NewEvaluator(DefaultThresholds())

	alerts := alertsFor(e.Evaluate(WaterRecord{Location: "Jaipur", GroundwaterLevel: f(16.0)}), CategoryWaterLevel)
	require.Len(t, alerts, 1)
	assert.Equal(t, SeverityCritical, alerts[0].Type)
}

func TestEvaluate_DepletionBoundaries(t *testing.T) {
	e := NewEvaluator(DefaultThresholds())

	tests := []struct {
		name     string
		rate     *float64
		expected Severity
	}{
		{"sustainable", f(3.0), ""},
		{"exactly at high", f(5.0), SeverityWarning},
		{"between", f(6.5), SeverityWarning},
		{"exactly at critical", f(7.0), SeverityCritical},
		{"absent", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alerts := alertsFor(e.Evaluate(WaterRecord{Location: "Jaipur", DepletionRate: tt.rate}), CategoryDepletion)
			if tt.expected == "" {
				assert.Empty(t, alerts)
				return
			}
			require.Len(t, alerts, 1)
			assert.Equal(t, tt.expected, alerts[0].Type)
		})
	}
}

func TestEvaluate_RainfallBoundaries(t *testing.T) {
	e := NewEvaluator(DefaultThresholds())

	tests := []struct {
		name     string
		rain     *float64
		expected Severity
	}{
		{"plentiful", f(950), ""},
		{"just above low line", f(701), ""},
		{"exactly at low line", f(700), SeverityWarning},
		{"between lines", f(650), SeverityWarning},
		{"exactly at critical line", f(600), SeverityCritical},
		{"deep deficit", f(480), SeverityCritical},
		{"absent", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alerts := alertsFor(e.Evaluate(WaterRecord{Location: "Jaipur", Rainfall: tt.rain}), CategoryRainfall)
			if tt.expected == "" {
				assert.Empty(t, alerts)
				return
			}
			require.Len(t, alerts, 1)
			assert.Equal(t, tt.expected, alerts[0].Type)
		})
	}
}

func TestEvaluate_PHSymmetricBoundary(t *testing.T) {
	e := NewEvaluator(DefaultThresholds())

	tests := []struct {
		name    string
		ph      *float64
		alerted bool
	}{
		{"neutral", f(7.0), false},
		{"exactly low bound", f(6.5), true},
		{"exactly high bound", f(8.0), true},
		{"acidic", f(5.9), true},
		{"alkaline", f(8.6), true},
		{"inside band low side", f(6.6), false},
		{"inside band high side", f(7.9), false},
		{"absent", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alerts := alertsFor(e.Evaluate(WaterRecord{Location: "Jaipur", PH: tt.ph}), CategoryWaterQuality)
			if !tt.alerted {
				assert.Empty(t, alerts)
				return
			}
			require.Len(t, alerts, 1)
			assert.Equal(t, SeverityWarning, alerts[0].Type)
			assert.Equal(t, "6.5-8.0", alerts[0].Threshold)
		})
	}
}

func TestEvaluate_ConsumptionUsesTotal(t *testing.T) {
	e := NewEvaluator(DefaultThresholds())

	t.Run("precomputed consumption", func(t *testing.T) {
		alerts := alertsFor(e.Evaluate(WaterRecord{Location: "Jaipur", Consumption: f(520)}), CategoryConsumption)
		require.Len(t, alerts, 1)
		assert.Equal(t, SeverityInfo, alerts[0].Type)
		assert.Equal(t, 520.0, alerts[0].Value)
	})

	t.Run("derived from usage fields", func(t *testing.T) {
		rec := WaterRecord{
			Location:          "Jaipur",
			AgriculturalUsage: f(300),
			IndustrialUsage:   f(150),
			HouseholdUsage:    f(50),
		}
		alerts := alertsFor(e.Evaluate(rec), CategoryConsumption)
		require.Len(t, alerts, 1)
		assert.Equal(t, 500.0, alerts[0].Value)
	})

	t.Run("incomplete usage fields stay silent", func(t *testing.T) {
		rec := WaterRecord{Location: "Jaipur", AgriculturalUsage: f(900)}
		assert.Empty(t, alertsFor(e.Evaluate(rec), CategoryConsumption))
	})

	t.Run("below review level", func(t *testing.T) {
		assert.Empty(t, alertsFor(e.Evaluate(WaterRecord{Location: "Jaipur", Consumption: f(499)}), CategoryConsumption))
	})
}

func TestEvaluate_Scarcity(t *testing.T) {
	e := NewEvaluator(DefaultThresholds())

	tests := []struct {
		level   ScarcityLevel
		alerted bool
	}{
		{ScarcityLow, false},
		{ScarcityModerate, false},
		{ScarcityHigh, false},
		{ScarcitySevere, true},
		{ScarcityExtreme, true},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			alerts := alertsFor(e.Evaluate(WaterRecord{Location: "Jaipur", ScarcityLevel: tt.level}), CategoryScarcity)
			if !tt.alerted {
				assert.Empty(t, alerts)
				return
			}
			require.Len(t, alerts, 1)
			assert.Equal(t, SeverityCritical, alerts[0].Type)
			assert.Equal(t, string(tt.level), alerts[0].Value)
			assert.Nil(t, alerts[0].Threshold)
		})
	}
}

func TestEvaluate_OutputOrderingIsFixed(t *testing.T) {
	e := NewEvaluator(DefaultThresholds())

	rec := WaterRecord{
		Year:             2024,
		Location:         "Jaipur",
		GroundwaterLevel: f(16.0),
		DepletionRate:    f(8.0),
		Rainfall:         f(550),
		PH:               f(8.5),
		Consumption:      f(600),
		ScarcityLevel:    ScarcityExtreme,
	}

	expected := []Category{
		CategoryWaterLevel,
		CategoryDepletion,
		CategoryRainfall,
		CategoryWaterQuality,
		CategoryConsumption,
		CategoryScarcity,
	}

	// Ordering must be identical across repeated calls.
	for run := 0; run < 3; run++ {
		alerts := e.Evaluate(rec)
		require.Len(t, alerts, len(expected))
		for i, c := range expected {
			assert.Equal(t, c, alerts[i].Category, "position %d on run %d", i, run)
		}
	}
}

func TestEvaluate_EmptyRecordRaisesNothing(t *testing.T) {
	e := NewEvaluator(DefaultThresholds())
	assert.Empty(t, e.Evaluate(WaterRecord{Year: 2024, Location: "Jaipur"}))
}

func TestEvaluate_SharedFrozenTimestamp(t *testing.T) {
	fixed := time.Date(2025, time.June, 12, 9, 30, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixed))
	t.Cleanup(func() { SetClock(nil) })

	e := NewEvaluator(DefaultThresholds())
	alerts := e.Evaluate(WaterRecord{
		Location:         "Jaipur",
		GroundwaterLevel: f(16.0),
		DepletionRate:    f(8.0),
	})

	require.Len(t, alerts, 2)
	assert.Equal(t, "2025-06-12T09:30:00Z", alerts[0].Timestamp)
	assert.Equal(t, alerts[0].Timestamp, alerts[1].Timestamp)
}

func TestEvaluate_AlternateThresholds(t *testing.T) {
	custom := DefaultThresholds()
	custom.WarningWaterLevel = 20
	custom.CriticalWaterLevel = 25
	e := NewEvaluator(custom)

	assert.Empty(t, alertsFor(e.Evaluate(WaterRecord{Location: "Jaipur", GroundwaterLevel: f(16.0)}), CategoryWaterLevel))

	alerts := alertsFor(e.Evaluate(WaterRecord{Location: "Jaipur", GroundwaterLevel: f(21.0)}), CategoryWaterLevel)
	require.Len(t, alerts, 1)
	assert.Equal(t, SeverityWarning, alerts[0].Type)
}
