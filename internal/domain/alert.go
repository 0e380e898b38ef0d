package domain

// Severity is the alert tier consumers use for styling and prioritization.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Category names the metric family an alert belongs to.
type Category string

const (
	CategoryWaterLevel   Category = "Water Level"
	CategoryDepletion    Category = "Depletion"
	CategoryRainfall     Category = "Rainfall"
	CategoryWaterQuality Category = "Water Quality"
	CategoryConsumption  Category = "Consumption"
	CategoryScarcity     Category = "Scarcity"
	CategoryTrend        Category = "Trend"
)

// Alert is one classified finding about a location's readings.
//
// Value varies by alert kind: the triggering metric reading for threshold
// alerts, the streak length in years for trend alerts, or the scarcity
// classification string. Threshold is the crossed bound: a number, a range
// string for pH, or omitted for categorical alerts. Timestamp is RFC 3339 and
// shared by every alert of the evaluation call that produced it.
type Alert struct {
	Type           Severity `json:"type"`
	Category       Category `json:"category"`
	Title          string   `json:"title"`
	Message        string   `json:"message"`
	Recommendation string   `json:"recommendation"`
	Value          any      `json:"value"`
	Threshold      any      `json:"threshold,omitempty"`
	Timestamp      string   `json:"timestamp"`
}

// Priority marks how prominently an advisory should surface.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityNormal Priority = "normal"
)

// GovUpdate is one human-readable status advisory. The generator always
// produces exactly five, with stable IDs 1 through 5 per topic.
type GovUpdate struct {
	ID       int      `json:"id"`
	Title    string   `json:"title"`
	Body     string   `json:"body"`
	Date     string   `json:"date"`
	Source   string   `json:"source"`
	Priority Priority `json:"priority"`
}
