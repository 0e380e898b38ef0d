package domain

// Engine composes the point-in-time evaluator with the trend scanner.
type Engine struct {
	evaluator *Evaluator
	scanner   *TrendScanner
}

// NewEngine bundles an evaluator and a trend scanner.
func NewEngine(evaluator *Evaluator, scanner *TrendScanner) *Engine {
	return &Engine{evaluator: evaluator, scanner: scanner}
}

// GenerateAlerts runs the threshold checks on the current record and, when the
// history spans at least MinTrendYears entries, appends trend alerts for the
// record's location. The combined ordering is stable: the six evaluator
// categories first, trend alerts after.
func (g *Engine) GenerateAlerts(current WaterRecord, history []WaterRecord) []Alert {
	alerts := g.evaluator.Evaluate(current)
	if len(history) >= MinTrendYears {
		alerts = append(alerts, g.scanner.Scan(current.Location, history)...)
	}
	return alerts
}
