// Package domain models groundwater monitoring records and the alert rules
// evaluated against them.
//
// # Data Source
//
// Each WaterRecord carries one year of metrics for one monitored location:
// groundwater depth, aquifer depletion rate, annual rainfall, pH, and sectoral
// usage. Records arrive as flat JSON from the collector on the Kafka source
// topic, one message per location-year reading. Metric fields are optional;
// stations report what they measure, and an absent metric never triggers an
// alert.
//
// # Metric Conventions
//
// Groundwater level:
//
//	Meters of depth below the reference surface. Higher is worse: the water
//	table is farther down. Warning at 12m, critical at 15m, inclusive.
//
// Depletion rate:
//
//	Percentage by which extraction is estimated to exceed natural recharge
//	in the year. Warning at 5%, critical at 7%, inclusive.
//
// Rainfall:
//
//	Millimeters, annual total. Direction inverts: warning at or below 700mm,
//	critical at or below 600mm.
//
// pH:
//
//	Acceptable band is 6.5-8.0. A reading at or beyond either bound raises a
//	single water-quality warning; readings inside the band never alert.
//
// Consumption:
//
//	Megaliters, total of agricultural, industrial, and household usage. May
//	arrive precomputed or be derived as the sum of the three usage fields.
//	At or above 500 ML raises an informational notice only.
//
// Scarcity level:
//
//	Categorical stress classification supplied upstream, never computed here:
//	Low, Moderate, High, Severe, Extreme. Severe and Extreme raise a critical
//	alert.
//
// # Trend Detection
//
// The trend scanner works on a location's full multi-year history, sorted by
// year. A streak is an uninterrupted run of adjacent year-over-year steps all
// moving the bad direction under strict inequality; a plateau breaks it. Only
// the streak ending at the most recent year counts: the scanner answers
// "currently in a decline", not "ever declined". Three or more trailing bad
// steps raise a trend alert per metric.
//
// The composite health check scores every record through an injected
// ScoreCalculator, splits the score series in half (floor division, so for odd
// lengths the middle record falls in the second half), and alerts when the
// second half's mean has fallen more than ten points below the first half's.
//
// # Timestamps
//
// All alerts produced by one evaluation call share a single RFC 3339
// timestamp, read once from the package clock. Tests freeze it via [SetClock].
package domain
