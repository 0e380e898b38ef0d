package domain

import "fmt"

// Sources credited on the five advisory topics.
const (
	sourceCGWB      = "Central Ground Water Board"
	sourceIMD       = "India Meteorological Department"
	sourceSPCB      = "State Pollution Control Board"
	sourceWaterDept = "District Water Resources Department"
	sourceJalShakti = "Ministry of Jal Shakti"
)

// GenerateAdvisories renders the five fixed status updates for a location's
// latest record. It always returns exactly five entries with stable IDs 1-5;
// each topic carries at most one conditional, which only affects priority.
func GenerateAdvisories(latest WaterRecord) []GovUpdate {
	date := clock.Now().UTC().Format("02 Jan 2006")

	status := GovUpdate{
		ID:       1,
		Title:    fmt.Sprintf("Groundwater Status Report: %s", latest.Location),
		Body:     fmt.Sprintf("Current groundwater level stands at %.1fm below reference. The region is classified under %s water scarcity.", floatOrZero(latest.GroundwaterLevel), scarcityOrUnknown(latest.ScarcityLevel)),
		Date:     date,
		Source:   sourceCGWB,
		Priority: PriorityNormal,
	}
	if latest.ScarcityLevel == ScarcityHigh || latest.ScarcityLevel == ScarcitySevere || latest.ScarcityLevel == ScarcityExtreme {
		status.Priority = PriorityHigh
	}

	rainfall := GovUpdate{
		ID:       2,
		Title:    "Annual Rainfall Assessment",
		Body:     fmt.Sprintf("Recorded annual rainfall for the reporting year is %.0fmm. Seasonal distribution data is available from district observatories.", floatOrZero(latest.Rainfall)),
		Date:     date,
		Source:   sourceIMD,
		Priority: PriorityNormal,
	}
	if latest.Rainfall != nil && *latest.Rainfall < 700 {
		rainfall.Priority = PriorityHigh
	}

	quality := GovUpdate{
		ID:       3,
		Title:    "Water Quality Bulletin",
		Body:     fmt.Sprintf("Groundwater pH measured at %.1f. Samples are tested quarterly against BIS drinking water standards.", floatOrZero(latest.PH)),
		Date:     date,
		Source:   sourceSPCB,
		Priority: PriorityNormal,
	}
	if latest.PH != nil && (*latest.PH >= 8.0 || *latest.PH <= 6.5) {
		quality.Priority = PriorityHigh
	}

	usage := GovUpdate{
		ID:       4,
		Title:    "Sectoral Usage Distribution",
		Body:     fmt.Sprintf("Water drawn this year: agriculture %.0f ML, industry %.0f ML, households %.0f ML.", floatOrZero(latest.AgriculturalUsage), floatOrZero(latest.IndustrialUsage), floatOrZero(latest.HouseholdUsage)),
		Date:     date,
		Source:   sourceWaterDept,
		Priority: PriorityNormal,
	}
	if total := latest.TotalConsumption(); total != nil && *total >= 500 {
		usage.Priority = PriorityHigh
	}

	advisory := GovUpdate{
		ID:       5,
		Title:    "Jal Shakti Conservation Advisory",
		Body:     "Residents and industries are urged to adopt rainwater harvesting, drip irrigation, and greywater reuse under the Jal Shakti Abhiyan. Subsidy schemes are open for recharge structures.",
		Date:     date,
		Source:   sourceJalShakti,
		Priority: PriorityNormal,
	}
	if latest.ScarcityLevel == ScarcitySevere || latest.ScarcityLevel == ScarcityExtreme {
		advisory.Priority = PriorityHigh
	}

	return []GovUpdate{status, rainfall, quality, usage, advisory}
}

func floatOrZero(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func scarcityOrUnknown(s ScarcityLevel) ScarcityLevel {
	if !s.Valid() {
		return "Unclassified"
	}
	return s
}
