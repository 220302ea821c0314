package analyzer

import (
	"github.com/parcelworks/lotscope/internal/models"
)

// Hazard indicator keys as the county layers name them.
const (
	hazardMethane      = "METHANE_ZONE"
	hazardFaultZone    = "ALQUIST_PRIOLO_FAULT_ZONE"
	hazardLiquefaction = "LIQUEFACTION"
)

// analyzeConstraints maps raw hazard indicators to constraint descriptions
// and flags pre-1960 buildings for historic review. Purely additive.
func analyzeConstraints(rec models.PropertyRecord, existing models.ExistingConditions) models.Constraints {
	hazards := []string{}
	if rec.RawHazards[hazardMethane] {
		hazards = append(hazards, "Methane buffer zone - special foundation/venting required")
	}
	if rec.RawHazards[hazardFaultZone] {
		hazards = append(hazards, "Seismic fault zone - enhanced seismic design required")
	}
	if rec.RawHazards[hazardLiquefaction] {
		hazards = append(hazards, "Liquefaction risk - foundation considerations")
	}

	historic := []string{}
	if y := parseYear(existing.YearBuilt); y != 0 && y < 1960 {
		historic = append(historic, "Pre-1960 building may require historic review")
	}

	return models.Constraints{
		EnvironmentalHazards: hazards,
		HistoricRestrictions: historic,
		OverlayRequirements:  []string{},
		RSOReplacementUnits:  existing.ReplacementRequired,
	}
}
